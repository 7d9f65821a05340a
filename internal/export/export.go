// Package export writes every view model of the site to disk as JSON, one
// directory per locale, for static hosting.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/ziadkadry99/botdocs/internal/app"
	"github.com/ziadkadry99/botdocs/internal/catalog"
	"github.com/ziadkadry99/botdocs/internal/locale"
	"github.com/ziadkadry99/botdocs/internal/nav"
	"github.com/ziadkadry99/botdocs/internal/observability"
	"github.com/ziadkadry99/botdocs/internal/prefs"
	"github.com/ziadkadry99/botdocs/internal/progress"
	"github.com/ziadkadry99/botdocs/internal/render"
)

// IndexFile lists the exported files of one locale.
const IndexFile = "index.json"

// Options configures an export.
type Options struct {
	Dir     string
	Content *app.Content
	Site    render.Site
	Markup  render.Markup
	// Locales to export. Empty means every configured language, or the
	// default locale when none is configured.
	Locales  []string
	Theme    prefs.Theme
	Reporter progress.Reporter
	Logger   *zap.Logger
}

// IndexEntry maps one view id to its file.
type IndexEntry struct {
	ID    string      `json:"id"`
	Kind  render.Kind `json:"kind"`
	Title string      `json:"title"`
	File  string      `json:"file"`
}

// Index is the content of IndexFile.
type Index struct {
	Locale      string       `json:"locale"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Views       []IndexEntry `json:"views"`
}

// Result summarizes a finished export.
type Result struct {
	Locales []string
	Files   int
}

// Reserved file names at the root of a locale directory. Catalog items are
// written under ViewsDir so no item id can replace them.
const (
	HomeFile    = "home.json"
	TermsFile   = "terms.json"
	PrivacyFile = "privacy.json"
	ViewsDir    = "views"
)

// Target is one view to export and the file it is written to, relative to
// the locale directory.
type Target struct {
	Selection nav.Selection
	File      string
}

// ID returns the view id recorded in the index.
func (t Target) ID() string {
	if t.Selection.View == nav.ViewHome {
		return nav.FragmentHome
	}
	return t.Selection.ID
}

// Targets lists every view in navigation order: Home, every catalog item,
// then the legal pages. Selections are built directly rather than resolved
// from ids, so an item whose id matches a reserved fragment is still
// exported as that item.
func Targets(content *app.Content) []Target {
	out := []Target{{Selection: nav.Home(), File: HomeFile}}
	for _, sec := range catalog.Sections {
		for _, it := range content.Catalog.Section(sec) {
			out = append(out, Target{
				Selection: nav.Selection{View: nav.ViewItem, ID: it.ID, Item: it},
				File:      ItemFile(it.ID),
			})
		}
	}
	return append(out,
		Target{Selection: nav.Selection{View: nav.ViewLegal, ID: nav.FragmentTerms, Legal: nav.LegalTerms}, File: TermsFile},
		Target{Selection: nav.Selection{View: nav.ViewLegal, ID: nav.FragmentPrivacy, Legal: nav.LegalPrivacy}, File: PrivacyFile},
	)
}

// ItemFile is the file a catalog item is written to. The id is
// percent-encoded, so it never contains a path separator.
func ItemFile(id string) string {
	return path.Join(ViewsDir, nav.EncodeFragment(id)+".json")
}

// ValidateLocale rejects locales that do not parse as BCP 47 tags or that
// could name a directory outside the export root.
func ValidateLocale(loc string) error {
	if loc == "" || strings.ContainsAny(loc, `/\`) || strings.Contains(loc, "..") {
		return fmt.Errorf("export: invalid locale %q", loc)
	}
	if _, err := language.Parse(strings.ReplaceAll(loc, "_", "-")); err != nil {
		return fmt.Errorf("export: invalid locale %q: %w", loc, err)
	}
	return nil
}

// Run renders and writes every target for every locale. It stops at the
// first write error or when ctx is cancelled.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Content == nil || opts.Content.Catalog == nil {
		return Result{}, errors.New("export: no content loaded")
	}
	if opts.Dir == "" {
		return Result{}, errors.New("export: output directory is required")
	}
	logger := observability.OrNop(opts.Logger)
	reporter := opts.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}
	if opts.Theme == "" {
		opts.Theme = prefs.ThemeDark
	}

	locales := opts.Locales
	if len(locales) == 0 {
		for _, l := range opts.Content.Languages {
			locales = append(locales, l.Locale)
		}
	}
	if len(locales) == 0 {
		locales = []string{locale.DefaultLocale}
	}

	for _, loc := range locales {
		if err := ValidateLocale(loc); err != nil {
			return Result{}, err
		}
	}

	targets := Targets(opts.Content)
	reporter.Start(len(targets) * len(locales))
	defer reporter.Finish()

	res := Result{Locales: locales}
	step := 0
	for _, loc := range locales {
		dir := filepath.Join(opts.Dir, loc)
		if err := os.MkdirAll(filepath.Join(dir, ViewsDir), 0o755); err != nil {
			return res, fmt.Errorf("creating %s: %w", dir, err)
		}

		env := render.Env{
			Catalog:      opts.Content.Catalog,
			Groups:       opts.Content.Groups,
			Languages:    opts.Content.Languages,
			ListenerDocs: opts.Content.ListenerDocs,
			Site:         opts.Site,
			Locale:       locale.New(loc),
			Theme:        opts.Theme,
			ThemeMode:    prefs.ModeSystem,
			Markup:       opts.Markup,
		}
		index := Index{Locale: env.Locale.Locale(), GeneratedAt: time.Now().UTC()}

		for _, t := range targets {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			vm := render.Render(t.Selection, env)
			if err := writeJSON(filepath.Join(dir, filepath.FromSlash(t.File)), vm); err != nil {
				return res, err
			}
			index.Views = append(index.Views, IndexEntry{ID: t.ID(), Kind: vm.Kind, Title: vm.Title, File: t.File})
			res.Files++
			step++
			reporter.Update(step, loc+" "+t.ID())
		}

		if err := writeJSON(filepath.Join(dir, IndexFile), index); err != nil {
			return res, err
		}
		logger.Info("exported locale", zap.String("locale", loc), zap.Int("views", len(index.Views)), zap.String("dir", dir))
	}
	return res, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
