// Package render turns a navigation selection into a presentation-agnostic
// view model. Rendering is pure: it reads the environment, never mutates it,
// and identical inputs produce identical view models.
package render

import (
	"strconv"
	"strings"

	"github.com/ziadkadry99/botdocs/internal/catalog"
	"github.com/ziadkadry99/botdocs/internal/grouping"
	"github.com/ziadkadry99/botdocs/internal/locale"
	"github.com/ziadkadry99/botdocs/internal/nav"
	"github.com/ziadkadry99/botdocs/internal/prefs"
)

// MaxChoices is the number of choices shown per option. Further choices
// are dropped.
const MaxChoices = 18

// MaxFeatured is the number of featured commands shown on Home.
const MaxFeatured = 6

// MaxCustomIDs is the number of custom ids listed per component. The rest
// are only counted.
const MaxCustomIDs = 6

// MaxPills is the number of command group pills shown on Home.
const MaxPills = 8

// defaultProductName is shown when neither the site nor the catalog names
// the bot.
const defaultProductName = "Discord Bot"

// Site is the configured identity of the documented bot.
type Site struct {
	BotName    string
	Tagline    string
	Kicker     string
	HeroLead   string
	InviteURL  string
	SupportURL string
	RepoURL    string
	Featured   []string
}

// Markup converts Markdown to HTML.
type Markup interface {
	HTML(markdown string) string
}

// Env is everything Render reads besides the selection.
type Env struct {
	Catalog      *catalog.Catalog
	Groups       catalog.GroupTables
	Languages    []catalog.LanguageEntry
	ListenerDocs catalog.ListenerDocs
	Site         Site
	Locale       locale.Resolver
	Theme        prefs.Theme
	ThemeMode    prefs.ThemeMode
	Query        string

	// Group restricts the command section to one group id. Empty shows
	// every group.
	Group string

	// Markup is optional. When nil, Markdown fields carry no HTML.
	Markup Markup
}

// Render builds the view model for sel.
func Render(sel nav.Selection, env Env) ViewModel {
	vm := env.frame(sel.ID)

	switch {
	case sel.View == nav.ViewItem && env.Catalog != nil:
		switch sel.Item.Kind {
		case catalog.KindCommand:
			vm.Kind = KindCommand
			vm.Command = env.commandView(sel.Item)
		case catalog.KindListener:
			vm.Kind = KindListener
			vm.Listener = env.listenerView(sel.Item)
		case catalog.KindAudit:
			vm.Kind = KindAudit
			vm.Audit = env.auditView(sel.Item)
		case catalog.KindComponent:
			vm.Kind = KindComponent
			vm.Component = env.componentView(sel.Item)
		}
		vm.Title = sel.Item.DisplayName()
	case sel.View == nav.ViewLegal:
		vm.Kind = KindLegal
		vm.Legal = env.legalView(sel.Legal)
		vm.Title = vm.Legal.Title
	}

	if vm.Kind == "" {
		vm = env.frame("")
		vm.Kind = KindHome
		vm.Home = env.homeView()
		vm.Title = vm.Home.ProductName
	}
	return vm
}

// RenderError builds the global error view shown when loading failed. The
// catalog in env may be nil.
func RenderError(err error, env Env) ViewModel {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	vm := ViewModel{
		Kind:      KindError,
		Locale:    env.Locale.Locale(),
		Lang:      env.Locale.Lang(),
		Theme:     env.Theme,
		ThemeMode: env.ThemeMode,
		Site:      env.siteView(),
		Languages: env.LanguageOptions(),
		Error: &ErrorView{
			Title:   env.text(msgErrorTitle),
			Message: env.text(msgErrorMessage),
			Detail:  detail,
		},
	}
	vm.Title = vm.Error.Title
	return vm
}

// frame fills the fields shared by every kind.
func (e Env) frame(activeID string) ViewModel {
	return ViewModel{
		ActiveID:   activeID,
		Fragment:   nav.EncodeFragment(activeID),
		Locale:     e.Locale.Locale(),
		Lang:       e.Locale.Lang(),
		Theme:      e.Theme,
		ThemeMode:  e.ThemeMode,
		Site:       e.siteView(),
		Navigation: BuildNavigation(e, activeID),
		Languages:  e.LanguageOptions(),
	}
}

// ProductName is the configured bot name, then the catalog's, then a
// generic default.
func (e Env) ProductName() string {
	if n := strings.TrimSpace(e.Site.BotName); n != "" {
		return n
	}
	if e.Catalog != nil {
		if n := strings.TrimSpace(e.Catalog.Meta.BotName); n != "" {
			return n
		}
	}
	return defaultProductName
}

func (e Env) siteView() SiteView {
	v := SiteView{
		ProductName: e.ProductName(),
		Tagline:     e.Site.Tagline,
	}
	for _, l := range []Link{
		{Key: "invite", Label: e.text(msgLinkInvite), URL: e.Site.InviteURL},
		{Key: "support", Label: e.text(msgLinkSupport), URL: e.Site.SupportURL},
		{Key: "repo", Label: e.text(msgLinkRepo), URL: e.Site.RepoURL},
	} {
		if strings.TrimSpace(l.URL) != "" {
			v.Links = append(v.Links, l)
		}
	}
	if e.Catalog != nil {
		c := e.Catalog.Counts()
		v.FooterStats = strconv.Itoa(c.Commands) + " cmd • " + strconv.Itoa(c.Listeners) + " listener • " +
			strconv.Itoa(c.Audits) + " audit • " + strconv.Itoa(c.Components) + " ui"
	}
	return v
}

// LanguageOptions builds the locale switcher rows.
func (e Env) LanguageOptions() []LanguageOption {
	if len(e.Languages) == 0 {
		return nil
	}
	out := make([]LanguageOption, 0, len(e.Languages))
	for _, l := range e.Languages {
		out = append(out, LanguageOption{
			Locale:     l.Locale,
			Market:     l.Market,
			Flag:       l.Flag,
			Name:       l.Name,
			LangName:   l.LangName,
			RegionName: e.Locale.RegionName(l.Market, l.Name),
			Active:     sameLocale(l.Locale, e.Locale.Locale()),
		})
	}
	return out
}

// groupLabel resolves the label of the bucket item falls under.
func (e Env) groupLabel(item catalog.Item) string {
	def := grouping.Resolve(e.Groups[catalog.SectionOf(item.Kind)], item)
	return grouping.Label(def, e.Locale)
}

func (e Env) commandView(item catalog.Item) *CommandView {
	c := item.Command
	v := &CommandView{
		Name:        c.Name,
		Description: c.Description,
		CopyText:    "/" + c.Name,
		Group:       e.groupLabel(item),
		SourceFile:  c.SourceFile,
		Parameters:  e.commandParams(c.Body),
	}
	if c.Who != "" {
		v.Badges = append(v.Badges, Badge{Key: "who", Label: e.text(msgBadgeWho), Value: c.Who})
	}
	for _, p := range c.BotPerms {
		v.Badges = append(v.Badges, Badge{Key: "perm", Label: e.text(msgBadgePerm), Value: p})
	}
	return v
}

func (e Env) commandParams(body catalog.CommandBody) Params {
	switch b := body.(type) {
	case catalog.GroupedBody:
		p := Params{Heading: e.text(msgParameters)}
		for _, g := range b.Groups {
			gp := Params{Heading: g.Name}
			for _, s := range g.Subcommands {
				gp.Blocks = append(gp.Blocks, e.subcommandBlock(s))
			}
			if len(gp.Blocks) == 0 {
				gp = e.noParams(gp.Heading)
			}
			p.Blocks = append(p.Blocks, OptionBlock{
				Kind:        BlockGroup,
				Name:        g.Name,
				Description: g.Description,
				Params:      gp,
			})
		}
		for _, s := range b.Subcommands {
			p.Blocks = append(p.Blocks, e.subcommandBlock(s))
		}
		if len(p.Blocks) == 0 {
			return e.noParams(p.Heading)
		}
		return p
	case catalog.SimpleBody:
		p := Params{Heading: e.text(msgParameters)}
		for _, s := range b.Subcommands {
			p.Blocks = append(p.Blocks, e.subcommandBlock(s))
		}
		if len(p.Blocks) == 0 {
			return e.noParams(p.Heading)
		}
		return p
	case catalog.FlatBody:
		return e.optionParams(e.text(msgParameters), b.Options)
	}
	return e.noParams(e.text(msgParameters))
}

func (e Env) subcommandBlock(s catalog.Subcommand) OptionBlock {
	return OptionBlock{
		Kind:        BlockSubcommand,
		Name:        s.Name,
		Description: s.Description,
		Params:      e.optionParams(s.Name, s.Options),
	}
}

func (e Env) optionParams(heading string, opts []catalog.Option) Params {
	if len(opts) == 0 {
		return e.noParams(heading)
	}
	p := Params{Heading: heading, Options: make([]OptionRow, 0, len(opts))}
	for _, o := range opts {
		p.Options = append(p.Options, e.optionRow(o))
	}
	return p
}

func (e Env) noParams(heading string) Params {
	return Params{Heading: heading, NoParameters: true, EmptyText: e.text(msgNoParameters)}
}

func (e Env) optionRow(o catalog.Option) OptionRow {
	row := OptionRow{
		Name:          o.Name,
		Type:          o.Type,
		Required:      o.Required,
		RequiredLabel: e.text(msgOptional),
		Description:   o.Description,
	}
	if o.Required {
		row.RequiredLabel = e.text(msgRequired)
	}
	choices := o.Choices
	if len(choices) > MaxChoices {
		choices = choices[:MaxChoices]
	}
	for _, ch := range choices {
		row.Choices = append(row.Choices, ChoiceRow{Name: ch.Name, Value: ch.Value})
	}
	return row
}

func (e Env) listenerView(item catalog.Item) *ListenerView {
	l := item.Listener
	v := &ListenerView{
		Title: item.DisplayName(),
		Event: l.Name,
		Body:  l.Description,
		Group: e.groupLabel(item),
	}
	if override, ok := e.ListenerDocs[l.Name]; ok {
		v.Body = e.Locale.PickText(override, l.Description)
		v.Overridden = v.Body != l.Description
	}
	if l.Name != "" {
		v.Badges = append(v.Badges, Badge{Key: "event", Label: e.text(msgBadgeEvent), Value: l.Name})
	}
	if l.File != "" {
		v.Badges = append(v.Badges, Badge{Key: "file", Label: e.text(msgBadgeFile), Value: l.File})
	}
	return v
}

func (e Env) auditView(item catalog.Item) *AuditView {
	a := item.Audit
	v := &AuditView{
		Title:       item.DisplayName(),
		Description: a.Description,
		Group:       e.groupLabel(item),
	}
	v.Badges = append(v.Badges,
		Badge{Key: "key", Label: e.text(msgBadgeKey), Value: a.Key},
		Badge{Key: "group", Label: e.text(msgBadgeGroup), Value: v.Group},
		Badge{Key: "file", Label: e.text(msgBadgeFile), Value: a.File},
	)
	return v
}

func (e Env) componentView(item catalog.Item) *ComponentView {
	c := item.Component
	v := &ComponentView{
		Title:         item.DisplayName(),
		Type:          c.Type,
		TypeLabel:     e.componentTypeLabel(c.Type),
		Description:   c.Description,
		Group:         e.groupLabel(item),
		CustomIDCount: len(c.CustomIDs),
	}
	ids := c.CustomIDs
	if len(ids) > MaxCustomIDs {
		v.MoreCustomIDs = len(ids) - MaxCustomIDs
		ids = ids[:MaxCustomIDs]
	}
	v.CustomIDs = append(v.CustomIDs, ids...)

	v.Badges = append(v.Badges,
		Badge{Key: "type", Label: e.text(msgBadgeType), Value: v.TypeLabel},
		Badge{Key: "customIds", Label: e.text(msgBadgeCustomIDs), Value: strconv.Itoa(v.CustomIDCount)},
	)
	if c.File != "" {
		v.Badges = append(v.Badges, Badge{Key: "file", Label: e.text(msgBadgeFile), Value: c.File})
	}
	return v
}

func (e Env) componentTypeLabel(t string) string {
	switch t {
	case catalog.ComponentModal:
		return e.text(msgComponentModal)
	case catalog.ComponentButton:
		return e.text(msgComponentButton)
	}
	return t
}

func sameLocale(a, b string) bool {
	norm := func(s string) string { return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-")) }
	return norm(a) == norm(b)
}
