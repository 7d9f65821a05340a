package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ziadkadry99/botdocs/internal/app"
	"github.com/ziadkadry99/botdocs/internal/config"
	"github.com/ziadkadry99/botdocs/internal/db"
	"github.com/ziadkadry99/botdocs/internal/observability"
	"github.com/ziadkadry99/botdocs/internal/prefs"
	"github.com/ziadkadry99/botdocs/internal/render"
	"github.com/ziadkadry99/botdocs/internal/resources"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `botdocs init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger. --verbose forces debug level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	return observability.NewLogger(level, string(cfg.Log.Format))
}

// newLoader picks the HTTP loader when a base URL is configured and the
// directory loader otherwise.
func newLoader(cfg *config.Config) resources.Loader {
	if cfg.Resources.BaseURL != "" {
		return resources.NewHTTPLoader(cfg.Resources.BaseURL)
	}
	return resources.NewDirLoader(cfg.Resources.Dir)
}

func resourceNames(cfg *config.Config) app.ResourceNames {
	return app.ResourceNames{
		Catalog:      cfg.Resources.Catalog,
		Groups:       cfg.Resources.Groups,
		Languages:    cfg.Resources.Languages,
		ListenerDocs: cfg.Resources.ListenerDocs,
	}
}

func siteFromConfig(cfg *config.Config) render.Site {
	s := cfg.Site
	return render.Site{
		BotName:    s.BotName,
		Tagline:    s.Tagline,
		Kicker:     s.Kicker,
		HeroLead:   s.HeroLead,
		InviteURL:  s.InviteURL,
		SupportURL: s.SupportURL,
		RepoURL:    s.RepoURL,
		Featured:   s.Featured,
	}
}

// loadContent fetches and validates all resources once.
func loadContent(ctx context.Context, cfg *config.Config) (*app.Content, error) {
	timeout, err := cfg.LoadTimeout()
	if err != nil {
		return nil, err
	}
	content, err := app.LoadContent(ctx, newLoader(cfg), resourceNames(cfg), timeout)
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	return content, nil
}

// openPrefs opens the preference store. An empty prefs.db_path keeps
// preferences in memory for this process only. The returned close function
// is never nil.
func openPrefs(cfg *config.Config, logger *zap.Logger) (*prefs.Store, func(), error) {
	if cfg.Prefs.DBPath == "" {
		return prefs.NewStore(prefs.NewMemoryBackend(), cfg.Locale.Default, logger), func() {}, nil
	}
	database, err := db.Open(cfg.Prefs.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening preferences: %w", err)
	}
	store := prefs.NewStore(prefs.NewSQLiteBackend(database), cfg.Locale.Default, logger)
	return store, func() { database.Close() }, nil
}

// oneOffPrefs returns an in-memory copy of store with its locale replaced
// by loc, so a single render can use another locale without changing the
// stored preference. An empty loc returns store itself.
func oneOffPrefs(store *prefs.Store, loc string, logger *zap.Logger) *prefs.Store {
	if strings.TrimSpace(loc) == "" {
		return store
	}
	tmp := prefs.NewStore(prefs.NewMemoryBackend(), store.DefaultLocale(), logger)
	tmp.SetTheme(store.Theme())
	tmp.SetLocale(loc)
	return tmp
}

// setup loads config, logger and preferences shared by most commands.
func setup() (*config.Config, *zap.Logger, *prefs.Store, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("creating logger: %w", err)
	}
	store, closePrefs, err := openPrefs(cfg, logger)
	if err != nil {
		logger.Sync()
		return nil, nil, nil, nil, err
	}
	cleanup := func() {
		closePrefs()
		logger.Sync()
	}
	return cfg, logger, store, cleanup, nil
}
