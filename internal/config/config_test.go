package config

import (
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Locale.Default != "hu-HU" {
		t.Errorf("expected default locale %q, got %q", "hu-HU", cfg.Locale.Default)
	}
	if cfg.Resources.Catalog != "catalog" || cfg.Resources.ListenerDocs != "listener-docs" {
		t.Errorf("unexpected resource names %+v", cfg.Resources)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	d, err := cfg.LoadTimeout()
	if err != nil || d != 15*time.Second {
		t.Errorf("LoadTimeout = %v, %v", d, err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "test.botdocs.yml")

	original := DefaultConfig()
	original.Site.BotName = "Wumpus"
	original.Site.Featured = []string{"ping", "create-poll"}
	original.Resources.BaseURL = "https://example.com/data"
	original.Locale.Default = "en-GB"
	original.Server.Port = 9000
	original.Log.Format = LogFormatJSON

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Site.BotName != original.Site.BotName {
		t.Errorf("bot_name: got %q, want %q", loaded.Site.BotName, original.Site.BotName)
	}
	if loaded.Resources.BaseURL != original.Resources.BaseURL {
		t.Errorf("base_url: got %q, want %q", loaded.Resources.BaseURL, original.Resources.BaseURL)
	}
	if loaded.Locale.Default != original.Locale.Default {
		t.Errorf("locale: got %q, want %q", loaded.Locale.Default, original.Locale.Default)
	}
	if loaded.Server.Port != original.Server.Port {
		t.Errorf("port: got %d, want %d", loaded.Server.Port, original.Server.Port)
	}
	if loaded.Log.Format != LogFormatJSON {
		t.Errorf("log format: got %q", loaded.Log.Format)
	}
	if len(loaded.Site.Featured) != 2 || loaded.Site.Featured[1] != "create-poll" {
		t.Errorf("featured: got %v", loaded.Site.Featured)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Resources.Dir != "data" {
		t.Errorf("expected default resource dir, got %q", cfg.Resources.Dir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("BOTDOCS_SERVER__PORT", "9191")
	t.Setenv("BOTDOCS_SITE__BOT_NAME", "EnvBot")
	t.Setenv("BOTDOCS_LOCALE__DEFAULT", "en-GB")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Server.Port != 9191 {
		t.Errorf("port override failed: got %d", loaded.Server.Port)
	}
	if loaded.Site.BotName != "EnvBot" {
		t.Errorf("bot name override failed: got %q", loaded.Site.BotName)
	}
	if loaded.Locale.Default != "en-GB" {
		t.Errorf("locale override failed: got %q", loaded.Locale.Default)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"BOTDOCS_SERVER__PORT":        "server.port",
		"BOTDOCS_SITE__BOT_NAME":      "site.bot_name",
		"BOTDOCS_PREFS__DB_PATH":      "prefs.db_path",
		"BOTDOCS_RESOURCES__BASE_URL": "resources.base_url",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"base url only", func(c *Config) { c.Resources.Dir = ""; c.Resources.BaseURL = "https://x.test" }, false},
		{"no source", func(c *Config) { c.Resources.Dir = "" }, true},
		{"bad base url", func(c *Config) { c.Resources.BaseURL = "ftp://x.test" }, true},
		{"missing catalog name", func(c *Config) { c.Resources.Catalog = "" }, true},
		{"listener docs optional", func(c *Config) { c.Resources.ListenerDocs = "" }, false},
		{"bad timeout", func(c *Config) { c.Resources.LoadTimeout = "soon" }, true},
		{"negative timeout", func(c *Config) { c.Resources.LoadTimeout = "-1s" }, true},
		{"empty locale", func(c *Config) { c.Locale.Default = "" }, true},
		{"bad locale", func(c *Config) { c.Locale.Default = "not a locale!" }, true},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDetectResourceDir(t *testing.T) {
	fsys := fstest.MapFS{
		"site/deep/data/catalog.json": {Data: []byte("{}")},
		"public/catalog.yaml":         {Data: []byte("{}")},
		"README.md":                   {Data: []byte("#")},
	}
	if got := detectResourceDir(fsys); got != "public" {
		t.Errorf("detectResourceDir = %q, want public", got)
	}
	if got := detectResourceDir(fstest.MapFS{}); got != "" {
		t.Errorf("empty fs = %q", got)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" ping , create-poll ", []string{"ping", "create-poll"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
