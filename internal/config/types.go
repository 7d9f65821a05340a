package config

// LogFormat selects the log encoder.
type LogFormat string

const (
	LogFormatJSON    LogFormat = "json"
	LogFormatConsole LogFormat = "console"
)

// Config is the top-level botdocs configuration, corresponding to .botdocs.yml.
type Config struct {
	Site      SiteConfig      `yaml:"site" koanf:"site"`
	Resources ResourcesConfig `yaml:"resources" koanf:"resources"`
	Locale    LocaleConfig    `yaml:"locale" koanf:"locale"`
	Prefs     PrefsConfig     `yaml:"prefs" koanf:"prefs"`
	Server    ServerConfig    `yaml:"server" koanf:"server"`
	Log       LogConfig       `yaml:"log" koanf:"log"`
}

// SiteConfig is the bot's identity shown on Home and in the page chrome.
type SiteConfig struct {
	BotName    string   `yaml:"bot_name" koanf:"bot_name"`
	Tagline    string   `yaml:"tagline" koanf:"tagline"`
	Kicker     string   `yaml:"kicker" koanf:"kicker"`
	HeroLead   string   `yaml:"hero_lead" koanf:"hero_lead"`
	InviteURL  string   `yaml:"invite_url" koanf:"invite_url"`
	SupportURL string   `yaml:"support_url" koanf:"support_url"`
	RepoURL    string   `yaml:"repo_url" koanf:"repo_url"`
	Featured   []string `yaml:"featured" koanf:"featured"`
}

// ResourcesConfig says where content comes from. BaseURL takes the HTTP
// loader; otherwise Dir is searched on disk.
type ResourcesConfig struct {
	Dir          string `yaml:"dir" koanf:"dir"`
	BaseURL      string `yaml:"base_url" koanf:"base_url"`
	Catalog      string `yaml:"catalog" koanf:"catalog"`
	Groups       string `yaml:"groups" koanf:"groups"`
	Languages    string `yaml:"languages" koanf:"languages"`
	ListenerDocs string `yaml:"listener_docs" koanf:"listener_docs"`
	LoadTimeout  string `yaml:"load_timeout" koanf:"load_timeout"`
}

// LocaleConfig holds locale settings.
type LocaleConfig struct {
	Default string `yaml:"default" koanf:"default"`
}

// PrefsConfig holds preference storage settings. An empty DBPath keeps
// preferences in memory.
type PrefsConfig struct {
	DBPath string `yaml:"db_path" koanf:"db_path"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string    `yaml:"level" koanf:"level"`
	Format LogFormat `yaml:"format" koanf:"format"`
}
