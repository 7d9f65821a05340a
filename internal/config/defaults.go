package config

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = ".botdocs.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Resources: ResourcesConfig{
			Dir:          "data",
			Catalog:      "catalog",
			Groups:       "groups",
			Languages:    "languages",
			ListenerDocs: "listener-docs",
			LoadTimeout:  "15s",
		},
		Locale: LocaleConfig{Default: "hu-HU"},
		Prefs:  PrefsConfig{DBPath: ".botdocs/prefs.db"},
		Server: ServerConfig{Port: 8080},
		Log:    LogConfig{Level: "info", Format: LogFormatConsole},
	}
}
