package config

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/manifoldco/promptui"
)

// detectResourceDir looks below the working directory for a catalog file
// and returns the directory holding it.
func detectResourceDir(fsys fs.FS) string {
	matches, err := doublestar.Glob(fsys, "**/catalog.{json,yaml,yml}")
	if err != nil || len(matches) == 0 {
		return ""
	}
	best := matches[0]
	for _, m := range matches[1:] {
		if strings.Count(m, "/") < strings.Count(best, "/") {
			best = m
		}
	}
	return path.Dir(best)
}

// RunWizard runs an interactive configuration wizard and saves the
// resulting Config to configPath.
func RunWizard(configPath string) (*Config, error) {
	fmt.Println("Welcome to botdocs! Let's configure your documentation site.")
	fmt.Println()

	cfg := DefaultConfig()
	if dir := detectResourceDir(os.DirFS(".")); dir != "" {
		fmt.Printf("Found a catalog in %s\n\n", dir)
		cfg.Resources.Dir = dir
	}

	// 1. Bot identity.
	namePrompt := promptui.Prompt{
		Label:   "Bot name (blank to use the catalog's)",
		Default: "",
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("bot name: %w", err)
	}
	cfg.Site.BotName = strings.TrimSpace(name)

	// 2. Resource source.
	sourcePrompt := promptui.Select{
		Label: "Where are the catalog resources?",
		Items: []string{
			"local directory",
			"HTTP base URL",
		},
	}
	sourceIdx, _, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("resource source: %w", err)
	}
	if sourceIdx == 0 {
		dirPrompt := promptui.Prompt{
			Label:   "Resource directory",
			Default: cfg.Resources.Dir,
		}
		if cfg.Resources.Dir, err = dirPrompt.Run(); err != nil {
			return nil, fmt.Errorf("resource dir: %w", err)
		}
	} else {
		urlPrompt := promptui.Prompt{
			Label: "Resource base URL",
			Validate: func(s string) error {
				candidate := *cfg
				candidate.Resources.BaseURL = s
				return candidate.Validate()
			},
		}
		if cfg.Resources.BaseURL, err = urlPrompt.Run(); err != nil {
			return nil, fmt.Errorf("resource url: %w", err)
		}
	}

	// 3. Default locale.
	localePrompt := promptui.Select{
		Label: "Default locale",
		Items: []string{"hu-HU", "en-GB"},
	}
	if _, cfg.Locale.Default, err = localePrompt.Run(); err != nil {
		return nil, fmt.Errorf("locale selection: %w", err)
	}

	// 4. Featured commands.
	featuredPrompt := promptui.Prompt{
		Label:   "Featured commands (comma-separated, leave blank for none)",
		Default: "",
	}
	featured, err := featuredPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("featured commands: %w", err)
	}
	cfg.Site.Featured = splitAndTrim(featured)

	// 5. Server port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port for botdocs serve",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p < 0 || p > 65535 {
				return fmt.Errorf("invalid port %q", s)
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
