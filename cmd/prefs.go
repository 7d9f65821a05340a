package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/botdocs/internal/prefs"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change the stored theme and locale",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, store, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		fmt.Printf("theme:  %s (effective %s)\n", store.Theme(), store.EffectiveTheme())
		fmt.Printf("locale: %s\n", store.Locale())
		return nil
	},
}

var prefsThemeCmd = &cobra.Command{
	Use:       "theme <system|dark|light>",
	Short:     "Store the theme mode",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(prefs.ModeSystem), string(prefs.ModeDark), string(prefs.ModeLight)},
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, ok := prefs.ParseThemeMode(args[0])
		if !ok {
			return fmt.Errorf("invalid theme %q: must be system, dark or light", args[0])
		}
		_, _, store, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		store.SetTheme(mode)
		fmt.Printf("theme: %s\n", store.Theme())
		return nil
	},
}

var prefsLocaleCmd = &cobra.Command{
	Use:   "locale <code>",
	Short: "Store the locale, e.g. hu-HU or en-GB",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, store, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		code := strings.TrimSpace(args[0])
		store.SetLocale(code)
		if got := store.Locale(); got != code {
			return fmt.Errorf("locale %q was not stored (current: %s)", code, got)
		}
		fmt.Printf("locale: %s\n", store.Locale())
		return nil
	},
}

func init() {
	prefsCmd.AddCommand(prefsThemeCmd, prefsLocaleCmd)
	rootCmd.AddCommand(prefsCmd)
}
