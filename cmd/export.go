package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/botdocs/internal/export"
	"github.com/ziadkadry99/botdocs/internal/markup"
	"github.com/ziadkadry99/botdocs/internal/prefs"
	"github.com/ziadkadry99/botdocs/internal/progress"
)

var (
	exportDir     string
	exportLocales []string
	exportTheme   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every view model to disk as JSON",
	Long: `Renders Home, every catalog item and the legal pages for each language.
Each locale gets <out>/<locale>/ holding home.json, terms.json, privacy.json
and index.json, with one file per catalog item under views/. Locales must be
valid language tags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, _, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		theme := prefs.Theme(exportTheme)
		if theme != prefs.ThemeDark && theme != prefs.ThemeLight {
			return fmt.Errorf("invalid --theme %q: must be dark or light", exportTheme)
		}

		content, err := loadContent(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		res, err := export.Run(cmd.Context(), export.Options{
			Dir:      exportDir,
			Content:  content,
			Site:     siteFromConfig(cfg),
			Markup:   markup.New(),
			Locales:  exportLocales,
			Theme:    theme,
			Reporter: progress.NewReporter("Exporting views", os.Stderr),
			Logger:   logger,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %d views for %d locale(s) to %s\n", res.Files, len(res.Locales), exportDir)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "site", "output directory")
	exportCmd.Flags().StringSliceVar(&exportLocales, "locale", nil, "locales to export (default: every configured language)")
	exportCmd.Flags().StringVar(&exportTheme, "theme", string(prefs.ThemeDark), "theme recorded in the view models (dark or light)")
	rootCmd.AddCommand(exportCmd)
}
