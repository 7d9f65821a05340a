package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/botdocs/internal/app"
	"github.com/ziadkadry99/botdocs/internal/markup"
	"github.com/ziadkadry99/botdocs/internal/nav"
	"github.com/ziadkadry99/botdocs/internal/render"
)

var (
	renderLocale string
	renderQuery  string
	renderGroup  string
	renderHTML   bool
)

var renderCmd = &cobra.Command{
	Use:   "render [id]",
	Short: "Print the view model of one item as JSON",
	Long: `Loads the catalog and prints the view model for the given item id (for
example command/ping or legal/terms). Without an id, or with an unknown one,
Home is printed. Stored preferences supply the locale and theme; --locale
overrides the locale for this render only.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, store, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		content, err := loadContent(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		id := ""
		if len(args) == 1 {
			id = nav.DecodeFragment(args[0])
		}
		opts := app.Options{
			Prefs:   oneOffPrefs(store, renderLocale, logger),
			Address: nav.NewMemoryAddress(nav.EncodeFragment(id)),
			Site:    siteFromConfig(cfg),
			Logger:  logger,
		}
		if renderHTML {
			opts.Markup = markup.New()
		}
		ctrl := app.New(opts)
		defer ctrl.Close()

		if err := ctrl.Start(content); err != nil {
			return err
		}
		if renderQuery != "" || renderGroup != "" {
			ctrl.Dispatch(app.Event{Kind: app.EventSearch, Query: renderQuery, Group: renderGroup})
		}
		vm, err := ctrl.View()
		if err != nil {
			return err
		}
		return printJSON(vm)
	},
}

func printJSON(vm render.ViewModel) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(vm)
}

func init() {
	renderCmd.Flags().StringVar(&renderLocale, "locale", "", "locale to render in (the stored preference is left unchanged)")
	renderCmd.Flags().StringVarP(&renderQuery, "query", "q", "", "navigation search query")
	renderCmd.Flags().StringVar(&renderGroup, "group", "", "show only this command group in the navigation")
	renderCmd.Flags().BoolVar(&renderHTML, "html", false, "include rendered HTML for Markdown fields")
	rootCmd.AddCommand(renderCmd)
}
