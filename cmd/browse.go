package cmd

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/botdocs/internal/app"
	"github.com/ziadkadry99/botdocs/internal/nav"
	"github.com/ziadkadry99/botdocs/internal/observability"
	"github.com/ziadkadry99/botdocs/internal/tui"
)

var (
	browseOpen    string
	browseLogFile string
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog in the terminal",
	Long: `Opens an interactive terminal session over the catalog. Use j/k to move,
enter to open, / to search, h for home, b/f for back and forward, L to switch
language, t to cycle the theme and q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// The screen owns stderr while the session runs.
		logger := zap.NewNop()
		if browseLogFile != "" {
			level := cfg.Log.Level
			if verbose {
				level = "debug"
			}
			if logger, err = observability.NewLoggerTo(level, string(cfg.Log.Format), browseLogFile); err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
		}
		defer logger.Sync()

		store, closePrefs, err := openPrefs(cfg, logger)
		if err != nil {
			return err
		}
		defer closePrefs()

		timeout, err := cfg.LoadTimeout()
		if err != nil {
			return err
		}

		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("opening terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("initializing terminal: %w", err)
		}
		defer screen.Fini()

		browser := tui.NewBrowser(screen, logger)
		address := nav.NewMemoryAddress(nav.EncodeFragment(browseOpen))
		ctrl := app.New(app.Options{
			Loader:    newLoader(cfg),
			Resources: resourceNames(cfg),
			Timeout:   timeout,
			Prefs:     store,
			Address:   address,
			Presenter: browser,
			Site:      siteFromConfig(cfg),
			Logger:    logger,
		})
		defer ctrl.Close()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go ctrl.Load(ctx)

		return browser.Run(ctrl, address)
	},
}

func init() {
	browseCmd.Flags().StringVar(&browseOpen, "open", "", "item id to open first, e.g. command/ping")
	browseCmd.Flags().StringVar(&browseLogFile, "log-file", "", "write logs to this file")
	rootCmd.AddCommand(browseCmd)
}
