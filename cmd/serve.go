package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/botdocs/internal/markup"
	"github.com/ziadkadry99/botdocs/internal/server"
)

var (
	servePort     int
	serveAllowAll bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve view models over HTTP and live sessions over websockets",
	Long: `Loads the catalog once and starts the botdocs HTTP server. GET /api/view
renders any fragment, /api/prefs reads and writes the stored theme and
locale, and /ws/session runs one live viewing session per connection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, store, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if cmd.Flags().Changed("allow-all") {
			cfg.Server.AllowAll = serveAllowAll
		}

		content, err := loadContent(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		logger.Info("content loaded",
			zap.Int("commands", len(content.Catalog.Commands)),
			zap.Int("listeners", len(content.Catalog.Listeners)),
			zap.Int("audits", len(content.Catalog.Audits)),
			zap.Int("components", len(content.Catalog.Components)),
		)

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAll,
		}, content, store, siteFromConfig(cfg), markup.New(), logger)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "botdocs server %s starting on port %d\n", Version, cfg.Server.Port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "HTTP port (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all", false, "allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}
