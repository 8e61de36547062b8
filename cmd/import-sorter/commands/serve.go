package commands

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bovan/import-sorter/internal/config"
	"github.com/bovan/import-sorter/internal/logging"
	"github.com/bovan/import-sorter/internal/server"
)

var (
	servePort int
	serveCORS bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the headless import sorter server",
	Long: `Start the import sorter as a headless server exposing an HTTP API.

Editor frontends post document snapshots to it and apply the edits it
returns. Changes to the project configuration file are picked up
without a restart.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveCORS, "cors", true, "Enable CORS")
}

func runServe(cmd *cobra.Command, args []string) error {
	root, err := resolveWorkspace()
	if err != nil {
		return err
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	serverConfig := server.DefaultConfig()
	serverConfig.Port = servePort
	serverConfig.WorkspaceRoot = root
	serverConfig.EnableCORS = serveCORS

	srv := server.New(serverConfig, newProcessor(root), settings)

	// Watch the project configuration file so connected clients hear about
	// edits as config.changed events.
	watcher, err := config.NewWatcher(config.NewResolver(root, settings), srv.Bus())
	if err != nil {
		logging.Warn().Err(err).Msg("configuration watcher unavailable")
	} else {
		watcher.Start()
		defer watcher.Stop()
	}

	go func() {
		logging.Info().
			Str("version", Version).
			Str("workspace", root).
			Int("port", servePort).
			Msg("server listening")
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logging.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("server shutdown error")
	}

	return nil
}
