package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"nc-usersync/core/config"
	"nc-usersync/core/history"
	"nc-usersync/core/logger"
	"nc-usersync/core/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd exposes the recorded run history over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the run history API",
	Long:  `Starts the HTTP server exposing past runs and their per-account outcomes.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Open the history database. Without it there is nothing to serve.
		store, err := history.Open(cfg.History)
		if err != nil {
			logg.Fatal("Failed to open history database", zap.Error(err))
		}

		app := server.New(cfg.Server, store, logg)

		// 4. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 5. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
