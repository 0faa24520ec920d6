package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oakridgedental/clinichub/internal/httpapi"
	"github.com/oakridgedental/clinichub/internal/notify"
	"github.com/oakridgedental/clinichub/internal/sqlite"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the admin HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}

		logger := setupLogging(config.LogLevel)
		defer logger.Sync()

		backend := sqlite.NewBackend()
		if err := backend.Attach(config); err != nil {
			return err
		}
		defer backend.Detach()

		zap.S().Infow("backend attached", "data_dir", config.DataDir)

		server := httpapi.NewServer(backend, notify.NewDispatcher())
		return server.Run(config.ListenAddr)
	},
}
