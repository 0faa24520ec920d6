package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakridgedental/clinichub/internal/sqlite"
)

var backupName string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot the clinic database",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}

		backend := sqlite.NewBackend()
		if err := backend.Attach(config); err != nil {
			return err
		}
		defer backend.Detach()

		result, err := backend.CreateBackup(backupName)
		if err != nil {
			return err
		}
		fmt.Printf("backup %s written to %s (%d bytes)\n", result.Name, result.FilePath, result.FileSize)
		return nil
	},
}

func init() {
	backupCmd.Flags().StringVar(&backupName, "name", "", "backup name (default: timestamp-based)")
}
