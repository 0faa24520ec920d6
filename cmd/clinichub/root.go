package main

import (
	"github.com/spf13/cobra"
)

// rootFlags holds global flag values shared by all subcommands.
var rootFlags struct {
	configDir string
	dataDir   string
}

var rootCmd = &cobra.Command{
	Use:   "clinichub",
	Short: "Admin backend for the clinic database",
	Long: `Clinichub is the backend admin layer of the clinic management system.
It owns the SQLite database holding patients, doctors, appointments,
transactions and users, and serves a generic table-administration REST API
with global search and backups.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.configDir, "config-dir", "", "configuration directory (default: .clinichub)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.dataDir, "data-dir", "", "data directory (overrides config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(versionCmd)
}
