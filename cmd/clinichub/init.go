package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakridgedental/clinichub/internal/sqlite"
)

var initSeed bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the clinic database and default configuration",
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

		if initSeed {
			if err := backend.Seed(); err != nil {
				return err
			}
			fmt.Println("database initialized with demo data")
			return nil
		}
		fmt.Println("database initialized")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initSeed, "seed", false, "insert demo fixtures")
}
