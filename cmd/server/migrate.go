package main

import (
	"github.com/fadilmartias/nexo-carreira/internal/config"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := ConnectDB()
		if err != nil {
			return err
		}
		if err := Migrate(db, config.LoadGeminiConfig().CareerTracksEnabled); err != nil {
			return err
		}
		appLog.Info("Migrations applied")
		return nil
	},
}
