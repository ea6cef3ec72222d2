package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/layby/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the ledger schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(cmd.Context(), db); err != nil {
			return err
		}

		slog.Info("schema applied", "database", cfg.DB.Name)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
