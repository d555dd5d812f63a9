package main

import (
	"github.com/spf13/cobra"

	"duty-roster-backend/internal/database"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the roster tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := a.connect()
			if err != nil {
				return err
			}
			defer closeDB()

			if err := database.Migrate(db); err != nil {
				return err
			}
			a.logger.Info("migration complete")
			return nil
		},
	}
}
