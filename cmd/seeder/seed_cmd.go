package main

import (
	"github.com/spf13/cobra"

	"duty-roster-backend/internal/database"
)

func newSeedCmd(a *app) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo units, officers, memberships and holidays",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := a.connect()
			if err != nil {
				return err
			}
			defer closeDB()

			if migrate {
				if err := database.Migrate(db); err != nil {
					return err
				}
			}
			return database.SeedAll(db, a.logger)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "Run migrations before seeding")
	return cmd
}
