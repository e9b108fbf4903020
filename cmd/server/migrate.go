package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/home-inventory/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Open applies pending migrations; Migrate again only reports the version.
		db, err := database.Open(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		v, err := database.Migrate(cmd.Context(), db, cfg.DBDriver)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
		return nil
	},
}
