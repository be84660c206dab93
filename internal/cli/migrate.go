package cli

import (
	"fmt"

	"github.com/sangkips/galleauto-billing/internal/config"
	"github.com/sangkips/galleauto-billing/internal/infrastructure/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := database.AutoMigrate(app.DB); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database schema is up to date")
			return nil
		},
	}
}
