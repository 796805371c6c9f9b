package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nekogravitycat/creator-booking-backend/internal/db"
	"github.com/nekogravitycat/creator-booking-backend/migrations"
)

func newMigrateCmd() *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Example: `  # Use DB_DSN from the environment or .env
  builderctl migrate

  # Explicit database
  builderctl migrate --dsn postgres://localhost/creator_booking`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				dsn = os.Getenv("DB_DSN")
			}
			if dsn == "" {
				return fmt.Errorf("no database: set --dsn or DB_DSN")
			}

			pool, err := db.NewPool(cmd.Context(), dsn, 2)
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := db.Migrate(cmd.Context(), pool, migrations.FS)
			for _, name := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
			}
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL DSN (defaults to DB_DSN)")
	return cmd
}
