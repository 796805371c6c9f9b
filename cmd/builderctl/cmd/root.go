package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "builderctl",
		Short: "Operations tool for the campaign builder backend",
		Long: `builderctl applies the database schema and issues local session tokens
for exercising the campaign builder API.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newTokenCmd())

	return cmd
}
