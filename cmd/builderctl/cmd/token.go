package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nekogravitycat/creator-booking-backend/internal/auth"
)

func newTokenCmd() *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a session token signed with JWT_SECRET",
		Long: `Issues a bearer token the API accepts as the given user. Meant for local
development; production tokens come from the identity service.`,
		Example: `  builderctl token --user 1f0e2d3c-4b5a-4968-8776-655443322110 --ttl 2h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				return fmt.Errorf("JWT_SECRET is required")
			}
			if userID == "" {
				userID = uuid.NewString()
			} else if _, err := uuid.Parse(userID); err != nil {
				return fmt.Errorf("--user must be a uuid: %w", err)
			}

			token, err := auth.NewJWTManager(secret, os.Getenv("JWT_ISSUER"), ttl).Issue(userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id to embed (random when empty)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
