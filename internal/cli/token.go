package cli

import (
	"fmt"
	"time"

	"brainy-quiz-service/internal/auth"
	"brainy-quiz-service/internal/config"
	"github.com/spf13/cobra"
)

// NewTokenCmd mints a bearer token for local testing against the protected routes.
func NewTokenCmd(configPath *string) *cobra.Command {
	var (
		userID string
		ttl    string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed bearer token for a user id",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if ttl == "" {
				ttl = cfg.Auth.TokenTTL
			}
			token, err := auth.NewAuthenticator(cfg.Auth.Secret, cfg.Auth.Issuer).
				Sign(userID, config.Duration(ttl, 24*time.Hour))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", demoUserID, "user id to put in the token")
	cmd.Flags().StringVar(&ttl, "ttl", "", "token lifetime, e.g. 1h (defaults to auth.token_ttl)")
	return cmd
}
