package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"secretsanta/internal/adapters/auth"
)

const defaultTokenExpiry = 24 * time.Hour

func newTokenCommand(d deps) *cobra.Command {
	var (
		subject string
		expiry  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an organizer bearer token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := d.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			if expiry <= 0 {
				return fmt.Errorf("expiry must be positive, got %s", expiry)
			}
			token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(subject, expiry)
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "organizer the token is issued to")
	cmd.Flags().DurationVar(&expiry, "expiry", defaultTokenExpiry, "token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
