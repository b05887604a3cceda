package main

import (
	"fmt"
	"time"

	"github.com/SscSPs/pharmacy_moneybox/internal/middleware"
	"github.com/SscSPs/pharmacy_moneybox/internal/platform/config"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		userID     string
		pharmacyID string
		role       string
		ttl        time.Duration
	)
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed access token for development and integration testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := middleware.Role(role)
			if !r.IsValid() {
				return fmt.Errorf("unknown role %q", role)
			}
			if userID == "" {
				userID = uuid.NewString()
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.JWTExpiryDuration
			}
			token, err := middleware.IssueToken(cfg.JWTSecret, cfg.JWTIssuer, userID, pharmacyID, r, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	tokenCmd.Flags().StringVar(&userID, "user", "", "user ID (random when empty)")
	tokenCmd.Flags().StringVar(&pharmacyID, "pharmacy", "", "pharmacy ID")
	tokenCmd.Flags().StringVar(&role, "role", string(middleware.RoleCashier), "ADMIN, MANAGER, CASHIER or READONLY")
	tokenCmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_EXPIRY_DURATION)")
	_ = tokenCmd.MarkFlagRequired("pharmacy")
	return tokenCmd
}
