package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/accumanage/portal/internal/auth"
	"github.com/accumanage/portal/internal/domain"
)

type mintOptions struct {
	userID string
	name   string
	email  string
	role   string
	ttl    time.Duration
	admin  bool
}

func newMintCommand(load ConfigLoader) *cobra.Command {
	opts := &mintOptions{}
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Sign a session token with the configured secret",
		Long: `Sign a session token for the given identity and print it.

The lifetime defaults to the general session TTL, or the admin TTL with --admin.

Examples:
  sessionctl mint --user-id 42 --email ops@example.com --role admin --admin
  sessionctl mint --user-id 7 --role user --ttl 10m`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMint(cmd, load, opts)
		},
	}

	cmd.Flags().StringVar(&opts.userID, "user-id", "", "account ID (required)")
	cmd.Flags().StringVar(&opts.name, "name", "", "display name")
	cmd.Flags().StringVar(&opts.email, "email", "", "email address")
	cmd.Flags().StringVar(&opts.role, "role", string(domain.RoleUser), "superadmin, admin or user")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", 0, "token lifetime (overrides the configured TTL)")
	cmd.Flags().BoolVar(&opts.admin, "admin", false, "use the admin session lifetime")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

func runMint(cmd *cobra.Command, load ConfigLoader, opts *mintOptions) error {
	role := domain.Role(opts.role)
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", opts.role)
	}
	if opts.ttl < 0 {
		return errors.New("ttl must be positive")
	}

	cfg, err := load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ttl := opts.ttl
	if ttl == 0 {
		ttl = cfg.Auth.SessionTTL()
		if opts.admin {
			ttl = cfg.Auth.AdminSessionTTL()
		}
	}

	issued := time.Now()
	token, err := auth.NewTokenCodec(cfg.Auth).Encode(auth.Claims{
		UserID:    opts.userID,
		Name:      opts.name,
		Email:     opts.email,
		Role:      role,
		IssuedAt:  issued,
		ExpiresAt: issued.Add(ttl),
	})
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
