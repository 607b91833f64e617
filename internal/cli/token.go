package cli

import (
	"fmt"
	"time"

	"github.com/dalemusser/clemsonquest/internal/app/system/adminauth"
	"github.com/dalemusser/clemsonquest/internal/domain/models"
	"github.com/spf13/cobra"
)

type tokenOptions struct {
	Subject string
	Role    string
	TTL     time.Duration
}

// NewTokenCommand creates the token command, which prints a signed token.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &tokenOptions{}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin bearer token",
		Long: `Mint an HS256 bearer token for the /admin routes.

The token is printed on stdout so it can be captured, e.g.
  TOKEN=$(cqadmin token --subject ops@clemson.edu)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := rootOpts.secret()
			if err != nil {
				return err
			}
			if opts.Subject == "" {
				return fmt.Errorf("--subject is required")
			}
			if opts.TTL <= 0 {
				return fmt.Errorf("--ttl must be positive")
			}
			signer, err := adminauth.NewSigner(secret, rootOpts.Issuer)
			if err != nil {
				return err
			}
			tok, err := signer.Issue(opts.Subject, opts.Role, opts.TTL)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Subject, "subject", "", "who the token is for (sub claim)")
	cmd.Flags().StringVar(&opts.Role, "role", models.RoleAdmin, "role claim")
	cmd.Flags().DurationVar(&opts.TTL, "ttl", 24*time.Hour, "token lifetime")

	return cmd
}

// NewVerifyCommand creates the verify command, which checks a token and
// prints its claims.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <token>",
		Short: "Check a bearer token and print its claims",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := rootOpts.secret()
			if err != nil {
				return err
			}
			signer, err := adminauth.NewSigner(secret, rootOpts.Issuer)
			if err != nil {
				return err
			}
			claims, err := signer.Verify(args[0])
			if err != nil {
				return fmt.Errorf("invalid token: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "subject: %s\n", claims.Subject)
			fmt.Fprintf(out, "role:    %s\n", claims.Role)
			if claims.ExpiresAt != nil {
				fmt.Fprintf(out, "expires: %s\n", claims.ExpiresAt.UTC().Format(time.RFC3339))
			}
			return nil
		},
	}
}
