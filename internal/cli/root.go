// Package cli implements cqadmin, the operator tool for minting and
// inspecting admin bearer tokens.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

// SecretEnv is read when --secret is not given. It matches the server's
// admin_token_secret environment variable.
const SecretEnv = "CLEMSONQUEST_ADMIN_TOKEN_SECRET"

// RootOptions holds flags shared by all commands.
type RootOptions struct {
	Secret string
	Issuer string

	getenv func(string) string
}

func (o *RootOptions) secret() (string, error) {
	if o.Secret != "" {
		return o.Secret, nil
	}
	if s := o.getenv(SecretEnv); s != "" {
		return s, nil
	}
	return "", errors.New("no signing secret: pass --secret or set " + SecretEnv)
}

// NewRootCommand creates the cqadmin root command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(os.Getenv)
}

func newRootCommand(getenv func(string) string) *cobra.Command {
	opts := &RootOptions{getenv: getenv}

	cmd := &cobra.Command{
		Use:           "cqadmin",
		Short:         "ClemsonQuest admin tooling",
		Long:          "Mint and inspect the bearer tokens accepted by /admin routes.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Secret, "secret", "", "HS256 signing secret (default $"+SecretEnv+")")
	cmd.PersistentFlags().StringVar(&opts.Issuer, "issuer", "clemsonquest", "token issuer; must match admin_token_issuer")

	cmd.AddCommand(NewTokenCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))

	return cmd
}
