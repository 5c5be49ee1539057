package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"lifeblog/internal/auth"
)

// tokenCmd signs a token for local development against a self-hosted
// secret. Production tokens come from the identity provider.
var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Issue a development access token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Auth.JWTSecretKey == "" {
			return errors.New("JWT_SECRET_KEY is not set")
		}

		email, _ := cmd.Flags().GetString("email")
		ttl, _ := cmd.Flags().GetDuration("ttl")
		if ttl <= 0 {
			ttl = cfg.Auth.AccessTokenDuration
		}

		issuer := auth.NewIssuer(cfg.Auth.JWTSecretKey, cfg.Auth.RequiredRole, ttl)
		token, expiresAt, err := issuer.Issue(args[0], email)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", humanize.Time(expiresAt))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().String("email", "", "email claim")
	tokenCmd.Flags().Duration("ttl", 0, "token lifetime (defaults to ACCESS_TOKEN_DURATION)")
}
