package main

import (
	"errors"

	"github.com/spf13/cobra"

	"lifeblog/cmd/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides SERVER_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.Auth.JWTSecretKey == "" {
		return errors.New("JWT_SECRET_KEY is not set")
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Serve(cmd.Context())
}
