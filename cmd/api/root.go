package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lifeblog/internal/config"
	"lifeblog/internal/logging"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "lifeblog",
	Short: "Personal blog backend",
	Long: `lifeblog serves a personal blog: posts with an optional cover image and
any number of categories. Reading is public; writing requires a bearer token.

Without a subcommand the HTTP server is started.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.LoadConfig()
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Log.Level = level
		}
		logging.Setup(cfg.Log)
	},
	RunE: runServe,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringP("log-level", "l", "", "log level (debug, info, warn, error)")
}
