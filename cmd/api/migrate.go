package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"lifeblog/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the blog tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		if path == "" {
			path = cfg.DB.MigrationsPath
		}

		db, err := database.ConnectDB(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.CloseDB()

		if err := db.RunMigrations(cmd.Context(), path); err != nil {
			return err
		}

		slog.Info("migrations applied", "file", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().StringP("file", "f", "", "migration file (defaults to MIGRATIONS_PATH)")
}
