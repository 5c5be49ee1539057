package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lifeblog/cmd/app"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all blog content with sample categories and posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		posts, err := a.Services.Seed.Seed(cmd.Context())
		if err != nil {
			return err
		}

		for _, post := range posts {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", post.ID, post.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
