package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List recorded tags with their commit count",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp(cmd, true)
		defer app.Close()

		ctx := context.Background()
		tags, err := app.Service.Tags(ctx)
		if err != nil {
			fatal("Failed to list tags", err)
		}
		for _, tag := range tags {
			n, err := app.Service.Count(ctx, tag)
			if err != nil {
				fatal("Failed to count commits", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", tag, n)
		}
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
