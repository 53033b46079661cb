package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/dedma"
)

var recordTag string

var recordCmd = &cobra.Command{
	Use:   "record [source-pattern...]",
	Short: "Record commits without rendering",
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp(cmd, false)
		defer app.Close()

		ctx := context.Background()
		text, tag, err := app.Collect(ctx, dedma.Request{Sources: args, Tag: recordTag})
		if err != nil {
			fatal("Failed to read commits", err)
		}

		found, recorded, err := app.Record(ctx, tag, text)
		if err != nil {
			fatal("Failed to record commits", err)
		}

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d\n", tag, recorded, found)
		}
	},
}

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.Flags().StringVarP(&recordTag, "tag", "t", "", "Release tag")
}
