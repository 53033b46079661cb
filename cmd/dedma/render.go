package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	renderTag    string
	renderOutput string
	renderStdout bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the release note of a recorded tag",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp(cmd, true)
		defer app.Close()

		ctx := context.Background()
		tag := renderTag
		if tag == "" {
			r, err := app.Git.LatestRange(ctx)
			if err != nil {
				fatal("No --tag given and no git tag found", err)
			}
			tag = r.Tag()
		}

		if renderStdout {
			doc, err := app.Composer.Compose(ctx, tag)
			if err != nil {
				fatal("Failed to compose release note", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), doc)
			return
		}

		if _, err := app.Render(ctx, tag, renderOutput); err != nil {
			fatal("Failed to render release note", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderTag, "tag", "t", "", "Release tag (default: newest git tag)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output Markdown file (default: whats_new.md)")
	renderCmd.Flags().BoolVar(&renderStdout, "stdout", false, "Print the note instead of writing a file")
}
