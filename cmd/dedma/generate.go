package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/dedma"
)

var (
	genTag    string
	genOutput string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [source-pattern...]",
	Short: "Record commits and write the release note",
	Long: `Read commit lines from the given files (glob patterns, ** supported) or,
when none are given, from git between the two newest tags. With --tag, git
commits are read from the tag before it up to it. New commits are recorded,
then the release note of the tag is written to --output.`,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp(cmd, false)
		defer app.Close()

		_, err := app.Generate(context.Background(), dedma.Request{
			Sources: args,
			Tag:     genTag,
			Output:  genOutput,
		})
		if err != nil {
			fatal("Failed to generate release note", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&genTag, "tag", "t", "", "Release tag (default: newest git tag, or \"tag\" for file sources)")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output Markdown file (default: whats_new.md)")
}
