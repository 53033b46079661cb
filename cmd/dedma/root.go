package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/dedma"
	"github.com/aretw0/dedma/internal/platform"
)

var (
	verbose   bool
	quiet     bool
	rootPath  string
	lang      string
	systemDir string
	adapter   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dedma",
	Short: "Release notes from semantic commit subjects",
	Long: `dedma classifies commit subjects such as "feat (ui): New menu :<hash>",
records each commit once in a local SQLite store and renders a Markdown
release note per tag, grouped by kind and title.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Hide progress messages")
	rootCmd.PersistentFlags().StringVar(&rootPath, "root", "", "Project root (default: nearest directory holding .dedma or .git)")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "Display language: en or fr (default: $"+platform.EnvLanguage+")")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: sqlite or fs (default: config file, then sqlite)")
	rootCmd.PersistentFlags().StringVar(&systemDir, "system-dir", platform.DefaultSystemDir, "Directory holding the commit store")
}

// openApp resolves the project root and opens the commit store.
func openApp(cmd *cobra.Command, readOnly bool) *dedma.App {
	root, err := platform.ResolveRoot(rootPath, systemDir)
	if err != nil {
		fatal("Failed to resolve project root", err)
	}

	reporter := cmd.OutOrStdout()
	if quiet {
		reporter = io.Discard
	}

	opts := []dedma.Option{
		dedma.WithLogger(slog.Default()),
		dedma.WithSystemDir(systemDir),
		dedma.WithReadOnly(readOnly),
		dedma.WithReporter(reporter),
	}
	if adapter != "" {
		opts = append(opts, dedma.WithAdapter(adapter))
	}
	if lang != "" {
		l, err := dedma.ParseLanguage(lang)
		if err != nil {
			fatal("Invalid --lang", err)
		}
		opts = append(opts, dedma.WithLanguage(l))
	}

	app, err := dedma.New(root, opts...)
	if err != nil {
		fatal("Failed to open commit store", err)
	}
	return app
}
