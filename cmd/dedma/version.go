package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/dedma"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dedma",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dedma version %s\n", strings.TrimSpace(dedma.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
