package main

import (
	"encoding/json"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the state of the commit store as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp(cmd, true)
		defer app.Close()

		state := map[string]any{
			"root":     app.Root,
			"language": app.Language,
			"output":   app.Config.Output,
		}
		for _, c := range []any{app.Service, app.Service.Repository()} {
			comp, ok := c.(introspection.Component)
			if !ok {
				continue
			}
			if intro, ok := c.(introspection.Introspectable); ok {
				state[comp.ComponentType()] = intro.State()
			}
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(state); err != nil {
			fatal("Failed to encode state", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
