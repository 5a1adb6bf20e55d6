// Package cli wires the draglist commands.
package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// App holds persistent flag state shared by all commands.
type App struct {
	ConfigPath string
}

// NewRootCmd builds the root command. Running with no subcommand starts the
// interactive demo.
func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "draglist",
		Short:        "Drag-to-reorder list TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive demo with sample items
  draglist

  # Use your own items file and keep the saved order
  draglist demo --items todo.json

  # Print the effective tuning
  draglist config show
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive demo.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runDemo(app, demoFlags{
					items: envOr("DRAGLIST_ITEMS", ""),
					db:    envOr("DRAGLIST_DB", defaultDBPath()),
					list:  "demo",
				})
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("DRAGLIST_CONFIG", ""), "Path to YAML tuning file")

	cmd.AddCommand(newDemoCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
