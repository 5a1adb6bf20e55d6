package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"draglist/internal/config"
	"draglist/internal/tui"
)

type demoFlags struct {
	items    string
	db       string
	list     string
	variable bool
}

func newDemoCmd(app *App) *cobra.Command {
	flags := demoFlags{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive reorder demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(app, flags)
		},
	}

	cmd.Flags().StringVar(&flags.items, "items", envOr("DRAGLIST_ITEMS", ""), "Path to items JSON file (default: built-in samples)")
	cmd.Flags().StringVar(&flags.db, "db", envOr("DRAGLIST_DB", defaultDBPath()), "Path to saved-orders database (empty disables saving)")
	cmd.Flags().StringVar(&flags.list, "list", "demo", "List id under which the order is saved")
	cmd.Flags().BoolVar(&flags.variable, "variable-height", false, "Demo variable-height rows (forces measured extents)")

	return cmd
}

func runDemo(app *App, flags demoFlags) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	if flags.variable {
		cfg.Mode = "measured"
	}
	return tui.Run(tui.Options{
		ListID:         flags.list,
		ItemsPath:      flags.items,
		DBPath:         flags.db,
		VariableHeight: flags.variable,
		Config:         cfg,
	})
}

// defaultDBPath is ~/.draglist/orders.sqlite; an unknown home directory
// disables persistence rather than failing.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".draglist", "orders.sqlite")
}
