package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/talosgen/cmd/talosgen/handlers"
)

// Render returns the command that prints one node's override document.
func Render() *cobra.Command {
	var inventoryPath, outputDir string

	cmd := &cobra.Command{
		Use:   "render <hostname>",
		Short: "Print the override patch for a node",
		Long: `Print the node-specific override that generate would pass to the
generator, without writing anything. Useful for review and diffing.

Examples:
  talosgen render talos-core-01
  talosgen render talos-edge-01 -i lab/nodes.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return handlers.Render(inventoryPath, outputDir, args[0])
		},
	}

	addInventoryFlag(cmd, &inventoryPath)
	addOutputFlag(cmd, &outputDir)

	return cmd
}
