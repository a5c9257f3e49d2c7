package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/talosgen/cmd/talosgen/handlers"
	"github.com/imamik/talosgen/internal/config"
	"github.com/imamik/talosgen/internal/inventory"
)

// Init returns the command for interactively creating an inventory.
//
// Flags:
//
//	--output, -o: Path to the inventory file (default "inventory/nodes.yaml")
//	--output-dir: Generate output directory; starter patches go to its patches/ folder (default "talos")
//	--force, -f: Overwrite an existing inventory
func Init() *cobra.Command {
	var (
		outputPath string
		outputDir  string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a node inventory",
		Long: `Interactively create a node inventory.

The wizard asks for:

  - Cluster identity (name and API endpoint)
  - Network (addressing policy, gateway, nameservers, VIP)
  - Core and edge nodes
  - Talos and Kubernetes versions (optional)

Starter shared patches are written to <output-dir>/patches unless they
already exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, outputDir, force)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", inventory.DefaultPath, "Output file path")
	cmd.Flags().StringVar(&outputDir, "output-dir", config.DefaultOutputDir, "Directory generate writes to; starter patches go to its patches/ folder")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing inventory")

	return cmd
}
