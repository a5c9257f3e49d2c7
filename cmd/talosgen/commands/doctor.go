package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/talosgen/cmd/talosgen/handlers"
	"github.com/imamik/talosgen/internal/platform/talos"
)

// Doctor returns the command for checking that generate can run.
func Doctor() *cobra.Command {
	var opts handlers.DoctorOptions

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check tools, inventory and output directory",
		Long: `Check everything a generate run depends on:

  - talosctl is installed (unless --backend builtin)
  - the inventory loads and validates
  - both shared patches exist
  - the output directory is usable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), opts)
		},
	}

	addInventoryFlag(cmd, &opts.InventoryPath)
	addOutputFlag(cmd, &opts.OutputDir)
	cmd.Flags().StringVar(&opts.Backend, "backend", handlers.BackendTalosctl, "Config generator: talosctl or builtin")
	cmd.Flags().StringVar(&opts.Talosctl, "talosctl", talos.DefaultTalosctl, "talosctl binary name or path")

	return cmd
}
