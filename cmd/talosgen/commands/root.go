// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/talosgen/internal/config"
	"github.com/imamik/talosgen/internal/inventory"
)

// Root returns the root command for the talosgen CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "talosgen",
		Short:         "Generate Talos machine configs from a node inventory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(Generate())
	cmd.AddCommand(Render())
	cmd.AddCommand(Validate())
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Init())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

func addInventoryFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "inventory", "i", inventory.DefaultPath, "Path to the node inventory")
}

func addOutputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "output", "o", config.DefaultOutputDir, "Directory for secrets, node configs and talosconfig; shared patches default to its patches/ folder")
}
