package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/talosgen/cmd/talosgen/handlers"
)

// Validate returns the command that checks an inventory without generating.
func Validate() *cobra.Command {
	var inventoryPath, outputDir string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the inventory",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Validate(inventoryPath, outputDir)
		},
	}

	addInventoryFlag(cmd, &inventoryPath)
	addOutputFlag(cmd, &outputDir)

	return cmd
}
