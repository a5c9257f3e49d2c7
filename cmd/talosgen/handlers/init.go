package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/talosgen/internal/config"
	"github.com/imamik/talosgen/internal/inventory/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	runWizard           = wizard.RunWizard
	writeInventory      = wizard.WriteInventory
	writeStarterPatches = wizard.WriteStarterPatches
)

// Init runs the inventory wizard and writes the inventory to outputPath. Starter
// shared patches go to the patches folder of outputDir, where generate looks
// for them.
func Init(ctx context.Context, outputPath, outputDir string, force bool) error {
	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	inv := wizard.BuildInventory(result)
	if err := writeInventory(inv, outputPath, force); err != nil {
		if wizard.IsExistsError(err) {
			return fmt.Errorf("%w (use --force to overwrite)", err)
		}
		return fmt.Errorf("failed to write inventory: %w", err)
	}

	patches, err := writeStarterPatches(config.NewLayout(outputDir).PatchDir())
	if err != nil {
		return fmt.Errorf("failed to write starter patches: %w", err)
	}

	printInitSuccess(outputPath, result, patches)
	return nil
}

func printWelcome() {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "talosgen - Talos machine configs from one inventory")
	fmt.Fprintln(stdout, "===================================================")
	fmt.Fprintln(stdout)
}

func printInitSuccess(outputPath string, result *wizard.Result, patches []string) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Inventory saved!")
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  File:       %s\n", outputPath)
	for _, p := range patches {
		fmt.Fprintf(stdout, "  Patch:      %s\n", p)
	}
	fmt.Fprintf(stdout, "  Cluster:    %s\n", result.ClusterName)
	fmt.Fprintf(stdout, "  Core nodes: %d\n", len(result.CoreNodes))
	fmt.Fprintf(stdout, "  Edge nodes: %d\n", len(result.EdgeNodes))
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Next Steps")
	fmt.Fprintln(stdout, "----------")
	fmt.Fprintf(stdout, "  1. Review %s and the shared patches\n", outputPath)
	fmt.Fprintln(stdout, "  2. Generate configs:")
	fmt.Fprintf(stdout, "     talosgen generate --inventory %s\n", outputPath)
	fmt.Fprintln(stdout)
}
