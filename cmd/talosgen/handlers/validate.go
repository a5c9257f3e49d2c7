package handlers

import (
	"fmt"
	"os"

	"github.com/imamik/talosgen/internal/config"
)

// Validate loads the inventory and prints the nodes it would generate. Shared
// patches not set in the inventory are looked up under outputDir.
func Validate(inventoryPath, outputDir string) error {
	inv, err := loadInventory(inventoryPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Inventory %s is valid.\n\n", inventoryPath)
	fmt.Fprintf(stdout, "  Cluster:    %s\n", inv.Cluster.Name)
	fmt.Fprintf(stdout, "  Endpoint:   %s\n", inv.Cluster.Endpoint)
	fmt.Fprintf(stdout, "  Addressing: %s\n", inv.Cluster.Network.Addressing)
	if inv.Cluster.VIP.Enabled() {
		fmt.Fprintf(stdout, "  VIP:        %s on %s\n", inv.Cluster.VIP.IP, inv.Cluster.VIP.Anchor)
	}
	fmt.Fprintln(stdout)

	for _, n := range inv.Nodes() {
		fmt.Fprintf(stdout, "  %-24s %-15s %-13s %s\n", n.Hostname, n.IP, n.EffectiveRole, n.Class)
	}

	var missing int
	for _, path := range sharedPatches(inv, config.NewLayout(outputDir)) {
		if _, err := os.Stat(path); err != nil {
			missing++
			fmt.Fprintf(stdout, "\nWarning: shared patch %s not found\n", path)
		}
	}
	if missing > 0 {
		fmt.Fprintln(stdout, "Generation fails for nodes whose class uses a missing patch.")
	}

	return nil
}
