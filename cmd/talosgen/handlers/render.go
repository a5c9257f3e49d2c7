package handlers

import (
	"fmt"
	"strings"

	"github.com/imamik/talosgen/internal/config"
	"github.com/imamik/talosgen/internal/platform/talos"
)

// Render prints the override document a generate run would feed to the
// generator for hostname, prefixed with the patch stack and SANs as comments.
func Render(inventoryPath, outputDir, hostname string) error {
	inv, err := loadInventory(inventoryPath)
	if err != nil {
		return err
	}

	node, ok := inv.Node(hostname)
	if !ok {
		return fmt.Errorf("node %q not found in %s", hostname, inventoryPath)
	}

	doc := talos.Synthesize(inv.Cluster, node.NodeSpec, node.EffectiveRole)
	data, err := talos.RenderOverride(doc)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "# %s: %s, %s class (%s)\n", node.Hostname, node.EffectiveRole, node.Class, node.Group)
	fmt.Fprintf(stdout, "# shared patch: %s\n", inv.PatchPath(node.Class, config.NewLayout(outputDir).PatchDir()))
	if doc.HasVIP() {
		fmt.Fprintf(stdout, "# VIP anchor: %s\n", inv.Cluster.VIP.IP)
	}
	if sans := talos.CertSANs(inv.Cluster, node.NodeSpec, node.EffectiveRole); len(sans) > 0 {
		fmt.Fprintf(stdout, "# additional SANs: %s\n", strings.Join(sans, ", "))
	}
	_, err = stdout.Write(data)
	return err
}
