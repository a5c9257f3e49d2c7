package wizard

import (
	"github.com/imamik/talosgen/internal/inventory"
)

// BuildInventory converts wizard answers into an inventory. The VIP, when
// set, is anchored on the first core control plane node.
func BuildInventory(result *Result) *inventory.Inventory {
	inv := &inventory.Inventory{
		Cluster: inventory.ClusterSpec{
			Name:     result.ClusterName,
			Endpoint: result.Endpoint,
			Network: inventory.NetworkSpec{
				Gateway:     result.Gateway,
				Nameservers: result.Nameservers,
				Addressing:  inventory.AddressingPolicy(result.Addressing),
			},
			TalosVersion:      result.TalosVersion,
			KubernetesVersion: result.KubernetesVersion,
		},
	}

	for _, n := range result.CoreNodes {
		inv.CoreNodes = append(inv.CoreNodes, buildNode(n, inventory.Role(n.Role)))
	}
	for _, n := range result.EdgeNodes {
		inv.EdgeNodes = append(inv.EdgeNodes, buildNode(n, inventory.RoleWorker))
	}

	if result.VIP != "" {
		for _, n := range inv.CoreNodes {
			if n.Role == inventory.RoleControlPlane {
				inv.Cluster.VIP = inventory.VIPSpec{IP: result.VIP, Anchor: n.Hostname}
				break
			}
		}
	}

	return inv
}

func buildNode(n NodeAnswer, role inventory.Role) inventory.NodeSpec {
	return inventory.NodeSpec{
		Hostname:  n.Hostname,
		IP:        n.IP,
		StorageIP: n.StorageIP,
		Role:      role,
		Disk:      n.Disk,
		Driver:    n.Driver,
	}
}
