package talos

import (
	"fmt"

	"github.com/imamik/talosgen/internal/inventory"
)

const (
	// defaultRouteNetwork is the destination of the single-policy default route.
	defaultRouteNetwork = "0.0.0.0/0"

	// anyDriver matches every link.
	anyDriver = "*"
)

// Synthesize builds the override document for one node. It is pure: the same
// inputs always yield an equal document.
func Synthesize(cluster inventory.ClusterSpec, node inventory.NodeSpec, role inventory.Role) *OverrideDocument {
	doc := &OverrideDocument{
		Machine: MachinePatch{
			Network: NetworkPatch{
				Hostname: node.Hostname,
			},
		},
	}

	switch cluster.Network.Addressing {
	case inventory.AddressingDual:
		doc.Machine.Network.Interfaces = buildDualInterfaces(cluster, node)
	default:
		doc.Machine.Network.Interfaces = []InterfacePatch{buildSinglePrimary(cluster, node)}
		doc.Machine.Network.Nameservers = copyStrings(cluster.Network.Nameservers)
		if node.Disk != "" {
			doc.Machine.Install = &InstallPatch{Disk: node.Disk}
		}
	}

	if anchorsVIP(cluster, node, role) {
		doc.Primary().VIP = &VIPPatch{IP: cluster.VIP.IP}
	}

	return doc
}

// buildSinglePrimary builds the one interface of the single addressing
// policy: default route through the cluster gateway and a driver selector.
func buildSinglePrimary(cluster inventory.ClusterSpec, node inventory.NodeSpec) InterfacePatch {
	return InterfacePatch{
		DeviceSelector: &DeviceSelector{Driver: deviceDriver(node)},
		Addresses:      []string{address(node.IP, cluster.Network.Prefix)},
		Routes: []RoutePatch{
			{
				Network: defaultRouteNetwork,
				Gateway: cluster.Network.Gateway,
			},
		},
	}
}

// buildDualInterfaces builds named interfaces without route or DNS overrides.
// The storage interface is only added when the node has a storage address.
func buildDualInterfaces(cluster inventory.ClusterSpec, node inventory.NodeSpec) []InterfacePatch {
	names := cluster.Network.Interfaces
	interfaces := []InterfacePatch{
		{
			Interface: names.Primary,
			Addresses: []string{address(node.IP, cluster.Network.Prefix)},
		},
	}

	if node.StorageIP != "" {
		interfaces = append(interfaces, InterfacePatch{
			Interface: names.Storage,
			Addresses: []string{address(node.StorageIP, cluster.Network.Prefix)},
		})
	}

	return interfaces
}

// deviceDriver pins core nodes to their hinted driver; everything else
// matches any link.
func deviceDriver(node inventory.NodeSpec) string {
	if node.Class == inventory.ClassCore && node.Driver != "" {
		return node.Driver
	}
	return anyDriver
}

// anchorsVIP reports whether the node carries the cluster VIP.
func anchorsVIP(cluster inventory.ClusterSpec, node inventory.NodeSpec, role inventory.Role) bool {
	return role == inventory.RoleControlPlane &&
		cluster.VIP.Enabled() &&
		node.Hostname == cluster.VIP.Anchor
}

// CertSANs returns the extra subject alternative names for a node's
// certificates: IP, hostname and VIP for control planes, none for workers.
func CertSANs(cluster inventory.ClusterSpec, node inventory.NodeSpec, role inventory.Role) []string {
	if role != inventory.RoleControlPlane {
		return nil
	}

	sans := []string{node.IP, node.Hostname}
	if cluster.VIP.Enabled() {
		sans = append(sans, cluster.VIP.IP)
	}

	return sans
}

func address(ip string, prefix int) string {
	return fmt.Sprintf("%s/%d", ip, prefix)
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
