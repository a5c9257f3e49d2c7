package inventory

import "fmt"

// Validate checks required fields, enums and cross-node uniqueness. It returns
// the first problem found as a *ValidationError. Address syntax is not checked.
func (inv *Inventory) Validate() error {
	if err := inv.validateCluster(); err != nil {
		return err
	}

	if len(inv.CoreNodes)+len(inv.EdgeNodes) == 0 {
		return invalid(clusterScope, "core_nodes", "must list at least one node")
	}

	hostnames := make(map[string]bool)
	ips := make(map[string]string)

	for _, n := range inv.Nodes() {
		if err := inv.validateNode(n); err != nil {
			return err
		}

		if hostnames[n.Hostname] {
			return invalid(n.Hostname, "hostname", "is not unique")
		}
		hostnames[n.Hostname] = true

		if other, ok := ips[n.IP]; ok {
			return invalid(n.Hostname, "ip", fmt.Sprintf("%s is already used by %s", n.IP, other))
		}
		ips[n.IP] = n.Hostname
	}

	return inv.validateVIP()
}

func (inv *Inventory) validateCluster() error {
	c := inv.Cluster

	if c.Name == "" {
		return invalid(clusterScope, "cluster.name", "is required")
	}
	if c.Endpoint == "" {
		return invalid(clusterScope, "cluster.endpoint", "is required")
	}

	switch c.Network.Addressing {
	case AddressingSingle:
		// The default route needs somewhere to go.
		if c.Network.Gateway == "" {
			return invalid(clusterScope, "cluster.network.gateway", "is required for single addressing")
		}
	case AddressingDual:
	default:
		return invalid(clusterScope, "cluster.network.addressing",
			fmt.Sprintf("must be %q or %q, got %q", AddressingSingle, AddressingDual, c.Network.Addressing))
	}

	if c.Network.Prefix < 1 || c.Network.Prefix > 32 {
		return invalid(clusterScope, "cluster.network.prefix", fmt.Sprintf("must be between 1 and 32, got %d", c.Network.Prefix))
	}

	return nil
}

func (inv *Inventory) validateNode(n Node) error {
	if n.Hostname == "" {
		return invalid(fmt.Sprintf("%s entry with ip %q", n.Group, n.IP), "hostname", "is required")
	}
	if n.IP == "" {
		return invalid(n.Hostname, "ip", "is required")
	}

	// Edge nodes render as workers whatever they declare.
	if n.Group == GroupCore {
		switch n.Role {
		case RoleControlPlane, RoleWorker:
		case "":
			return invalid(n.Hostname, "role", "is required for core nodes")
		default:
			return invalid(n.Hostname, "role", fmt.Sprintf("must be %q or %q, got %q", RoleControlPlane, RoleWorker, n.Role))
		}
	}

	switch n.Class {
	case ClassCore, ClassEdge:
	default:
		return invalid(n.Hostname, "class", fmt.Sprintf("must be %q or %q, got %q", ClassCore, ClassEdge, n.Class))
	}

	if inv.Cluster.Network.Addressing == AddressingSingle && n.IsControlPlane() && n.Disk == "" {
		return invalid(n.Hostname, "disk", "is required for control plane nodes with single addressing")
	}

	return nil
}

func (inv *Inventory) validateVIP() error {
	vip := inv.Cluster.VIP

	if !vip.Enabled() {
		if vip.Anchor != "" {
			return invalid(clusterScope, "cluster.vip.ip", "is required when cluster.vip.anchor is set")
		}
		return nil
	}

	if vip.Anchor == "" {
		return invalid(clusterScope, "cluster.vip.anchor", "is required when cluster.vip.ip is set")
	}

	anchor, ok := inv.Node(vip.Anchor)
	if !ok {
		return invalid(clusterScope, "cluster.vip.anchor", fmt.Sprintf("%q is not in the inventory", vip.Anchor))
	}
	if !anchor.IsControlPlane() {
		return invalid(anchor.Hostname, "role", "must be controlplane to anchor the VIP")
	}

	return nil
}
