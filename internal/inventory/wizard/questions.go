package wizard

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/imamik/talosgen/internal/inventory"
)

// runClusterGroup prompts for cluster name and API endpoint.
func runClusterGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster Name").
				Description("1-32 lowercase alphanumeric characters or hyphens").
				Placeholder("homelab").
				Value(&result.ClusterName).
				Validate(validateClusterName),
			huh.NewInput().
				Title("Cluster Endpoint").
				Description("Kubernetes API endpoint, usually the VIP").
				Placeholder("https://10.10.0.10:6443").
				Value(&result.Endpoint).
				Validate(validateEndpoint),
		).Title("Cluster Identity"),
	).RunWithContext(ctx)
}

// runNetworkGroup prompts for gateway, DNS, addressing policy and VIP.
func runNetworkGroup(ctx context.Context, result *Result) error {
	var nameservers string
	result.Addressing = string(inventory.AddressingSingle)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Addressing").
				Description("single: one NIC with default route and DNS; dual: named primary and storage interfaces").
				Options(
					huh.NewOption("Single network", string(inventory.AddressingSingle)),
					huh.NewOption("Dual network (primary + storage)", string(inventory.AddressingDual)),
				).
				Value(&result.Addressing),
			huh.NewInput().
				Title("Gateway").
				Placeholder("10.10.0.1").
				Value(&result.Gateway).
				Validate(validateOptionalIP),
			huh.NewInput().
				Title("Nameservers").
				Description("Comma-separated").
				Placeholder("1.1.1.1, 8.8.8.8").
				Value(&nameservers),
			huh.NewInput().
				Title("Virtual IP (Optional)").
				Description("Shared control plane address, carried by the first control plane node").
				Placeholder("10.10.0.10").
				Value(&result.VIP).
				Validate(validateOptionalIP),
		).Title("Network"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.Nameservers = parseList(nameservers)
	return nil
}

// runNodeCountGroup prompts for the size of both node groups.
func runNodeCountGroup(ctx context.Context) (core, edge int, err error) {
	core = 1
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Core Nodes").
				Description("Nodes that keep their declared role").
				Options(huh.NewOptions(1, 2, 3, 4, 5)...).
				Value(&core),
			huh.NewSelect[int]().
				Title("Edge Nodes").
				Description("Nodes that always run as workers").
				Options(huh.NewOptions(0, 1, 2, 3, 4, 5)...).
				Value(&edge),
		).Title("Nodes"),
	).RunWithContext(ctx)
	return core, edge, err
}

// runCoreNodeGroup prompts for one core node.
func runCoreNodeGroup(ctx context.Context, result *Result, index int) (NodeAnswer, error) {
	node := NodeAnswer{
		Hostname: fmt.Sprintf("talos-core-%02d", index+1),
		Role:     string(inventory.RoleControlPlane),
		Disk:     "/dev/sda",
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Hostname").
			Value(&node.Hostname).
			Validate(validateHostname),
		huh.NewInput().
			Title("IP Address").
			Value(&node.IP).
			Validate(validateIP),
		huh.NewSelect[string]().
			Title("Role").
			Options(
				huh.NewOption("Control plane", string(inventory.RoleControlPlane)),
				huh.NewOption("Worker", string(inventory.RoleWorker)),
			).
			Value(&node.Role),
		huh.NewInput().
			Title("Install Disk").
			Value(&node.Disk),
		huh.NewInput().
			Title("NIC Driver (Optional)").
			Description("Selects the primary interface by kernel driver, e.g. r8152").
			Value(&node.Driver),
	}
	if result.Addressing == string(inventory.AddressingDual) {
		fields = append(fields, storageIPField(&node))
	}

	err := huh.NewForm(
		huh.NewGroup(fields...).Title(fmt.Sprintf("Core Node %d", index+1)),
	).RunWithContext(ctx)
	return node, err
}

// runEdgeNodeGroup prompts for one edge node.
func runEdgeNodeGroup(ctx context.Context, result *Result, index int) (NodeAnswer, error) {
	node := NodeAnswer{
		Hostname: fmt.Sprintf("talos-edge-%02d", index+1),
		Role:     string(inventory.RoleWorker),
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Hostname").
			Value(&node.Hostname).
			Validate(validateHostname),
		huh.NewInput().
			Title("IP Address").
			Value(&node.IP).
			Validate(validateIP),
		huh.NewInput().
			Title("Install Disk (Optional)").
			Value(&node.Disk),
	}
	if result.Addressing == string(inventory.AddressingDual) {
		fields = append(fields, storageIPField(&node))
	}

	err := huh.NewForm(
		huh.NewGroup(fields...).Title(fmt.Sprintf("Edge Node %d", index+1)),
	).RunWithContext(ctx)
	return node, err
}

func storageIPField(node *NodeAnswer) huh.Field {
	return huh.NewInput().
		Title("Storage IP (Optional)").
		Description("Address on the storage interface").
		Value(&node.StorageIP).
		Validate(validateOptionalIP)
}

// runVersionsGroup prompts for optional version pins.
func runVersionsGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Talos Version (Optional)").
				Description("Leave empty for the talosctl default").
				Placeholder("v1.12.4").
				Value(&result.TalosVersion),
			huh.NewInput().
				Title("Kubernetes Version (Optional)").
				Placeholder("v1.35.0").
				Value(&result.KubernetesVersion),
		).Title("Versions"),
	).RunWithContext(ctx)
}
