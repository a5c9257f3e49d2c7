package wizard

import (
	"context"
	"fmt"
)

// Result holds all the answers from the interactive wizard.
type Result struct {
	// Cluster identity
	ClusterName string
	Endpoint    string

	// Network
	Gateway     string
	Nameservers []string
	Addressing  string
	VIP         string

	// Versions, empty means the generator default
	TalosVersion      string
	KubernetesVersion string

	CoreNodes []NodeAnswer
	EdgeNodes []NodeAnswer
}

// NodeAnswer is one node as entered in the wizard.
type NodeAnswer struct {
	Hostname  string
	IP        string
	StorageIP string
	Role      string
	Disk      string
	Driver    string
}

// RunWizard runs the interactive inventory wizard. The context is used for
// cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*Result, error) {
	result := &Result{}

	if err := runClusterGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}

	if err := runNetworkGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}

	coreCount, edgeCount, err := runNodeCountGroup(ctx)
	if err != nil {
		return nil, fmt.Errorf("node count: %w", err)
	}

	for i := 0; i < coreCount; i++ {
		node, err := runCoreNodeGroup(ctx, result, i)
		if err != nil {
			return nil, fmt.Errorf("core node %d: %w", i+1, err)
		}
		result.CoreNodes = append(result.CoreNodes, node)
	}

	for i := 0; i < edgeCount; i++ {
		node, err := runEdgeNodeGroup(ctx, result, i)
		if err != nil {
			return nil, fmt.Errorf("edge node %d: %w", i+1, err)
		}
		result.EdgeNodes = append(result.EdgeNodes, node)
	}

	if err := runVersionsGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("versions: %w", err)
	}

	return result, nil
}
