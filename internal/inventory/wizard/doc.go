// Package wizard provides an interactive scaffold for a new inventory.
//
// The wizard asks for the cluster identity, network facts and the node list,
// then writes inventory/nodes.yaml together with starter shared patches in
// talos/patches.
package wizard
