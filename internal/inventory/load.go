package inventory

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the inventory lives relative to the working directory.
const DefaultPath = "inventory/nodes.yaml"

// Load reads, defaults and validates the inventory at path. Patch paths set
// in the inventory are resolved against the directory containing it.
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	absDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	inv, err := parse(data, absDir)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}

	return inv, nil
}

// Parse decodes, defaults and validates inventory bytes. baseDir is used to
// resolve relative patch paths.
func Parse(data []byte, baseDir string) (*Inventory, error) {
	inv, err := parse(data, baseDir)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}

	return inv, nil
}

// parse decodes strictly: unknown keys are treated as a malformed document.
func parse(data []byte, baseDir string) (*Inventory, error) {
	var inv Inventory

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&inv); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("inventory is empty")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	inv.BaseDir = baseDir
	inv.ApplyDefaults()

	return &inv, nil
}

// ApplyDefaults fills optional fields and derives node classes. It is
// idempotent.
func (inv *Inventory) ApplyDefaults() {
	net := &inv.Cluster.Network
	if inv.LegacyNetwork != nil {
		if net.Gateway == "" {
			net.Gateway = inv.LegacyNetwork.Gateway
		}
		if len(net.Nameservers) == 0 {
			net.Nameservers = inv.LegacyNetwork.Nameservers
		}
		inv.LegacyNetwork = nil
	}

	if net.Addressing == "" {
		net.Addressing = AddressingSingle
	}
	if net.Prefix == 0 {
		net.Prefix = DefaultPrefixLength
	}
	if net.Interfaces.Primary == "" {
		net.Interfaces.Primary = DefaultPrimaryInterface
	}
	if net.Interfaces.Storage == "" {
		net.Interfaces.Storage = DefaultStorageInterface
	}

	patches := &inv.Cluster.Patches
	patches.Core = inv.resolve(patches.Core)
	patches.Edge = inv.resolve(patches.Edge)

	defaultNodes(inv.CoreNodes, ClassCore)
	defaultNodes(inv.EdgeNodes, ClassEdge)
}

func defaultNodes(nodes []NodeSpec, class Class) {
	for i := range nodes {
		n := &nodes[i]
		if n.Disk == "" && n.Specs != nil {
			n.Disk = n.Specs.Disk
		}
		n.Specs = nil
		if n.Class == "" {
			n.Class = class
		}
	}
}

func (inv *Inventory) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || inv.BaseDir == "" {
		return path
	}
	return filepath.Join(inv.BaseDir, path)
}
