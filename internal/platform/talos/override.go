package talos

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// OverrideDocument is the node specific machine config patch. Field order in
// these structs is the rendered key order, which keeps output reproducible.
type OverrideDocument struct {
	Machine MachinePatch `yaml:"machine"`
}

// MachinePatch is the machine section of an override.
type MachinePatch struct {
	Install *InstallPatch `yaml:"install,omitempty"`
	Network NetworkPatch  `yaml:"network"`
}

// InstallPatch names the install target disk.
type InstallPatch struct {
	Disk string `yaml:"disk"`
}

// NetworkPatch is the machine.network section.
type NetworkPatch struct {
	Hostname    string           `yaml:"hostname"`
	Interfaces  []InterfacePatch `yaml:"interfaces"`
	Nameservers []string         `yaml:"nameservers,omitempty"`
}

// InterfacePatch is one machine.network.interfaces entry. Entry 0 is the
// primary interface and the only one that may carry a VIP.
type InterfacePatch struct {
	Interface      string          `yaml:"interface,omitempty"`
	DeviceSelector *DeviceSelector `yaml:"deviceSelector,omitempty"`
	Addresses      []string        `yaml:"addresses"`
	Routes         []RoutePatch    `yaml:"routes,omitempty"`
	VIP            *VIPPatch       `yaml:"vip,omitempty"`
}

// DeviceSelector matches a link by kernel driver.
type DeviceSelector struct {
	Driver string `yaml:"driver"`
}

// RoutePatch is a static route.
type RoutePatch struct {
	Network string `yaml:"network"`
	Gateway string `yaml:"gateway"`
}

// VIPPatch is a shared virtual IP on an interface.
type VIPPatch struct {
	IP string `yaml:"ip"`
}

// Primary returns the primary interface entry, or nil if there is none.
func (d *OverrideDocument) Primary() *InterfacePatch {
	if len(d.Machine.Network.Interfaces) == 0 {
		return nil
	}
	return &d.Machine.Network.Interfaces[0]
}

// HasVIP reports whether any interface carries a VIP.
func (d *OverrideDocument) HasVIP() bool {
	for _, iface := range d.Machine.Network.Interfaces {
		if iface.VIP != nil {
			return true
		}
	}
	return false
}

// RenderOverride encodes a document as YAML. Identical documents always
// produce identical bytes.
func RenderOverride(doc *OverrideDocument) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode override for %s: %w", doc.Machine.Network.Hostname, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode override for %s: %w", doc.Machine.Network.Hostname, err)
	}

	return buf.Bytes(), nil
}
