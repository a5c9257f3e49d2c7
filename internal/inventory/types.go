package inventory

import (
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Role is the machine type a node is rendered as.
type Role string

// Supported roles.
const (
	RoleControlPlane Role = "controlplane"
	RoleWorker       Role = "worker"
)

// Class selects the shared role patch applied to a node.
type Class string

// Supported node classes.
const (
	ClassCore Class = "core"
	ClassEdge Class = "edge"
)

// AddressingPolicy selects how node interfaces are rendered.
// Exactly one policy applies to a whole inventory.
type AddressingPolicy string

const (
	// AddressingSingle renders one interface with a default route, a driver
	// based device selector, cluster nameservers and an install block.
	AddressingSingle AddressingPolicy = "single"
	// AddressingDual renders a named primary interface without route or DNS
	// overrides, plus a named storage interface when the node has a storage IP.
	AddressingDual AddressingPolicy = "dual"
)

// Group identifies which inventory list a node came from.
type Group string

// Inventory groups.
const (
	GroupCore Group = "core_nodes"
	GroupEdge Group = "edge_nodes"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultPrimaryInterface = "eth0"
	DefaultStorageInterface = "eth1"
	DefaultPrefixLength     = 24
)

// Inventory is the parsed declarative source.
type Inventory struct {
	Cluster   ClusterSpec `yaml:"cluster"`
	CoreNodes []NodeSpec  `yaml:"core_nodes"`
	EdgeNodes []NodeSpec  `yaml:"edge_nodes"`

	// LegacyNetwork is the top-level network block of older inventories.
	// It is folded into Cluster.Network by ApplyDefaults.
	LegacyNetwork *NetworkSpec `yaml:"network,omitempty"`

	// BaseDir is the directory relative patch paths are resolved against.
	BaseDir string `yaml:"-"`
}

// ClusterSpec holds cluster-wide facts. It is immutable once loaded.
type ClusterSpec struct {
	Name              string      `yaml:"name"`
	Endpoint          string      `yaml:"endpoint"`
	Network           NetworkSpec `yaml:"network"`
	VIP               VIPSpec     `yaml:"vip,omitempty"`
	Patches           PatchSpec   `yaml:"patches,omitempty"`
	TalosVersion      string      `yaml:"talos_version,omitempty"`
	KubernetesVersion string      `yaml:"kubernetes_version,omitempty"`
}

// NetworkSpec describes shared addressing facts.
type NetworkSpec struct {
	Gateway     string           `yaml:"gateway"`
	Nameservers []string         `yaml:"nameservers"`
	Addressing  AddressingPolicy `yaml:"addressing,omitempty"`
	Prefix      int              `yaml:"prefix,omitempty"`
	Interfaces  InterfaceNames   `yaml:"interfaces,omitempty"`
}

// InterfaceNames names the interfaces used by the dual addressing policy.
type InterfaceNames struct {
	Primary string `yaml:"primary,omitempty"`
	Storage string `yaml:"storage,omitempty"`
}

// VIPSpec configures the shared control plane virtual IP.
type VIPSpec struct {
	IP     string `yaml:"ip,omitempty"`
	Anchor string `yaml:"anchor,omitempty"`
}

// Enabled reports whether a VIP is configured.
func (v VIPSpec) Enabled() bool {
	return v.IP != ""
}

// PatchSpec points at the two shared role patches. Unset entries fall back to
// <class>.yaml in the output directory's patches folder.
type PatchSpec struct {
	Core string `yaml:"core,omitempty"`
	Edge string `yaml:"edge,omitempty"`
}

// NodeSpec is one node record.
type NodeSpec struct {
	Hostname  string  `yaml:"hostname"`
	IP        string  `yaml:"ip"`
	StorageIP string  `yaml:"storage_ip,omitempty"`
	Role      Role    `yaml:"role,omitempty"`
	Disk      string  `yaml:"disk,omitempty"`
	Driver    string  `yaml:"driver,omitempty"`
	Class     Class   `yaml:"class,omitempty"`
	Specs     *NodeHW `yaml:"specs,omitempty"`
}

// NodeHW is the legacy hardware block; only the disk is used.
type NodeHW struct {
	Disk string `yaml:"disk,omitempty"`
}

// UnmarshalYAML reads the disk and ignores every other hardware fact (cpu,
// ram, ...), which inventories shared with other tools commonly carry.
func (hw *NodeHW) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Disk string `yaml:"disk"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	hw.Disk = raw.Disk
	return nil
}

// SharedPatchFile is the default file name of a class's shared patch.
func SharedPatchFile(class Class) string {
	return string(class) + ".yaml"
}

// PatchPath returns the shared role patch for a node class. Patches not set
// in the inventory are looked up in patchDir.
func (inv *Inventory) PatchPath(class Class, patchDir string) string {
	path := inv.Cluster.Patches.Edge
	if class == ClassCore {
		path = inv.Cluster.Patches.Core
	}
	if path == "" {
		return filepath.Join(patchDir, SharedPatchFile(class))
	}
	return path
}

// Node is a node record with its group and effective role resolved.
type Node struct {
	NodeSpec
	Group         Group
	EffectiveRole Role
}

// IsControlPlane reports whether the node renders as a control plane.
func (n Node) IsControlPlane() bool {
	return n.EffectiveRole == RoleControlPlane
}

// Nodes returns every node in generation order: core nodes first, then edge
// nodes, each in file order.
func (inv *Inventory) Nodes() []Node {
	nodes := make([]Node, 0, len(inv.CoreNodes)+len(inv.EdgeNodes))
	for _, n := range inv.CoreNodes {
		nodes = append(nodes, Node{NodeSpec: n, Group: GroupCore, EffectiveRole: EffectiveRole(GroupCore, n)})
	}
	for _, n := range inv.EdgeNodes {
		nodes = append(nodes, Node{NodeSpec: n, Group: GroupEdge, EffectiveRole: EffectiveRole(GroupEdge, n)})
	}
	return nodes
}

// Node looks up a node by hostname.
func (inv *Inventory) Node(hostname string) (Node, bool) {
	for _, n := range inv.Nodes() {
		if n.Hostname == hostname {
			return n, true
		}
	}
	return Node{}, false
}

// EffectiveRole resolves the role a node renders as. Edge membership always
// wins over the declared role.
func EffectiveRole(group Group, n NodeSpec) Role {
	if group == GroupEdge {
		return RoleWorker
	}
	if n.Role == "" {
		return RoleWorker
	}
	return n.Role
}
