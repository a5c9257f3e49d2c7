package inventory

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInventory = `
cluster:
  name: homelab
  endpoint: https://10.10.0.10:6443
  network:
    gateway: 10.10.0.1
    nameservers:
      - 1.1.1.1
      - 8.8.8.8
  vip:
    ip: 10.10.0.10
    anchor: talos-core-01
core_nodes:
  - hostname: talos-core-01
    ip: 10.10.0.5
    role: controlplane
    driver: r8152
    disk: /dev/sda
  - hostname: talos-core-02
    ip: 10.10.0.6
    role: worker
edge_nodes:
  - hostname: talos-edge-01
    ip: 10.10.0.20
    role: controlplane
`

func writeInventory(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "nodes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Sample(t *testing.T) {
	path := writeInventory(t, sampleInventory)

	inv, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "homelab", inv.Cluster.Name)
	assert.Equal(t, "https://10.10.0.10:6443", inv.Cluster.Endpoint)
	assert.Equal(t, "10.10.0.1", inv.Cluster.Network.Gateway)
	assert.Equal(t, []string{"1.1.1.1", "8.8.8.8"}, inv.Cluster.Network.Nameservers)
	assert.Equal(t, AddressingSingle, inv.Cluster.Network.Addressing)
	assert.Equal(t, DefaultPrefixLength, inv.Cluster.Network.Prefix)

	assert.Empty(t, inv.Cluster.Patches.Core)
	assert.Empty(t, inv.Cluster.Patches.Edge)

	nodes := inv.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, "talos-core-01", nodes[0].Hostname)
	assert.Equal(t, "talos-core-02", nodes[1].Hostname)
	assert.Equal(t, "talos-edge-01", nodes[2].Hostname)
}

func TestLoad_EdgeNodesAlwaysWorkers(t *testing.T) {
	inv, err := Load(writeInventory(t, sampleInventory))
	require.NoError(t, err)

	edge, ok := inv.Node("talos-edge-01")
	require.True(t, ok)
	assert.Equal(t, RoleControlPlane, edge.Role, "declared role is preserved")
	assert.Equal(t, RoleWorker, edge.EffectiveRole)
	assert.Equal(t, ClassEdge, edge.Class)
	assert.False(t, edge.IsControlPlane())

	cp, ok := inv.Node("talos-core-01")
	require.True(t, ok)
	assert.Equal(t, RoleControlPlane, cp.EffectiveRole)
	assert.Equal(t, ClassCore, cp.Class)
}

func TestLoad_ExplicitClassWins(t *testing.T) {
	content := `
cluster:
  name: homelab
  endpoint: https://10.10.0.10:6443
  network:
    gateway: 10.10.0.1
core_nodes:
  - hostname: rack-a
    ip: 10.10.0.5
    role: worker
    class: edge
`
	inv, err := Load(writeInventory(t, content))
	require.NoError(t, err)

	node, ok := inv.Node("rack-a")
	require.True(t, ok)
	assert.Equal(t, ClassEdge, node.Class)
	assert.Equal(t, filepath.Join("talos", "patches", "edge.yaml"), inv.PatchPath(node.Class, filepath.Join("talos", "patches")))
}

func TestLoad_LegacyLayout(t *testing.T) {
	content := `
cluster:
  name: homelab
  endpoint: https://10.10.0.10:6443
network:
  gateway: 10.10.0.1
  nameservers: [1.1.1.1]
core_nodes:
  - hostname: talos-core-01
    ip: 10.10.0.5
    role: controlplane
    specs:
      disk: /dev/nvme0n1
`
	inv, err := Load(writeInventory(t, content))
	require.NoError(t, err)

	assert.Equal(t, "10.10.0.1", inv.Cluster.Network.Gateway)
	assert.Equal(t, []string{"1.1.1.1"}, inv.Cluster.Network.Nameservers)
	assert.Nil(t, inv.LegacyNetwork)

	node, ok := inv.Node("talos-core-01")
	require.True(t, ok)
	assert.Equal(t, "/dev/nvme0n1", node.Disk)
	assert.Nil(t, node.Specs)
}

func TestParse_LegacySpecsExtraHardwareKeys(t *testing.T) {
	content := `
cluster:
  name: homelab
  endpoint: https://10.10.0.10:6443
  network:
    gateway: 10.10.0.1
core_nodes:
  - hostname: talos-core-01
    ip: 10.10.0.5
    role: controlplane
    specs:
      disk: /dev/sda
      cpu: 4
      ram: 16GB
`
	inv, err := Parse([]byte(content), "")
	require.NoError(t, err)

	node, ok := inv.Node("talos-core-01")
	require.True(t, ok)
	assert.Equal(t, "/dev/sda", node.Disk)
}

func TestParse_UnknownNodeFieldStillRejected(t *testing.T) {
	content := `
cluster:
  name: homelab
  endpoint: https://10.10.0.10:6443
  network:
    gateway: 10.10.0.1
core_nodes:
  - hostname: talos-core-01
    ip: 10.10.0.5
    role: controlplane
    disk: /dev/sda
    cpu: 4
`
	_, err := Parse([]byte(content), "")
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "cpu")
}

func TestPatchPath(t *testing.T) {
	root := t.TempDir()
	invPath := filepath.Join(root, "inventory", "nodes.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(invPath), 0750))
	require.NoError(t, os.WriteFile(invPath, []byte(sampleInventory), 0600))

	inv, err := Load(invPath)
	require.NoError(t, err)

	patchDir := filepath.Join(root, "talos", "patches")
	assert.Equal(t, filepath.Join(root, "talos", "patches", "core.yaml"), inv.PatchPath(ClassCore, patchDir))
	assert.Equal(t, filepath.Join(root, "talos", "patches", "edge.yaml"), inv.PatchPath(ClassEdge, patchDir))

	inv.Cluster.Patches.Core = "/etc/talos/core.yaml"
	assert.Equal(t, "/etc/talos/core.yaml", inv.PatchPath(ClassCore, patchDir), "inventory setting wins")
}

func TestLoad_ExplicitPatchesRelativeToInventory(t *testing.T) {
	content := `
cluster:
  name: homelab
  endpoint: https://10.10.0.10:6443
  network:
    gateway: 10.10.0.1
  patches:
    core: shared/core.yaml
core_nodes:
  - hostname: talos-core-01
    ip: 10.10.0.5
    role: controlplane
    disk: /dev/sda
`
	path := writeInventory(t, content)
	inv, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(path), "shared", "core.yaml"), inv.PatchPath(ClassCore, "unused"))
	assert.Empty(t, inv.Cluster.Patches.Edge)
}

func TestLoad_DualAddressingDefaults(t *testing.T) {
	content := `
cluster:
  name: homelab
  endpoint: https://10.10.0.10:6443
  network:
    addressing: dual
core_nodes:
  - hostname: talos-core-01
    ip: 10.10.0.5
    storage_ip: 10.20.0.5
    role: controlplane
`
	inv, err := Load(writeInventory(t, content))
	require.NoError(t, err)

	assert.Equal(t, AddressingDual, inv.Cluster.Network.Addressing)
	assert.Equal(t, DefaultPrimaryInterface, inv.Cluster.Network.Interfaces.Primary)
	assert.Equal(t, DefaultStorageInterface, inv.Cluster.Network.Interfaces.Storage)
}

func TestLoad_LoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeInventory(t, "cluster: [unterminated"))
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Contains(t, err.Error(), "failed to parse YAML")
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Load(writeInventory(t, sampleInventory+"bogus: true\n"))
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
	})

	t.Run("empty document", func(t *testing.T) {
		_, err := Load(writeInventory(t, ""))
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Contains(t, err.Error(), "empty")
	})
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantNode  string
		wantField string
	}{
		{
			name: "missing endpoint",
			content: `
cluster:
  name: homelab
  network: {gateway: 10.10.0.1}
core_nodes:
  - {hostname: a, ip: 10.10.0.5, role: worker}
`,
			wantNode:  "cluster",
			wantField: "cluster.endpoint",
		},
		{
			name: "missing name",
			content: `
cluster:
  endpoint: https://x:6443
  network: {gateway: 10.10.0.1}
core_nodes:
  - {hostname: a, ip: 10.10.0.5, role: worker}
`,
			wantNode:  "cluster",
			wantField: "cluster.name",
		},
		{
			name: "missing gateway with single addressing",
			content: `
cluster: {name: c, endpoint: https://x:6443}
core_nodes:
  - {hostname: a, ip: 10.10.0.5, role: worker}
`,
			wantNode:  "cluster",
			wantField: "cluster.network.gateway",
		},
		{
			name: "unknown addressing",
			content: `
cluster: {name: c, endpoint: https://x:6443, network: {gateway: g, addressing: triple}}
core_nodes:
  - {hostname: a, ip: 10.10.0.5, role: worker}
`,
			wantNode:  "cluster",
			wantField: "cluster.network.addressing",
		},
		{
			name: "no nodes",
			content: `
cluster: {name: c, endpoint: https://x:6443, network: {gateway: g}}
`,
			wantNode:  "cluster",
			wantField: "core_nodes",
		},
		{
			name: "missing ip",
			content: `
cluster: {name: c, endpoint: https://x:6443, network: {gateway: g}}
core_nodes:
  - {hostname: node-a, role: worker}
`,
			wantNode:  "node-a",
			wantField: "ip",
		},
		{
			name: "missing core role",
			content: `
cluster: {name: c, endpoint: https://x:6443, network: {gateway: g}}
core_nodes:
  - {hostname: node-a, ip: 10.10.0.5}
`,
			wantNode:  "node-a",
			wantField: "role",
		},
		{
			name: "invalid role",
			content: `
cluster: {name: c, endpoint: https://x:6443, network: {gateway: g}}
core_nodes:
  - {hostname: node-a, ip: 10.10.0.5, role: master}
`,
			wantNode:  "node-a",
			wantField: "role",
		},
		{
			name: "invalid class",
			content: `
cluster: {name: c, endpoint: https://x:6443, network: {gateway: g}}
edge_nodes:
  - {hostname: node-a, ip: 10.10.0.5, class: far}
`,
			wantNode:  "node-a",
			wantField: "class",
		},
		{
			name: "control plane without disk",
			content: `
cluster: {name: c, endpoint: https://x:6443, network: {gateway: g}}
core_nodes:
  - {hostname: node-a, ip: 10.10.0.5, role: controlplane}
`,
			wantNode:  "node-a",
			wantField: "disk",
		},
		{
			name: "duplicate hostname",
			content: `
cluster: {name: c, endpoint: https://x:6443, network: {gateway: g}}
core_nodes:
  - {hostname: node-a, ip: 10.10.0.5, role: worker}
edge_nodes:
  - {hostname: node-a, ip: 10.10.0.6}
`,
			wantNode:  "node-a",
			wantField: "hostname",
		},
		{
			name: "duplicate ip",
			content: `
cluster: {name: c, endpoint: https://x:6443, network: {gateway: g}}
core_nodes:
  - {hostname: node-a, ip: 10.10.0.5, role: worker}
  - {hostname: node-b, ip: 10.10.0.5, role: worker}
`,
			wantNode:  "node-b",
			wantField: "ip",
		},
		{
			name: "vip without anchor",
			content: `
cluster: {name: c, endpoint: https://x:6443, network: {gateway: g}, vip: {ip: 10.10.0.10}}
core_nodes:
  - {hostname: node-a, ip: 10.10.0.5, role: worker}
`,
			wantNode:  "cluster",
			wantField: "cluster.vip.anchor",
		},
		{
			name: "vip anchor not in inventory",
			content: `
cluster: {name: c, endpoint: https://x:6443, network: {gateway: g}, vip: {ip: 10.10.0.10, anchor: ghost}}
core_nodes:
  - {hostname: node-a, ip: 10.10.0.5, role: worker}
`,
			wantNode:  "cluster",
			wantField: "cluster.vip.anchor",
		},
		{
			name: "vip anchored on a worker",
			content: `
cluster: {name: c, endpoint: https://x:6443, network: {gateway: g}, vip: {ip: 10.10.0.10, anchor: node-a}}
edge_nodes:
  - {hostname: node-a, ip: 10.10.0.5, role: controlplane}
`,
			wantNode:  "node-a",
			wantField: "role",
		},
		{
			name: "anchor without vip",
			content: `
cluster: {name: c, endpoint: https://x:6443, network: {gateway: g}, vip: {anchor: node-a}}
core_nodes:
  - {hostname: node-a, ip: 10.10.0.5, role: worker}
`,
			wantNode:  "cluster",
			wantField: "cluster.vip.ip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content), "")
			require.Error(t, err)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantNode, vErr.Node)
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Contains(t, err.Error(), tt.wantNode)
		})
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	inv, err := Parse([]byte(sampleInventory), "/srv/cluster")
	require.NoError(t, err)

	before := inv.Cluster
	inv.ApplyDefaults()
	assert.Equal(t, before, inv.Cluster)
	assert.Equal(t, "talos-core-01", inv.CoreNodes[0].Hostname)
}

func TestEffectiveRole(t *testing.T) {
	assert.Equal(t, RoleControlPlane, EffectiveRole(GroupCore, NodeSpec{Role: RoleControlPlane}))
	assert.Equal(t, RoleWorker, EffectiveRole(GroupCore, NodeSpec{Role: RoleWorker}))
	assert.Equal(t, RoleWorker, EffectiveRole(GroupEdge, NodeSpec{Role: RoleControlPlane}))
	assert.Equal(t, RoleWorker, EffectiveRole(GroupEdge, NodeSpec{}))
}
