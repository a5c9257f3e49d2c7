package wizard

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/talosgen/internal/inventory"
)

func sampleResult() *Result {
	return &Result{
		ClusterName: "homelab",
		Endpoint:    "https://10.10.0.10:6443",
		Gateway:     "10.10.0.1",
		Nameservers: []string{"1.1.1.1", "8.8.8.8"},
		Addressing:  string(inventory.AddressingSingle),
		VIP:         "10.10.0.10",
		CoreNodes: []NodeAnswer{
			{Hostname: "talos-core-01", IP: "10.10.0.5", Role: "controlplane", Disk: "/dev/sda", Driver: "r8152"},
			{Hostname: "talos-core-02", IP: "10.10.0.6", Role: "worker", Disk: "/dev/sda"},
		},
		EdgeNodes: []NodeAnswer{
			{Hostname: "talos-edge-01", IP: "10.10.0.20"},
		},
	}
}

func TestBuildInventory(t *testing.T) {
	inv := BuildInventory(sampleResult())

	assert.Equal(t, "homelab", inv.Cluster.Name)
	assert.Equal(t, inventory.AddressingSingle, inv.Cluster.Network.Addressing)
	assert.Equal(t, inventory.VIPSpec{IP: "10.10.0.10", Anchor: "talos-core-01"}, inv.Cluster.VIP)

	require.Len(t, inv.CoreNodes, 2)
	assert.Equal(t, inventory.RoleWorker, inv.CoreNodes[1].Role)
	assert.Equal(t, "r8152", inv.CoreNodes[0].Driver)

	require.Len(t, inv.EdgeNodes, 1)
	assert.Equal(t, inventory.RoleWorker, inv.EdgeNodes[0].Role)
}

func TestBuildInventory_VIPAnchor(t *testing.T) {
	t.Run("first control plane anchors", func(t *testing.T) {
		r := sampleResult()
		r.CoreNodes[0].Role = "worker"
		r.CoreNodes[1].Role = "controlplane"

		inv := BuildInventory(r)
		assert.Equal(t, "talos-core-02", inv.Cluster.VIP.Anchor)
	})

	t.Run("no vip", func(t *testing.T) {
		r := sampleResult()
		r.VIP = ""
		assert.False(t, BuildInventory(r).Cluster.VIP.Enabled())
	})
}

func TestWriteInventory_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory", "nodes.yaml")
	inv := BuildInventory(sampleResult())

	require.NoError(t, WriteInventory(inv, path, false))
	assert.Empty(t, inv.CoreNodes[0].Class, "writing must not fill derived fields")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# talosgen inventory\n"))
	assert.NotContains(t, string(data), "class:")

	loaded, err := inventory.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "homelab", loaded.Cluster.Name)
	assert.Len(t, loaded.Nodes(), 3)
	assert.Equal(t, inventory.ClassEdge, loaded.EdgeNodes[0].Class)
}

func TestWriteInventory_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0600))
	inv := BuildInventory(sampleResult())

	err := WriteInventory(inv, path, false)
	require.Error(t, err)
	assert.True(t, IsExistsError(err))

	data, _ := os.ReadFile(path)
	assert.Equal(t, "keep", string(data))

	require.NoError(t, WriteInventory(inv, path, true))
}

func TestWriteInventory_Invalid(t *testing.T) {
	r := sampleResult()
	r.CoreNodes[1].IP = r.CoreNodes[0].IP

	err := WriteInventory(BuildInventory(r), filepath.Join(t.TempDir(), "nodes.yaml"), false)
	var vErr *inventory.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "ip", vErr.Field)
}

func TestWriteStarterPatches(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "talos", "patches")

	written, err := WriteStarterPatches(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "core.yaml"),
		filepath.Join(dir, "edge.yaml"),
	}, written)

	require.NoError(t, os.WriteFile(written[0], []byte("custom"), 0600))
	again, err := WriteStarterPatches(dir)
	require.NoError(t, err)
	assert.Empty(t, again)

	data, _ := os.ReadFile(written[0])
	assert.Equal(t, "custom", string(data), "existing patches are kept")
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string) error
		input   string
		wantErr error
	}{
		{"cluster name ok", validateClusterName, "homelab", nil},
		{"cluster name empty", validateClusterName, "", errClusterNameRequired},
		{"cluster name upper", validateClusterName, "HomeLab", errClusterNameInvalid},
		{"endpoint ok", validateEndpoint, "https://10.10.0.10:6443", nil},
		{"endpoint empty", validateEndpoint, "", errEndpointRequired},
		{"endpoint http", validateEndpoint, "http://10.10.0.10:6443", errEndpointInvalid},
		{"hostname ok", validateHostname, "talos-core-01", nil},
		{"hostname empty", validateHostname, "", errHostnameRequired},
		{"hostname dots", validateHostname, "talos.core", errHostnameInvalid},
		{"ip ok", validateIP, "10.10.0.5", nil},
		{"ip v6", validateIP, "fd00::5", nil},
		{"ip empty", validateIP, "", errIPRequired},
		{"ip junk", validateIP, "10.10.0", errIPInvalid},
		{"optional ip empty", validateOptionalIP, "", nil},
		{"optional ip junk", validateOptionalIP, "x", errIPInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"1.1.1.1", "8.8.8.8"}, parseList(" 1.1.1.1, ,8.8.8.8 "))
	assert.Nil(t, parseList(""))
}
