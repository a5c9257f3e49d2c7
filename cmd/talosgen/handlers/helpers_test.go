package handlers

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imamik/talosgen/internal/platform/talos"
	"github.com/imamik/talosgen/internal/ui/progress"
)

const testInventory = `
cluster:
  name: homelab
  endpoint: https://10.10.0.10:6443
  network:
    gateway: 10.10.0.1
    nameservers: [1.1.1.1, 8.8.8.8]
  vip:
    ip: 10.10.0.10
    anchor: talos-core-01
core_nodes:
  - hostname: talos-core-01
    ip: 10.10.0.5
    role: controlplane
    disk: /dev/sda
    driver: r8152
edge_nodes:
  - hostname: talos-edge-01
    ip: 10.10.0.20
    role: controlplane
`

// saveAndRestoreFactories saves the current factory functions and restores
// them when the test ends. Output is captured in the returned buffer.
func saveAndRestoreFactories(t *testing.T) *bytes.Buffer {
	t.Helper()
	origLoadInventory := loadInventory
	origNewGenerator := newGenerator
	origCheckGeneratorTools := checkGeneratorTools
	origNewOrchestrator := newOrchestrator
	origNewReporter := newReporter
	origStdout := stdout
	origStderr := stderr
	origRunWizard := runWizard
	origWriteInventory := writeInventory
	origWriteStarterPatches := writeStarterPatches
	origIsInteractiveTTY := isInteractiveTTY

	t.Cleanup(func() {
		loadInventory = origLoadInventory
		newGenerator = origNewGenerator
		checkGeneratorTools = origCheckGeneratorTools
		newOrchestrator = origNewOrchestrator
		newReporter = origNewReporter
		stdout = origStdout
		stderr = origStderr
		runWizard = origRunWizard
		writeInventory = origWriteInventory
		writeStarterPatches = origWriteStarterPatches
		isInteractiveTTY = origIsInteractiveTTY
	})

	var buf bytes.Buffer
	stdout = &buf
	stderr = &bytes.Buffer{}
	newReporter = func() *progress.Reporter { return progress.NewReporter(&buf, false) }
	isInteractiveTTY = func() bool { return false }
	return &buf
}

// writeTestInventory lays out a repo the way generate expects it by default:
// <root>/inventory/nodes.yaml plus both shared patches in
// <root>/talos/patches. It returns the inventory path.
func writeTestInventory(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	patchDir := filepath.Join(root, "talos", "patches")
	require.NoError(t, os.MkdirAll(patchDir, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(patchDir, "core.yaml"), []byte("machine: {}\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(patchDir, "edge.yaml"), []byte("machine: {}\n"), 0600))

	path := filepath.Join(root, "inventory", "nodes.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// testOutputDir is the output directory next to an inventory written by
// writeTestInventory.
func testOutputDir(invPath string) string {
	return filepath.Join(filepath.Dir(filepath.Dir(invPath)), "talos")
}

// stubGenerator writes placeholder artifacts.
type stubGenerator struct {
	configs []talos.ConfigRequest
}

func (g *stubGenerator) GenerateSecrets(_ context.Context, path, _ string) error {
	return os.WriteFile(path, []byte("cluster: {}\n"), 0600)
}

func (g *stubGenerator) GenerateConfig(_ context.Context, req talos.ConfigRequest) error {
	g.configs = append(g.configs, req)
	return os.WriteFile(req.OutputPath, []byte("version: v1alpha1\n"), 0600)
}

func (g *stubGenerator) GenerateClientConfig(_ context.Context, req talos.ClientConfigRequest) error {
	return os.WriteFile(req.OutputPath, []byte("context: homelab\n"), 0600)
}
