package config

import (
	"path/filepath"

	"github.com/imamik/talosgen/internal/util/naming"
)

// DefaultOutputDir is where artifacts are written unless told otherwise.
const DefaultOutputDir = "talos"

// Layout resolves artifact paths inside one output directory.
type Layout struct {
	OutputDir string
}

// NewLayout returns a layout rooted at dir, or DefaultOutputDir when empty.
func NewLayout(dir string) Layout {
	if dir == "" {
		dir = DefaultOutputDir
	}
	return Layout{OutputDir: dir}
}

// SecretsPath is the durable secrets bundle.
func (l Layout) SecretsPath() string {
	return filepath.Join(l.OutputDir, naming.SecretsFile)
}

// TalosconfigPath is the cluster-wide client credential bundle.
func (l Layout) TalosconfigPath() string {
	return filepath.Join(l.OutputDir, naming.TalosconfigFile)
}

// NodeConfigPath is the generated machine config for a node.
func (l Layout) NodeConfigPath(prefix, hostname string) string {
	return filepath.Join(l.OutputDir, naming.NodeConfig(prefix, hostname))
}

// PatchDir holds the shared role patches unless the inventory points
// elsewhere.
func (l Layout) PatchDir() string {
	return filepath.Join(l.OutputDir, naming.PatchDir)
}

// TempDir holds the short-lived node overrides.
func (l Layout) TempDir() string {
	return l.OutputDir
}
