package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLayout(t *testing.T) {
	assert.Equal(t, DefaultOutputDir, NewLayout("").OutputDir)

	l := NewLayout("/srv/out")
	assert.Equal(t, filepath.Join("/srv/out", "secrets.yaml"), l.SecretsPath())
	assert.Equal(t, filepath.Join("/srv/out", "talosconfig"), l.TalosconfigPath())
	assert.Equal(t, filepath.Join("/srv/out", "worker-talos-edge-01.yaml"), l.NodeConfigPath("worker", "talos-edge-01"))
	assert.Equal(t, "/srv/out", l.TempDir())
	assert.Equal(t, filepath.Join("/srv/out", "patches"), l.PatchDir())
}
