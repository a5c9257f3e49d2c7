package naming

import (
	"path/filepath"
	"testing"
)

func TestNamingFunctions(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "ControlPlaneConfig",
			got:      NodeConfig("controlplane", "talos-core-01"),
			expected: "controlplane-talos-core-01.yaml",
		},
		{
			name:     "WorkerConfig",
			got:      NodeConfig("worker", "talos-edge-01"),
			expected: "worker-talos-edge-01.yaml",
		},
		{
			name:     "NodePatchPattern",
			got:      NodePatchPattern("talos-core-01"),
			expected: "patch-talos-core-01-*.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, want %q", tt.got, tt.expected)
			}
		})
	}
}

func TestNodePatchGlob_MatchesOnlyItsHost(t *testing.T) {
	glob := NodePatchGlob("talos-core-01")

	matches := func(name string) bool {
		ok, err := filepath.Match(glob, name)
		if err != nil {
			t.Fatalf("bad pattern: %v", err)
		}
		return ok
	}

	if !matches("patch-talos-core-01-123456.yaml") {
		t.Error("expected temp override to match")
	}
	if matches("patch-talos-core-02-123456.yaml") {
		t.Error("another host's override must not match")
	}
	if matches("controlplane-talos-core-01.yaml") {
		t.Error("node config must not match")
	}
}
