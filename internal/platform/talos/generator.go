package talos

import (
	"context"

	"github.com/imamik/talosgen/internal/inventory"
)

// OutputType is the artifact kind a generator invocation emits.
type OutputType string

// Output types understood by the generators.
const (
	OutputControlPlane OutputType = "controlplane"
	OutputWorker       OutputType = "worker"
	OutputTalosconfig  OutputType = "talosconfig"
)

// OutputTypeForRole maps an effective role onto a machine config output type.
func OutputTypeForRole(role inventory.Role) OutputType {
	if role == inventory.RoleControlPlane {
		return OutputControlPlane
	}
	return OutputWorker
}

// ConfigRequest is one machine config generation.
type ConfigRequest struct {
	ClusterName       string
	Endpoint          string
	SecretsPath       string
	KubernetesVersion string
	TalosVersion      string

	// Patches are patch file paths, applied in order; later entries win.
	Patches []string

	OutputPath     string
	OutputType     OutputType
	AdditionalSANs []string

	// Force overwrites an existing output file.
	Force bool
}

// ClientConfigRequest generates the cluster-wide client credentials.
type ClientConfigRequest struct {
	ClusterName       string
	Endpoint          string
	SecretsPath       string
	KubernetesVersion string
	TalosVersion      string
	OutputPath        string
	Force             bool
}

// Generator materializes secrets bundles and config files. Every method
// blocks until the artifact is written or the context is done.
type Generator interface {
	// GenerateSecrets writes a new secrets bundle. It must fail rather than
	// overwrite an existing file.
	GenerateSecrets(ctx context.Context, path, talosVersion string) error

	// GenerateConfig writes one machine config.
	GenerateConfig(ctx context.Context, req ConfigRequest) error

	// GenerateClientConfig writes the talosconfig.
	GenerateClientConfig(ctx context.Context, req ClientConfigRequest) error
}
