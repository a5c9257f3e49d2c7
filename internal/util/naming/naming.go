package naming

import "fmt"

// Fixed artifact names.
const (
	SecretsFile     = "secrets.yaml"
	TalosconfigFile = "talosconfig"
	PatchDir        = "patches"
)

// NodeConfig is the machine config file name for a node.
func NodeConfig(prefix, hostname string) string {
	return fmt.Sprintf("%s-%s.yaml", prefix, hostname)
}

// NodePatchPattern is an os.CreateTemp pattern for a node's override.
func NodePatchPattern(hostname string) string {
	return fmt.Sprintf("patch-%s-*.yaml", hostname)
}

// NodePatchGlob matches every temporary override of a node.
func NodePatchGlob(hostname string) string {
	return NodePatchPattern(hostname)
}
