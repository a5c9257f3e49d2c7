package wizard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/imamik/talosgen/internal/inventory"
)

// Starter shared patches for a new inventory.
const (
	corePatchTemplate = `# Shared patch for core nodes. Applied before each node's own override.
machine:
  kubelet:
    extraArgs:
      rotate-server-certificates: "true"
cluster:
  allowSchedulingOnControlPlanes: true
`
	edgePatchTemplate = `# Shared patch for edge nodes. Applied before each node's own override.
machine:
  kubelet:
    extraArgs:
      rotate-server-certificates: "true"
`
)

// WriteInventory validates inv and writes it to path with a descriptive
// header. An existing file is only replaced when force is set.
func WriteInventory(inv *inventory.Inventory, path string, force bool) error {
	check := *inv
	check.CoreNodes = append([]inventory.NodeSpec(nil), inv.CoreNodes...)
	check.EdgeNodes = append([]inventory.NodeSpec(nil), inv.EdgeNodes...)
	check.ApplyDefaults()
	if err := check.Validate(); err != nil {
		return err
	}

	if !force {
		if err := ensureAbsent(path); err != nil {
			return err
		}
	}

	yamlBytes, err := yaml.Marshal(inv)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(path))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// WriteStarterPatches creates the default core and edge shared patches in
// patchDir. Existing patches are left alone. It returns the paths written.
func WriteStarterPatches(patchDir string) ([]string, error) {
	files := []struct {
		class   inventory.Class
		content string
	}{
		{inventory.ClassCore, corePatchTemplate},
		{inventory.ClassEdge, edgePatchTemplate},
	}

	var written []string
	for _, f := range files {
		path := filepath.Join(patchDir, inventory.SharedPatchFile(f.class))
		if err := ensureAbsent(path); err != nil {
			if errors.Is(err, errFileExists) {
				continue
			}
			return written, err
		}

		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return written, fmt.Errorf("failed to create directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(f.content), 0600); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}

	return written, nil
}

func ensureAbsent(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return fmt.Errorf("%s: %w", path, errFileExists)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return nil
}

// IsExistsError reports whether err came from refusing to overwrite a file.
func IsExistsError(err error) bool {
	return errors.Is(err, errFileExists)
}

func generateHeader(path string) string {
	var sb strings.Builder
	sb.WriteString("# talosgen inventory\n")
	sb.WriteString(fmt.Sprintf("# Generated: %s\n", time.Now().Format(time.RFC3339)))
	sb.WriteString("#\n")
	sb.WriteString("# core_nodes keep their declared role; edge_nodes always render as workers.\n")
	sb.WriteString("#\n")
	sb.WriteString("# Generate configs with:\n")
	sb.WriteString(fmt.Sprintf("#   talosgen generate --inventory %s\n", path))
	return sb.String()
}
