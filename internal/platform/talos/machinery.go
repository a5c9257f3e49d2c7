package talos

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/siderolabs/talos/pkg/machinery/config/configpatcher"
	"github.com/siderolabs/talos/pkg/machinery/config/generate"
	"github.com/siderolabs/talos/pkg/machinery/config/machine"
	"github.com/siderolabs/talos/pkg/machinery/constants"
)

// MachineryGenerator produces the same artifacts as talosctl in-process using
// the Talos machinery library. Patches are applied with the same strategic
// merge rules talosctl uses.
type MachineryGenerator struct{}

// NewMachineryGenerator creates an in-process generator.
func NewMachineryGenerator() *MachineryGenerator {
	return &MachineryGenerator{}
}

// GenerateSecrets implements Generator.
func (g *MachineryGenerator) GenerateSecrets(ctx context.Context, path, talosVersion string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sb, err := NewSecrets(talosVersion)
	if err != nil {
		return err
	}

	return SaveSecrets(path, sb)
}

// GenerateConfig implements Generator.
func (g *MachineryGenerator) GenerateConfig(ctx context.Context, req ConfigRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var machineType machine.Type
	switch req.OutputType {
	case OutputControlPlane:
		machineType = machine.TypeControlPlane
	case OutputWorker:
		machineType = machine.TypeWorker
	default:
		return fmt.Errorf("unsupported output type %q", req.OutputType)
	}

	if err := checkOverwrite(req.OutputPath, req.Force); err != nil {
		return err
	}

	input, err := newInput(req.ClusterName, req.Endpoint, req.KubernetesVersion, req.TalosVersion, req.SecretsPath,
		generate.WithAdditionalSubjectAltNames(req.AdditionalSANs),
	)
	if err != nil {
		return err
	}

	cfg, err := input.Config(machineType)
	if err != nil {
		return fmt.Errorf("failed to generate %s config: %w", machineType, err)
	}

	refs := make([]string, 0, len(req.Patches))
	for _, p := range req.Patches {
		refs = append(refs, "@"+p)
	}

	patches, err := configpatcher.LoadPatches(refs)
	if err != nil {
		return fmt.Errorf("failed to load config patches: %w", err)
	}

	out, err := configpatcher.Apply(configpatcher.WithConfig(cfg), patches)
	if err != nil {
		return fmt.Errorf("failed to apply config patches: %w", err)
	}

	data, err := out.Bytes()
	if err != nil {
		return fmt.Errorf("failed to encode %s config: %w", machineType, err)
	}

	return writeArtifact(req.OutputPath, data)
}

// GenerateClientConfig implements Generator.
func (g *MachineryGenerator) GenerateClientConfig(ctx context.Context, req ClientConfigRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := checkOverwrite(req.OutputPath, req.Force); err != nil {
		return err
	}

	input, err := newInput(req.ClusterName, req.Endpoint, req.KubernetesVersion, req.TalosVersion, req.SecretsPath)
	if err != nil {
		return err
	}

	clientCfg, err := input.Talosconfig()
	if err != nil {
		return fmt.Errorf("failed to generate talosconfig: %w", err)
	}

	data, err := clientCfg.Bytes()
	if err != nil {
		return fmt.Errorf("failed to encode talosconfig: %w", err)
	}

	return writeArtifact(req.OutputPath, data)
}

func newInput(clusterName, endpoint, kubernetesVersion, talosVersion, secretsPath string, extra ...generate.Option) (*generate.Input, error) {
	vc, err := versionContract(talosVersion)
	if err != nil {
		return nil, err
	}

	sb, err := LoadSecrets(secretsPath)
	if err != nil {
		return nil, err
	}

	// Talos machinery adds the 'v' prefix itself.
	kubernetesVersion = strings.TrimPrefix(kubernetesVersion, "v")
	if kubernetesVersion == "" {
		kubernetesVersion = constants.DefaultKubernetesVersion
	}

	opts := []generate.Option{
		generate.WithVersionContract(vc),
		generate.WithSecretsBundle(sb),
	}
	opts = append(opts, extra...)

	input, err := generate.NewInput(clusterName, endpoint, kubernetesVersion, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create input: %w", err)
	}

	return input, nil
}

func checkOverwrite(path string, force bool) error {
	if force {
		return nil
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, use force to overwrite", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return nil
}

func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
