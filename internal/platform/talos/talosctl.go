package talos

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultTalosctl is the binary looked up on PATH.
const DefaultTalosctl = "talosctl"

// CommandRunner runs a command to completion and returns its combined output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec. A context deadline kills the process.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	// #nosec G204 - name is the configured talosctl binary, args are built by this package
	cmd := exec.CommandContext(ctx, name, args...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return out.Bytes(), fmt.Errorf("%s did not finish: %w", name, ctxErr)
	}
	return out.Bytes(), err
}

// TalosctlGenerator drives the talosctl CLI.
type TalosctlGenerator struct {
	binary string
	run    CommandRunner
}

// NewTalosctlGenerator creates a generator for the given binary. An empty
// binary means talosctl on PATH; a nil runner means ExecRunner.
func NewTalosctlGenerator(binary string, run CommandRunner) *TalosctlGenerator {
	if binary == "" {
		binary = DefaultTalosctl
	}
	if run == nil {
		run = ExecRunner
	}
	return &TalosctlGenerator{binary: binary, run: run}
}

// Binary returns the talosctl binary in use.
func (g *TalosctlGenerator) Binary() string {
	return g.binary
}

// GenerateSecrets implements Generator. talosctl refuses to overwrite an
// existing file without --force, which is never passed here.
func (g *TalosctlGenerator) GenerateSecrets(ctx context.Context, path, talosVersion string) error {
	return g.exec(ctx, SecretsArgs(path, talosVersion))
}

// GenerateConfig implements Generator.
func (g *TalosctlGenerator) GenerateConfig(ctx context.Context, req ConfigRequest) error {
	return g.exec(ctx, ConfigArgs(req))
}

// GenerateClientConfig implements Generator.
func (g *TalosctlGenerator) GenerateClientConfig(ctx context.Context, req ClientConfigRequest) error {
	return g.exec(ctx, ClientConfigArgs(req))
}

func (g *TalosctlGenerator) exec(ctx context.Context, args []string) error {
	out, err := g.run(ctx, g.binary, args...)
	if err == nil {
		return nil
	}

	msg := strings.TrimSpace(string(out))
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%s %s exited with code %d: %s", g.binary, strings.Join(args[:2], " "), exitErr.ExitCode(), msg)
	}
	if msg != "" {
		return fmt.Errorf("%s %s failed: %w: %s", g.binary, strings.Join(args[:2], " "), err, msg)
	}
	return fmt.Errorf("%s %s failed: %w", g.binary, strings.Join(args[:2], " "), err)
}

// SecretsArgs builds the `gen secrets` argument list.
func SecretsArgs(path, talosVersion string) []string {
	args := []string{"gen", "secrets", "--output-file", path}
	if talosVersion != "" {
		args = append(args, "--talos-version", talosVersion)
	}
	return args
}

// ConfigArgs builds the `gen config` argument list. Patches keep their order,
// so a later patch overrides an earlier one.
func ConfigArgs(req ConfigRequest) []string {
	args := []string{
		"gen", "config", req.ClusterName, req.Endpoint,
		"--with-secrets", req.SecretsPath,
	}

	for _, patch := range req.Patches {
		args = append(args, "--config-patch", "@"+patch)
	}

	args = append(args,
		"--output", req.OutputPath,
		"--output-types", string(req.OutputType),
	)
	args = appendVersions(args, req.KubernetesVersion, req.TalosVersion)

	if req.Force {
		args = append(args, "--force")
	}

	for _, san := range req.AdditionalSANs {
		args = append(args, "--additional-sans", san)
	}

	return args
}

// ClientConfigArgs builds the `gen config` argument list for talosconfig.
func ClientConfigArgs(req ClientConfigRequest) []string {
	args := []string{
		"gen", "config", req.ClusterName, req.Endpoint,
		"--with-secrets", req.SecretsPath,
		"--output-types", string(OutputTalosconfig),
		"--output", req.OutputPath,
	}
	args = appendVersions(args, req.KubernetesVersion, req.TalosVersion)

	if req.Force {
		args = append(args, "--force")
	}

	return args
}

func appendVersions(args []string, kubernetesVersion, talosVersion string) []string {
	if kubernetesVersion != "" {
		args = append(args, "--kubernetes-version", kubernetesVersion)
	}
	if talosVersion != "" {
		args = append(args, "--talos-version", talosVersion)
	}
	return args
}
