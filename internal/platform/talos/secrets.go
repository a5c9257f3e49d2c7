package talos

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/siderolabs/talos/pkg/machinery/config"
	"github.com/siderolabs/talos/pkg/machinery/config/generate/secrets"
	"gopkg.in/yaml.v3"
)

// SecretsBundle is a type alias for the Talos secrets bundle.
type SecretsBundle = secrets.Bundle

// ErrSecretsExist is returned when a secrets bundle would be overwritten.
var ErrSecretsExist = errors.New("secrets bundle already exists")

// SecretsExist reports whether a secrets bundle is present at path.
func SecretsExist(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if info.IsDir() {
			return false, fmt.Errorf("secrets path %s is a directory", path)
		}
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat secrets bundle: %w", err)
	}
}

// NewSecrets creates a new Talos secrets bundle. An empty version targets the
// contract of the linked machinery.
func NewSecrets(talosVersion string) (*secrets.Bundle, error) {
	vc, err := versionContract(talosVersion)
	if err != nil {
		return nil, err
	}

	sb, err := secrets.NewBundle(secrets.NewFixedClock(time.Now()), vc)
	if err != nil {
		return nil, fmt.Errorf("failed to create secrets bundle: %w", err)
	}

	return sb, nil
}

// LoadSecrets loads Talos secrets from a file.
func LoadSecrets(path string) (*secrets.Bundle, error) {
	sb, err := secrets.LoadBundle(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets bundle: %w", err)
	}

	if sb == nil {
		return nil, fmt.Errorf("loaded secrets bundle is nil")
	}

	// Re-inject clock
	sb.Clock = secrets.NewFixedClock(time.Now())
	return sb, nil
}

// SaveSecrets writes a secrets bundle in the YAML format LoadBundle expects.
// It fails with ErrSecretsExist instead of replacing an existing file.
func SaveSecrets(path string, sb *secrets.Bundle) error {
	data, err := yaml.Marshal(sb)
	if err != nil {
		return fmt.Errorf("failed to marshal secrets bundle: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrSecretsExist, path)
		}
		return fmt.Errorf("failed to write secrets file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to write secrets file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to write secrets file: %w", err)
	}

	return nil
}

func versionContract(talosVersion string) (*config.VersionContract, error) {
	if talosVersion == "" {
		return config.TalosVersionCurrent, nil
	}

	vc, err := config.ParseContractFromVersion(talosVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to parse version contract: %w", err)
	}

	return vc, nil
}
