package prerequisites

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubTools(t *testing.T, found map[string]string, version string) {
	t.Helper()
	origLook, origRun := lookPath, runVersion
	t.Cleanup(func() {
		lookPath = origLook
		runVersion = origRun
	})

	lookPath = func(name string) (string, error) {
		if p, ok := found[name]; ok {
			return p, nil
		}
		return "", errors.New("not found")
	}
	runVersion = func(string, ...string) ([]byte, error) {
		if version == "" {
			return nil, errors.New("no version")
		}
		return []byte(version), nil
	}
}

func TestCheck(t *testing.T) {
	stubTools(t, map[string]string{"talosctl": "/usr/local/bin/talosctl"}, "Talos v1.12.4\nextra line\n")

	results := Check(GeneratorTools(""))

	require.Len(t, results.Results, 1)
	r := results.Results[0]
	assert.True(t, r.Found)
	assert.Equal(t, "/usr/local/bin/talosctl", r.Path)
	assert.Equal(t, "Talos v1.12.4", r.Version)
	assert.False(t, results.HasErrors())
	assert.NoError(t, results.Error())
}

func TestCheckMissingTool(t *testing.T) {
	stubTools(t, nil, "")

	results := Check(GeneratorTools("/opt/talos/bin/talosctl"))

	assert.True(t, results.HasErrors())
	require.Len(t, results.Missing, 1)
	assert.Equal(t, "/opt/talos/bin/talosctl", results.Missing[0].Name)

	err := results.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/opt/talos/bin/talosctl")
	assert.Contains(t, err.Error(), TalosctlInstallURL)
}

func TestCheckOptionalMissing(t *testing.T) {
	stubTools(t, nil, "")

	results := Check([]Tool{{Name: "yq", Required: false}})

	assert.False(t, results.HasErrors())
	assert.NoError(t, results.Error())
	assert.Len(t, results.Missing, 1)
}

func TestCheckVersionUnavailable(t *testing.T) {
	stubTools(t, map[string]string{"talosctl": "/bin/talosctl"}, "")

	results := Check(GeneratorTools("talosctl"))
	require.Len(t, results.Results, 1)
	assert.True(t, results.Results[0].Found)
	assert.Empty(t, results.Results[0].Version)
}

func TestGeneratorTools(t *testing.T) {
	tools := GeneratorTools("")
	require.Len(t, tools, 1)
	assert.Equal(t, "talosctl", tools[0].Name)
	assert.True(t, tools[0].Required)
	assert.Equal(t, []string{"version", "--client", "--short"}, tools[0].VersionArgs)
}
