// Package prerequisites checks that the external tools a run depends on are
// installed.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Test seams.
var (
	lookPath   = exec.LookPath
	runVersion = func(path string, args ...string) ([]byte, error) {
		// #nosec G204 - path was resolved by LookPath from a Tool definition
		return exec.Command(path, args...).Output()
	}
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH, or a path to it.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string

	// VersionArgs prints the tool version. Empty skips version detection.
	VersionArgs []string
}

// TalosctlInstallURL documents how to install talosctl.
const TalosctlInstallURL = "https://www.talos.dev/latest/talos-guides/install/talosctl/"

// GeneratorTools returns the tools the talosctl backend needs. binary is the
// configured talosctl name or path; empty means talosctl on PATH.
func GeneratorTools(binary string) []Tool {
	if binary == "" {
		binary = "talosctl"
	}
	return []Tool{
		{
			Name:        binary,
			Required:    true,
			Description: "Generates secrets, machine configs and talosconfig",
			InstallURL:  TalosctlInstallURL,
			VersionArgs: []string{"version", "--client", "--short"},
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := lookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			result.Version = toolVersion(path, tool.VersionArgs)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// toolVersion returns the first line of the tool's version output, or an
// empty string if it cannot be determined.
func toolVersion(path string, args []string) string {
	if len(args) == 0 {
		return ""
	}

	output, err := runVersion(path, args...)
	if err != nil {
		return ""
	}

	line, _, _ := strings.Cut(string(output), "\n")
	return strings.TrimSpace(line)
}
