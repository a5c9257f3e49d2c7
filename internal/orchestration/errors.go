package orchestration

import "fmt"

// GenerationError reports a generator invocation that failed, timed out or
// did not produce its artifact.
type GenerationError struct {
	Hostname string // empty for cluster-wide artifacts
	Artifact string
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Hostname == "" {
		return fmt.Sprintf("failed to generate %s: %v", e.Artifact, e.Err)
	}
	return fmt.Sprintf("failed to generate %s for %s: %v", e.Artifact, e.Hostname, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// CleanupWarning reports a temporary override that could not be removed. It
// never fails a run.
type CleanupWarning struct {
	Hostname string
	Path     string
	Err      error
}

func (w CleanupWarning) String() string {
	return fmt.Sprintf("could not remove temporary override %s for %s: %v", w.Path, w.Hostname, w.Err)
}
