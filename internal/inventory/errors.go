package inventory

import "fmt"

// LoadError reports an inventory that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to load inventory: %v", e.Err)
	}
	return fmt.Sprintf("failed to load inventory %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ValidationError reports a missing or malformed field. Node is the offending
// hostname, or "cluster" for cluster-wide fields.
type ValidationError struct {
	Node   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid inventory: %s: %s %s", e.Node, e.Field, e.Reason)
}

// clusterScope is the Node value used for cluster-wide validation errors.
const clusterScope = "cluster"

func invalid(node, field, reason string) *ValidationError {
	return &ValidationError{Node: node, Field: field, Reason: reason}
}
