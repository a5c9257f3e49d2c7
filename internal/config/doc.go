// Package config holds run-level settings that are not part of the
// inventory: where artifacts go and how long each generator call may take.
package config
