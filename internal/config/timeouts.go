package config

import (
	"os"
	"time"
)

// Environment variables read by LoadTimeouts.
const (
	EnvTimeoutGenerate = "TALOSGEN_TIMEOUT_GENERATE"
	EnvTimeoutSecrets  = "TALOSGEN_TIMEOUT_SECRETS"
)

// Timeouts holds the per-invocation deadlines for generator calls.
type Timeouts struct {
	Generate time.Duration // Deadline for one machine config or talosconfig generation
	Secrets  time.Duration // Deadline for secrets bundle generation
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - TALOSGEN_TIMEOUT_GENERATE (default: 2m)
//   - TALOSGEN_TIMEOUT_SECRETS (default: 1m)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Generate: parseDuration(EnvTimeoutGenerate, 2*time.Minute),
		Secrets:  parseDuration(EnvTimeoutSecrets, 1*time.Minute),
	}
}

// WithGenerate returns a copy with the generate deadline replaced when d is
// positive.
func (t Timeouts) WithGenerate(d time.Duration) Timeouts {
	if d > 0 {
		t.Generate = d
	}
	return t
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set, not parseable or not positive, the default value
// is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}
