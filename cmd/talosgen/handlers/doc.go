// Package handlers implements the business logic behind the CLI commands.
//
// Each handler loads what it needs, wires the internal packages together and
// prints results. External collaborators are reached through package-level
// factory variables so tests can replace them.
package handlers
