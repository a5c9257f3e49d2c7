// Package naming provides consistent file names for generated artifacts.
//
// Node configs follow {role}-{hostname}.yaml so a directory listing groups
// control planes and workers. Temporary node patches follow
// patch-{hostname}-{random}.yaml; the hostname keeps leftovers attributable
// and the random suffix keeps concurrent or repeated runs apart.
package naming
