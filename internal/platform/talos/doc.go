// Package talos turns inventory nodes into Talos machine config patches and
// drives the generators that layer those patches onto a base config.
//
// [Synthesize] builds a node's override document for the inventory's
// addressing policy. A [Generator] materializes the secrets bundle, machine
// configs and talosconfig: [TalosctlGenerator] shells out to talosctl while
// [MachineryGenerator] does the same work in-process.
package talos
