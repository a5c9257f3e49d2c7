// Package orchestration runs a full generation: it bootstraps the secrets
// bundle, renders and feeds each node's override through a Generator, and
// finishes with the cluster-wide talosconfig.
//
// # Workflow
//
// Run executes the following steps in order:
//  1. Preflight - shared role patches exist (no side effects before this)
//  2. Secrets - create secrets.yaml once, reuse it on every later run
//  3. Nodes - per node: write override, invoke generator, remove override
//  4. Credentials - generate talosconfig from the same secrets bundle
//
// # Usage
//
//	o := orchestration.New(orchestration.Config{
//	    Inventory: inv,
//	    Generator: talos.NewTalosctlGenerator("", nil),
//	    Layout:    config.NewLayout("talos"),
//	})
//	report, err := o.Run(ctx)
//
// A failed node stops the run; nodes after it are not processed. The temporary
// override of the failed node is still removed.
package orchestration
