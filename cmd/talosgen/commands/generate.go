package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/talosgen/cmd/talosgen/handlers"
	"github.com/imamik/talosgen/internal/platform/talos"
)

// Generate returns the command that writes every node config and talosconfig.
//
// Optional flags:
//
//	--inventory, -i: Path to the inventory (default: inventory/nodes.yaml)
//	--output, -o: Output directory (default: talos)
//	--backend: talosctl or builtin
//	--talosctl: talosctl binary to run
//	--timeout: Deadline per node generation
//	--parallel: Nodes generated concurrently
//	--metrics-file: Prometheus textfile to write after the run
//	--verbose, -v: Log every generator invocation
//
// Environment variables:
//
//	TALOSGEN_TIMEOUT_GENERATE: Deadline per config generation (default 2m)
//	TALOSGEN_TIMEOUT_SECRETS: Deadline for secrets generation (default 1m)
func Generate() *cobra.Command {
	var opts handlers.GenerateOptions

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"run"},
		Short:   "Generate secrets, node configs and talosconfig",
		Long: `Generate machine configs for every node in the inventory.

For each node a network/install override is synthesized and layered on top of
the shared patch for its class (core or edge). Nodes in edge_nodes always
render as workers. The secrets bundle is created on the first run and reused
afterwards; node configs and talosconfig are rewritten on every run.

Examples:
  # Generate using inventory/nodes.yaml into ./talos
  talosgen generate

  # Use the built-in generator instead of talosctl
  talosgen generate --backend builtin

  # Custom paths and a tighter deadline
  talosgen generate -i lab/nodes.yaml -o out --timeout 30s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Generate(cmd.Context(), opts)
		},
	}

	addInventoryFlag(cmd, &opts.InventoryPath)
	addOutputFlag(cmd, &opts.OutputDir)
	cmd.Flags().StringVar(&opts.Backend, "backend", handlers.BackendTalosctl, "Config generator: talosctl or builtin")
	cmd.Flags().StringVar(&opts.Talosctl, "talosctl", talos.DefaultTalosctl, "talosctl binary name or path")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Deadline per node generation (overrides TALOSGEN_TIMEOUT_GENERATE)")
	cmd.Flags().IntVar(&opts.Parallelism, "parallel", 1, "Number of nodes generated concurrently")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log every generator invocation to stderr")

	return cmd
}
