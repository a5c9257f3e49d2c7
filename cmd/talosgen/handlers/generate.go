package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/talosgen/internal/config"
	"github.com/imamik/talosgen/internal/inventory"
	"github.com/imamik/talosgen/internal/metrics"
	"github.com/imamik/talosgen/internal/orchestration"
	"github.com/imamik/talosgen/internal/platform/talos"
	"github.com/imamik/talosgen/internal/ui/progress"
	"github.com/imamik/talosgen/internal/util/prerequisites"
)

// Generator backends selectable with --backend.
const (
	BackendTalosctl = "talosctl"
	BackendBuiltin  = "builtin"
)

// Runner abstracts the orchestrator for testing.
type Runner interface {
	Run(ctx context.Context) (*orchestration.Report, error)
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	loadInventory = inventory.Load

	newGenerator = defaultNewGenerator

	checkGeneratorTools = func(binary string) *prerequisites.CheckResults {
		return prerequisites.Check(prerequisites.GeneratorTools(binary))
	}

	newOrchestrator = func(cfg orchestration.Config) Runner {
		return orchestration.New(cfg)
	}

	newReporter = progress.NewStdoutReporter

	// stdout receives plain command output; stderr receives diagnostics.
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// GenerateOptions holds the generate command flags.
type GenerateOptions struct {
	InventoryPath string
	OutputDir     string
	Backend       string
	Talosctl      string
	Timeout       time.Duration
	Parallelism   int
	MetricsFile   string
	Verbose       bool
}

func defaultNewGenerator(backend, talosctl string) (talos.Generator, error) {
	switch backend {
	case "", BackendTalosctl:
		return talos.NewTalosctlGenerator(talosctl, talos.ExecRunner), nil
	case BackendBuiltin:
		return talos.NewMachineryGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (expected %q or %q)", backend, BackendTalosctl, BackendBuiltin)
	}
}

// Generate loads the inventory and writes every node config plus talosconfig.
func Generate(ctx context.Context, opts GenerateOptions) error {
	log := newLogger(opts.Verbose)

	inv, err := loadInventory(opts.InventoryPath)
	if err != nil {
		return err
	}

	gen, err := newGenerator(opts.Backend, opts.Talosctl)
	if err != nil {
		return err
	}

	if opts.Backend == "" || opts.Backend == BackendTalosctl {
		if err := checkGeneratorTools(opts.Talosctl).Error(); err != nil {
			return fmt.Errorf("%w (or use --backend %s)", err, BackendBuiltin)
		}
	}

	timeouts := config.LoadTimeouts().WithGenerate(opts.Timeout)

	var recorder *metrics.Recorder
	if opts.MetricsFile != "" {
		recorder = metrics.NewRecorder()
	}

	reporter := newReporter()
	reporter.Step("Generating configs for cluster %s at %s", inv.Cluster.Name, inv.Cluster.Endpoint)

	runner := newOrchestrator(orchestration.Config{
		Inventory:   inv,
		Generator:   gen,
		Layout:      config.NewLayout(opts.OutputDir),
		Timeouts:    timeouts,
		Observer:    orchestration.NewConsoleObserver(reporter),
		Logger:      log,
		Metrics:     recorder,
		Parallelism: opts.Parallelism,
	})

	report, runErr := runner.Run(ctx)

	if recorder != nil {
		if err := recorder.WriteTextfile(opts.MetricsFile); err != nil {
			log.Error(err, "metrics not written", "path", opts.MetricsFile)
		}
	}

	if runErr != nil {
		return runErr
	}

	printGenerateSummary(report)
	return nil
}

func newLogger(verbose bool) logr.Logger {
	verbosity := 0
	if verbose {
		verbosity = 1
	}
	return progress.NewLogger(stderr, verbosity).WithName("talosgen")
}

func printGenerateSummary(report *orchestration.Report) {
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "Done! %d node configs written.\n", report.Succeeded())
	for _, n := range report.Nodes {
		fmt.Fprintf(stdout, "  %-24s %-13s %s\n", n.Hostname, n.Role, n.OutputPath)
	}
	if report.TalosconfigPath != "" {
		fmt.Fprintf(stdout, "  %-24s %-13s %s\n", "talosconfig", "", report.TalosconfigPath)
	}
	if n := len(report.CleanupWarnings); n > 0 {
		fmt.Fprintf(stdout, "\n%d temporary override(s) could not be removed:\n", n)
		for _, w := range report.CleanupWarnings {
			fmt.Fprintf(stdout, "  %s\n", w.Path)
		}
	}
}
