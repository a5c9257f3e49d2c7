package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/talosgen/internal/config"
	"github.com/imamik/talosgen/internal/inventory"
	"github.com/imamik/talosgen/internal/metrics"
	"github.com/imamik/talosgen/internal/platform/talos"
	"github.com/imamik/talosgen/internal/util/async"
)

// Test seams for the temporary override lifecycle.
var (
	createTemp = os.CreateTemp
	removeFile = os.Remove
)

const artifactSecrets = "secrets"

// Config carries everything a run needs.
type Config struct {
	Inventory *inventory.Inventory
	Generator talos.Generator
	Layout    config.Layout
	Timeouts  config.Timeouts // zero values fall back to LoadTimeouts
	Observer  Observer        // nil discards progress events
	Logger    logr.Logger     // zero value discards
	Metrics   *metrics.Recorder

	// Parallelism bounds concurrent node generations. Values below 2 keep
	// strict inventory order.
	Parallelism int
}

// Orchestrator runs generations for one inventory.
type Orchestrator struct {
	inv      *inventory.Inventory
	gen      talos.Generator
	layout   config.Layout
	timeouts config.Timeouts
	observer Observer
	log      logr.Logger
	metrics  *metrics.Recorder
	parallel int

	mu sync.Mutex
}

// New creates an Orchestrator, filling unset fields with defaults.
func New(cfg Config) *Orchestrator {
	timeouts := cfg.Timeouts
	defaults := config.LoadTimeouts()
	if timeouts.Generate <= 0 {
		timeouts.Generate = defaults.Generate
	}
	if timeouts.Secrets <= 0 {
		timeouts.Secrets = defaults.Secrets
	}

	observer := cfg.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	return &Orchestrator{
		inv:      cfg.Inventory,
		gen:      cfg.Generator,
		layout:   cfg.Layout,
		timeouts: timeouts,
		observer: observer,
		log:      log,
		metrics:  cfg.Metrics,
		parallel: cfg.Parallelism,
	}
}

// Report summarizes a run. It is returned even when the run fails.
type Report struct {
	SecretsPath     string
	SecretsCreated  bool
	Nodes           []*NodeResult // processed nodes, in inventory order
	TalosconfigPath string        // empty unless talosconfig was written
	CleanupWarnings []CleanupWarning
	Duration        time.Duration
}

// Succeeded counts nodes whose config was written.
func (r *Report) Succeeded() int {
	n := 0
	for _, node := range r.Nodes {
		if node.Err == nil {
			n++
		}
	}
	return n
}

// Run performs one full generation.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{SecretsPath: o.layout.SecretsPath()}

	err := o.run(ctx, report)

	report.Duration = time.Since(start)
	o.metrics.ObserveRun(report.Duration, err == nil, time.Now())
	if err != nil {
		return report, err
	}

	o.observer.Event(Event{
		Type:     EventRunCompleted,
		Message:  fmt.Sprintf("generated %d node configs", len(report.Nodes)),
		Duration: report.Duration,
	})
	return report, nil
}

func (o *Orchestrator) run(ctx context.Context, report *Report) error {
	if o.inv == nil {
		return errors.New("no inventory loaded")
	}
	if o.gen == nil {
		return errors.New("no generator configured")
	}

	if err := o.preflight(); err != nil {
		return err
	}

	if err := os.MkdirAll(o.layout.OutputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", o.layout.OutputDir, err)
	}

	created, err := o.ensureSecrets(ctx)
	if err != nil {
		return err
	}
	report.SecretsCreated = created

	if err := o.generateNodes(ctx, report); err != nil {
		return err
	}

	path, err := o.generateCredentials(ctx)
	if err != nil {
		return err
	}
	report.TalosconfigPath = path
	return nil
}

// preflight checks inputs that would otherwise fail mid-run, before anything
// is written.
func (o *Orchestrator) preflight() error {
	checked := make(map[string]bool)
	for _, node := range o.inv.Nodes() {
		path := o.sharedPatch(node.Class)
		if checked[path] {
			continue
		}
		checked[path] = true

		info, err := os.Stat(path)
		if err != nil {
			return &inventory.ValidationError{
				Node:   node.Hostname,
				Field:  "patches",
				Reason: fmt.Sprintf("shared %s patch %s is not readable: %v", node.Class, path, err),
			}
		}
		if info.IsDir() {
			return &inventory.ValidationError{
				Node:   node.Hostname,
				Field:  "patches",
				Reason: fmt.Sprintf("shared %s patch %s is a directory", node.Class, path),
			}
		}
	}
	return nil
}

// ensureSecrets creates the secrets bundle unless it already exists. An
// existing bundle is never regenerated.
func (o *Orchestrator) ensureSecrets(ctx context.Context) (bool, error) {
	path := o.layout.SecretsPath()

	exists, err := talos.SecretsExist(path)
	if err != nil {
		return false, &GenerationError{Artifact: artifactSecrets, Err: err}
	}
	if exists {
		o.log.V(1).Info("secrets bundle exists, skipping generation", "path", path)
		o.metrics.ObserveInvocation(artifactSecrets, metrics.ResultSkipped, 0)
		o.observer.Event(Event{Type: EventSecretsExists, Path: path})
		return false, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, o.timeouts.Secrets)
	defer cancel()

	o.log.Info("generating secrets bundle", "path", path)
	start := time.Now()
	err = o.gen.GenerateSecrets(callCtx, path, o.inv.Cluster.TalosVersion)
	if err == nil {
		err = verifyArtifact(path)
	}
	o.metrics.ObserveInvocation(artifactSecrets, resultOf(err), time.Since(start))
	if err != nil {
		return false, &GenerationError{Artifact: artifactSecrets, Err: deadlineError(callCtx, o.timeouts.Secrets, err)}
	}

	o.observer.Event(Event{Type: EventSecretsCreated, Path: path})
	return true, nil
}

func (o *Orchestrator) generateNodes(ctx context.Context, report *Report) error {
	nodes := o.inv.Nodes()
	results := make([]*NodeResult, len(nodes))

	tasks := make([]async.Task, 0, len(nodes))
	for i, node := range nodes {
		tasks = append(tasks, async.Task{
			Name: node.Hostname,
			Func: func(ctx context.Context) error {
				result := newNodeResult(node, o.layout)
				results[i] = result
				return o.processNode(ctx, node, result, report)
			},
		})
	}

	err := async.RunLimited(ctx, tasks, o.parallel)

	for _, r := range results {
		if r != nil {
			report.Nodes = append(report.Nodes, r)
		}
	}
	return err
}

// sharedPatch resolves a class's shared patch, defaulting to the output
// directory's patches folder.
func (o *Orchestrator) sharedPatch(class inventory.Class) string {
	return o.inv.PatchPath(class, o.layout.PatchDir())
}

func (o *Orchestrator) addCleanupWarning(report *Report, w CleanupWarning) {
	o.mu.Lock()
	defer o.mu.Unlock()
	report.CleanupWarnings = append(report.CleanupWarnings, w)
}

// removeStale deletes a previous run's artifact so that verifyArtifact only
// accepts files written by the current invocation.
func removeStale(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove previous %s: %w", path, err)
	}
	return nil
}

func verifyArtifact(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("generator reported success but %s is missing: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("generator output %s is a directory", path)
	}
	return nil
}

// deadlineError rewrites a failure caused by the per-invocation deadline so
// the timeout is visible.
func deadlineError(ctx context.Context, timeout time.Duration, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("timed out after %v: %w", timeout, err)
	}
	return err
}

func resultOf(err error) string {
	if err != nil {
		return metrics.ResultFailure
	}
	return metrics.ResultSuccess
}
