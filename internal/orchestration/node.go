package orchestration

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/talosgen/internal/config"
	"github.com/imamik/talosgen/internal/inventory"
	"github.com/imamik/talosgen/internal/platform/talos"
	"github.com/imamik/talosgen/internal/util/naming"
)

// NodeState is a step in a node's generation lifecycle.
type NodeState string

// Lifecycle: Pending -> PatchWritten -> GeneratorInvoked -> Succeeded|Failed
// -> CleanedUp. A failure before the override exists goes straight to Failed.
const (
	StatePending          NodeState = "PENDING"
	StatePatchWritten     NodeState = "PATCH_WRITTEN"
	StateGeneratorInvoked NodeState = "GENERATOR_INVOKED"
	StateSucceeded        NodeState = "SUCCEEDED"
	StateFailed           NodeState = "FAILED"
	StateCleanedUp        NodeState = "CLEANED_UP"
)

// NodeResult is the outcome for one node.
type NodeResult struct {
	Hostname    string
	Role        inventory.Role
	Class       inventory.Class
	OutputPath  string
	PatchPath   string // temporary override, removed by the time Run returns
	SANs        []string
	State       NodeState
	Transitions []NodeState
	Duration    time.Duration
	Err         error
}

func newNodeResult(node inventory.Node, layout config.Layout) *NodeResult {
	r := &NodeResult{
		Hostname:   node.Hostname,
		Role:       node.EffectiveRole,
		Class:      node.Class,
		OutputPath: layout.NodeConfigPath(string(talos.OutputTypeForRole(node.EffectiveRole)), node.Hostname),
	}
	r.transition(StatePending)
	return r
}

func (r *NodeResult) transition(s NodeState) {
	r.State = s
	r.Transitions = append(r.Transitions, s)
}

// processNode runs one node through its lifecycle. The override is removed on
// every path once it has been created.
func (o *Orchestrator) processNode(ctx context.Context, node inventory.Node, result *NodeResult, report *Report) (err error) {
	start := time.Now()
	o.observer.Event(Event{Type: EventNodeStarted, Hostname: node.Hostname, Message: string(node.EffectiveRole)})

	defer func() {
		result.Duration = time.Since(start)
		o.metrics.ObserveNode(string(node.EffectiveRole), resultOf(err))
		if err != nil {
			result.Err = err
			o.observer.Event(Event{Type: EventNodeFailed, Hostname: node.Hostname, Err: err})
			return
		}
		o.observer.Event(Event{Type: EventNodeSucceeded, Hostname: node.Hostname, Path: result.OutputPath, Duration: result.Duration})
	}()

	fail := func(err error) error {
		result.transition(StateFailed)
		return &GenerationError{Hostname: node.Hostname, Artifact: "machine config", Err: err}
	}

	doc := talos.Synthesize(o.inv.Cluster, node.NodeSpec, node.EffectiveRole)
	data, err := talos.RenderOverride(doc)
	if err != nil {
		return fail(err)
	}

	tempPath, err := writeOverride(o.layout.TempDir(), node.Hostname, data)
	if tempPath != "" {
		result.PatchPath = tempPath
		defer o.cleanup(node.Hostname, tempPath, result, report)
	}
	if err != nil {
		return fail(err)
	}
	result.transition(StatePatchWritten)

	result.SANs = talos.CertSANs(o.inv.Cluster, node.NodeSpec, node.EffectiveRole)
	req := talos.ConfigRequest{
		ClusterName:       o.inv.Cluster.Name,
		Endpoint:          o.inv.Cluster.Endpoint,
		SecretsPath:       o.layout.SecretsPath(),
		KubernetesVersion: o.inv.Cluster.KubernetesVersion,
		TalosVersion:      o.inv.Cluster.TalosVersion,
		Patches:           []string{o.sharedPatch(node.Class), tempPath},
		OutputPath:        result.OutputPath,
		OutputType:        talos.OutputTypeForRole(node.EffectiveRole),
		AdditionalSANs:    result.SANs,
		Force:             true,
	}

	if err := removeStale(req.OutputPath); err != nil {
		return fail(err)
	}

	callCtx, cancel := context.WithTimeout(ctx, o.timeouts.Generate)
	defer cancel()

	result.transition(StateGeneratorInvoked)
	o.log.V(1).Info("invoking generator",
		"hostname", node.Hostname,
		"outputType", req.OutputType,
		"patches", req.Patches,
		"sans", req.AdditionalSANs,
	)

	callStart := time.Now()
	err = o.gen.GenerateConfig(callCtx, req)
	if err == nil {
		err = verifyArtifact(req.OutputPath)
	}
	o.metrics.ObserveInvocation(string(req.OutputType), resultOf(err), time.Since(callStart))
	if err != nil {
		return fail(deadlineError(callCtx, o.timeouts.Generate, err))
	}

	result.transition(StateSucceeded)
	return nil
}

// writeOverride stores data in a fresh temporary file in dir. The returned path
// is set whenever the file was created, even if writing it failed.
func writeOverride(dir, hostname string, data []byte) (string, error) {
	f, err := createTemp(dir, naming.NodePatchPattern(hostname))
	if err != nil {
		return "", fmt.Errorf("failed to create override file: %w", err)
	}
	path := f.Name()

	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil {
		return path, fmt.Errorf("failed to write override %s: %w", path, werr)
	}
	if cerr != nil {
		return path, fmt.Errorf("failed to close override %s: %w", path, cerr)
	}
	return path, nil
}

func (o *Orchestrator) cleanup(hostname, path string, result *NodeResult, report *Report) {
	if err := removeFile(path); err != nil {
		w := CleanupWarning{Hostname: hostname, Path: path, Err: err}
		o.log.Info("cleanup warning", "hostname", hostname, "path", path, "error", err.Error())
		o.metrics.ObserveCleanupWarning()
		o.addCleanupWarning(report, w)
		o.observer.Event(Event{Type: EventCleanupWarning, Hostname: hostname, Path: path, Err: err})
		return
	}
	result.transition(StateCleanedUp)
}
