package orchestration

import (
	"context"
	"time"

	"github.com/imamik/talosgen/internal/platform/talos"
)

// generateCredentials writes talosconfig from the run's secrets bundle. It
// runs once per run, after every node config exists.
func (o *Orchestrator) generateCredentials(ctx context.Context) (string, error) {
	req := talos.ClientConfigRequest{
		ClusterName:       o.inv.Cluster.Name,
		Endpoint:          o.inv.Cluster.Endpoint,
		SecretsPath:       o.layout.SecretsPath(),
		KubernetesVersion: o.inv.Cluster.KubernetesVersion,
		TalosVersion:      o.inv.Cluster.TalosVersion,
		OutputPath:        o.layout.TalosconfigPath(),
		Force:             true,
	}

	if err := removeStale(req.OutputPath); err != nil {
		err = &GenerationError{Artifact: string(talos.OutputTalosconfig), Err: err}
		o.observer.Event(Event{Type: EventCredentialsFailed, Err: err})
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, o.timeouts.Generate)
	defer cancel()

	o.log.V(1).Info("generating talosconfig", "path", req.OutputPath)
	start := time.Now()
	err := o.gen.GenerateClientConfig(callCtx, req)
	if err == nil {
		err = verifyArtifact(req.OutputPath)
	}
	o.metrics.ObserveInvocation(string(talos.OutputTalosconfig), resultOf(err), time.Since(start))
	if err != nil {
		err = &GenerationError{Artifact: string(talos.OutputTalosconfig), Err: deadlineError(callCtx, o.timeouts.Generate, err)}
		o.observer.Event(Event{Type: EventCredentialsFailed, Err: err})
		return "", err
	}

	o.observer.Event(Event{Type: EventCredentialsWritten, Path: req.OutputPath})
	return req.OutputPath, nil
}
