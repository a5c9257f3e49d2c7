package orchestration

import (
	"fmt"
	"time"

	"github.com/imamik/talosgen/internal/ui/progress"
)

// Observer receives progress events from a run.
type Observer interface {
	Event(event Event)
}

// Event is one step of a run.
type Event struct {
	Type     EventType
	Hostname string // empty for cluster-wide steps
	Path     string // artifact or temporary file involved
	Message  string
	Duration time.Duration
	Err      error
}

// EventType represents the type of run event.
type EventType string

const (
	// EventSecretsCreated indicates a new secrets bundle was written.
	EventSecretsCreated EventType = "secrets.created"
	// EventSecretsExists indicates the existing secrets bundle is reused.
	EventSecretsExists EventType = "secrets.exists"

	// EventNodeStarted indicates generation for a node has started.
	EventNodeStarted EventType = "node.started"
	// EventNodeSucceeded indicates a node config was written.
	EventNodeSucceeded EventType = "node.succeeded"
	// EventNodeFailed indicates generation for a node failed.
	EventNodeFailed EventType = "node.failed"

	// EventCleanupWarning indicates a temporary override was left behind.
	EventCleanupWarning EventType = "cleanup.warning"

	// EventCredentialsWritten indicates talosconfig was written.
	EventCredentialsWritten EventType = "credentials.written"
	// EventCredentialsFailed indicates talosconfig generation failed.
	EventCredentialsFailed EventType = "credentials.failed"

	// EventRunCompleted indicates every artifact was written.
	EventRunCompleted EventType = "run.completed"
)

// ConsoleObserver prints events through a progress.Reporter.
type ConsoleObserver struct {
	reporter *progress.Reporter
}

// NewConsoleObserver creates a console observer writing to reporter.
func NewConsoleObserver(reporter *progress.Reporter) *ConsoleObserver {
	return &ConsoleObserver{reporter: reporter}
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	r := o.reporter
	switch event.Type {
	case EventSecretsCreated:
		r.Success("created secrets bundle %s", event.Path)
	case EventSecretsExists:
		r.Skip("reusing secrets bundle %s", event.Path)
	case EventNodeStarted:
		r.Step("generating %s (%s)", event.Hostname, event.Message)
	case EventNodeSucceeded:
		r.Success("%s -> %s (%v)", event.Hostname, event.Path, event.Duration.Round(time.Millisecond))
	case EventNodeFailed:
		r.Failure("%s: %v", event.Hostname, event.Err)
	case EventCleanupWarning:
		r.Warn("could not remove %s: %v", event.Path, event.Err)
	case EventCredentialsWritten:
		r.Success("talosconfig -> %s", event.Path)
	case EventCredentialsFailed:
		r.Failure("talosconfig: %v", event.Err)
	case EventRunCompleted:
		r.Success("%s in %v", event.Message, event.Duration.Round(time.Millisecond))
	default:
		r.Step("%s", formatEvent(event))
	}
}

func formatEvent(event Event) string {
	msg := string(event.Type)
	if event.Hostname != "" {
		msg += fmt.Sprintf(" [%s]", event.Hostname)
	}
	if event.Message != "" {
		msg += " " + event.Message
	}
	return msg
}

type nopObserver struct{}

func (nopObserver) Event(Event) {}
