package events

import (
	"github.com/exfactory/shipmatch/pkg/application/services"
)

// ReconcileStream is the stream ID all run progress events are appended to.
const ReconcileStream = "reconcile"

const (
	PassStartedEvent  = "reconcile.pass.started"
	PassProgressEvent = "reconcile.pass.progress"
	ModeDegradedEvent = "reconcile.mode.degraded"
)

// PassStarted is the payload of a pass-started event.
type PassStarted struct {
	Strategy string `json:"strategy"`
	Pending  int    `json:"pending"`
}

// PassProgress is the payload of a periodic in-pass progress event.
type PassProgress struct {
	Strategy  string `json:"strategy"`
	Processed int    `json:"processed"`
	Pending   int    `json:"pending"`
}

// ModeDegraded is the payload of an informational degradation note.
type ModeDegraded struct {
	Message string `json:"message"`
}

// Recorder is a ProgressSink that appends every progress report to an event
// store. It is purely observational and is what instrumented runs and tests
// use to assert pass ordering.
type Recorder struct {
	store EventStore
}

// NewRecorder creates a recording sink backed by the given store.
func NewRecorder(store EventStore) *Recorder {
	return &Recorder{store: store}
}

// Verify interface compliance
var _ services.ProgressSink = (*Recorder)(nil)

// PassStarted records the start of a strategy pass.
func (r *Recorder) PassStarted(strategy string, pending int) {
	_ = r.store.AppendEvent(ReconcileStream,
		NewEvent(PassStartedEvent, ReconcileStream, PassStarted{Strategy: strategy, Pending: pending}))
}

// Progress records periodic progress within a pass.
func (r *Recorder) Progress(strategy string, processed, pending int) {
	_ = r.store.AppendEvent(ReconcileStream,
		NewEvent(PassProgressEvent, ReconcileStream, PassProgress{Strategy: strategy, Processed: processed, Pending: pending}))
}

// Note records an informational message such as a configuration degradation.
func (r *Recorder) Note(message string) {
	_ = r.store.AppendEvent(ReconcileStream,
		NewEvent(ModeDegradedEvent, ReconcileStream, ModeDegraded{Message: message}))
}
