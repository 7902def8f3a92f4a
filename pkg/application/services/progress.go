package services

// ProgressSink receives observational progress reports from the cascade
// matcher. Implementations must never influence outcomes; a nil-safe no-op
// sink is used when the caller does not care.
type ProgressSink interface {
	// PassStarted reports that a strategy pass is beginning over the given
	// number of still-unresolved candidate records.
	PassStarted(strategy string, pending int)
	// Progress reports periodic progress within a pass.
	Progress(strategy string, processed, pending int)
	// Note reports an informational message, e.g. a configuration
	// degradation.
	Note(message string)
}

// NopProgressSink discards all progress reports.
type NopProgressSink struct{}

// Verify interface compliance
var _ ProgressSink = NopProgressSink{}

func (NopProgressSink) PassStarted(string, int)   {}
func (NopProgressSink) Progress(string, int, int) {}
func (NopProgressSink) Note(string)               {}
