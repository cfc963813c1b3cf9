// Package notify implements the UI notification sink consumed by stores.
// Delivery is fire-and-forget; stores never block on it
package notify

import "backoffice/internal/platform/logger"

// Log is a sink that writes notifications to the structured log, the
// default for headless hosts like the CLI
type Log struct {
	log logger.Logger
}

// NewLog returns a sink logging under the given component name
func NewLog(component string) *Log {
	return &Log{log: *logger.Named(component)}
}

// Success reports a completed operation
func (l *Log) Success(text string) {
	l.log.Info().Str("notice", "success").Msg(text)
}

// Error reports a failed operation with its user-facing text
func (l *Log) Error(text string) {
	l.log.Warn().Str("notice", "error").Msg(text)
}

// Recorder captures notifications for assertions in tests
type Recorder struct {
	Successes []string
	Errors    []string
}

// Success records text
func (r *Recorder) Success(text string) { r.Successes = append(r.Successes, text) }

// Error records text
func (r *Recorder) Error(text string) { r.Errors = append(r.Errors, text) }
