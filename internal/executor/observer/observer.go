// Package observer defines metrics hooks for fragment execution.
package observer

import (
	"context"
	"time"
)

// Outcome labels for ObserveExecution.
const (
	OutcomePassed      = "passed"
	OutcomeFailed      = "failed"
	OutcomeFatal       = "fatal"
	OutcomeBlacklisted = "blacklisted"
	OutcomeError       = "error"
)

// MetricsRecorder records executor metrics.
type MetricsRecorder interface {
	ObserveCompile(ctx context.Context, languageID string, ok bool, elapsed time.Duration)
	ObserveRun(ctx context.Context, languageID string, ok bool, elapsed time.Duration)
	ObserveExecution(ctx context.Context, languageID string, outcome string, testCases int)
	ObserveBlacklistRejection(ctx context.Context, languageID string)
	ObserveIsolationFallback(ctx context.Context, languageID string, provisioner string)
	ObserveRateLimited()
	AddInFlight(delta int)
}

// NoopMetricsRecorder is a default recorder that does nothing.
type NoopMetricsRecorder struct{}

func (NoopMetricsRecorder) ObserveCompile(ctx context.Context, languageID string, ok bool, elapsed time.Duration) {
}

func (NoopMetricsRecorder) ObserveRun(ctx context.Context, languageID string, ok bool, elapsed time.Duration) {
}

func (NoopMetricsRecorder) ObserveExecution(ctx context.Context, languageID string, outcome string, testCases int) {
}

func (NoopMetricsRecorder) ObserveBlacklistRejection(ctx context.Context, languageID string) {}

func (NoopMetricsRecorder) ObserveIsolationFallback(ctx context.Context, languageID string, provisioner string) {
}

func (NoopMetricsRecorder) ObserveRateLimited() {}

func (NoopMetricsRecorder) AddInFlight(delta int) {}

// OrNoop returns m, or a NoopMetricsRecorder when m is nil.
func OrNoop(m MetricsRecorder) MetricsRecorder {
	if m == nil {
		return NoopMetricsRecorder{}
	}
	return m
}
