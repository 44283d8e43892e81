package probe

import "context"

// Phase names the stage of a check where a failure occurred.
const (
	PhaseConnect = "connect"
	PhaseRequest = "request"
)

// CheckResult holds the outcome of a single probe cycle.
//
// Exactly one of the two shapes occurs: Success with FinalizedHead set, or
// failure with Phase and Message describing what broke. Every failure mode
// of a phase folds into that phase's single failure class; the detail in
// Message is for logs only.
type CheckResult struct {
	Success       bool
	Phase         string
	FinalizedHead string
	Message       string
	LatencyMS     float64
}

// Checker performs a single check against a target URL.
type Checker interface {
	Check(ctx context.Context, target string) CheckResult
}
