package reset

import "context"

// Scheduler zeroes the daily counters and clears out every session at each
// reset boundary
type Scheduler interface {
	// Start registers the reset job and begins waiting for the next boundary
	Start() error

	// Stop cancels the pending wait and blocks until a running reset finishes
	Stop()

	// RunOnce performs one reset pass over every community immediately
	RunOnce(ctx context.Context) (*RunOutput, error)
}
