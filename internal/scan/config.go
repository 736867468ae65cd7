// Package scan holds the domain core of the reaper: the scan configuration,
// the age decision, the page-by-page orchestration loop and its counters.
// It talks to AWS only through the narrow Lister and Stopper interfaces so
// every path in here is testable against fakes.
package scan

import (
	"fmt"
	"time"
)

// maxPageSize is the list API's cap on MaxResults.
const maxPageSize = 1000

// Config is the immutable input to one scan.
type Config struct {
	StateMachineARN string
	PageSize        int32
	AgeThreshold    time.Duration
	InterPageDelay  time.Duration
	// Clean enables destructive mode. False is a dry run: aged executions
	// are reported but never stopped.
	Clean bool
}

// Validate rejects a Config before any API call is made.
func (c Config) Validate() error {
	if c.StateMachineARN == "" {
		return fmt.Errorf("state machine ARN is required")
	}
	if c.PageSize < 1 || c.PageSize > maxPageSize {
		return fmt.Errorf("page size must be between 1 and %d, got %d", maxPageSize, c.PageSize)
	}
	if c.AgeThreshold < 0 {
		return fmt.Errorf("age threshold must not be negative, got %s", c.AgeThreshold)
	}
	if c.InterPageDelay < 0 {
		return fmt.Errorf("inter-page delay must not be negative, got %s", c.InterPageDelay)
	}
	return nil
}

// StopCause builds the cause string recorded on every execution this scan
// stops, embedding the threshold so the execution history explains why the
// execution was targeted.
func StopCause(threshold time.Duration) string {
	return fmt.Sprintf("Execution ran longer than the configured age threshold of %s", threshold)
}
