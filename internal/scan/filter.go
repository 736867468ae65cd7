package scan

import (
	"fmt"
	"time"

	"stepfunction-reaper/internal/stepfunctions"
	"stepfunction-reaper/internal/timeutil"
)

// IsAged reports whether the execution has been running strictly longer than
// threshold as of now. An execution aged exactly threshold is not aged. An
// unparseable start timestamp returns an error; the caller skips that one
// item rather than failing the page. Pure function, stable under repeated
// calls.
func IsAged(e stepfunctions.ExecutionSummary, now time.Time, threshold time.Duration) (bool, error) {
	started, err := timeutil.ParseServiceTimestamp(e.StartedAt)
	if err != nil {
		return false, fmt.Errorf("execution %s: %w", e.ARN, err)
	}
	return now.Sub(started) > threshold, nil
}
