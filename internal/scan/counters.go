package scan

// Counters accumulates over one scan. All fields are monotonically
// non-decreasing; the orchestrator owns the value exclusively until it is
// handed to the reporter inside the final Result.
type Counters struct {
	PagesProcessed int `json:"pages_processed"`
	TotalChecked   int `json:"total_checked"`
	TotalAged      int `json:"total_aged"`
	TotalStopped   int `json:"total_stopped"`
	// TotalSkipped counts executions whose start timestamp would not parse.
	// They still count toward TotalChecked but never toward TotalAged.
	TotalSkipped    int `json:"total_skipped"`
	TotalStopFailed int `json:"total_stop_failed"`
}

// StopFailure records one execution whose stop request was rejected. The
// scan continues past it; the failure only shows up in the summary.
type StopFailure struct {
	ExecutionARN string `json:"execution_arn"`
	Reason       string `json:"reason"`
}

// Result is what a scan hands back, on completion and on abort alike, so a
// partial summary can always be rendered.
type Result struct {
	Counters     Counters      `json:"counters"`
	StopFailures []StopFailure `json:"stop_failures,omitempty"`
}
