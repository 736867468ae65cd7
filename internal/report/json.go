package report

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"stepfunction-reaper/internal/scan"
)

// Log is the per-page reporter used in JSON output mode, where tables on
// stdout would corrupt the document; page progress goes to the logger
// instead.
type Log struct {
	log *slog.Logger
}

func NewLog(log *slog.Logger) *Log {
	return &Log{log: log}
}

// PageCompleted implements scan.Reporter.
func (l *Log) PageCompleted(r scan.PageReport) {
	for _, item := range r.Aged {
		l.log.Info("aged execution",
			"arn", item.Execution.ARN,
			"started_at", item.Execution.StartedAt,
			"age", item.Age.String(),
			"stopped", item.Stopped)
	}
}

// Summary is the JSON document written in --output json mode.
type Summary struct {
	StateMachineARN string             `json:"state_machine_arn"`
	Mode            string             `json:"mode"`
	AgeThreshold    string             `json:"age_threshold"`
	Counters        scan.Counters      `json:"counters"`
	StopFailures    []scan.StopFailure `json:"stop_failures,omitempty"`
}

// WriteJSON renders the scan result as an indented JSON summary.
func WriteJSON(w io.Writer, stateMachineARN string, clean bool, threshold time.Duration, result scan.Result) error {
	mode := "dry-run"
	if clean {
		mode = "clean"
	}
	summary := Summary{
		StateMachineARN: stateMachineARN,
		Mode:            mode,
		AgeThreshold:    threshold.String(),
		Counters:        result.Counters,
		StopFailures:    result.StopFailures,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode scan summary: %w", err)
	}
	return nil
}
