// Package cli parses and validates the reaper's command line and builds its
// logger. All validation happens here, before any AWS client exists.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"stepfunction-reaper/internal/scan"
)

// ExitError carries the process exit code a CLI failure maps to.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// Options is everything the reaper binary needs from its command line.
type Options struct {
	Scan     scan.Config
	Region   string
	Lookback time.Duration
	Output   string
	LogLevel string
}

const usageText = `sfn-reaper audits running Step Functions executions and, in clean mode,
stops the ones older than an age threshold.

Usage:
  sfn-reaper --state-machine-arn ARN --batch-size N --age-seconds N --sleep-seconds N [options]

Options:
`

// Parse processes args. The boolean is true when the program should exit
// cleanly without scanning (help requested). Validation failures return an
// *ExitError with code 2.
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	fs := flag.NewFlagSet("sfn-reaper", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, usageText)
		fs.PrintDefaults()
	}

	stateMachineARN := fs.String("state-machine-arn", "", "ARN of the state machine to scan (required).")
	batchSize := fs.Int("batch-size", 0, "Executions per list call, 1-1000 (required).")
	ageSeconds := fs.Int("age-seconds", -1, "Age threshold in seconds; older executions qualify (required).")
	sleepSeconds := fs.Int("sleep-seconds", -1, "Delay in seconds between pages (required).")
	clean := fs.Bool("clean", false, "Stop qualifying executions. Without this flag the scan is a dry run.")
	region := fs.String("region", "", "AWS region. Defaults to the SDK resolution chain.")
	lookback := fs.Duration("lookback", 24*time.Hour, "How far back to read Express workflow log events.")
	outputMode := fs.String("output", "table", "Summary format. Options: 'table' or 'json'.")
	logLevel := fs.String("log-level", "info", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	seen := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	for _, required := range []string{"state-machine-arn", "batch-size", "age-seconds", "sleep-seconds"} {
		if !seen[required] {
			return nil, false, &ExitError{Code: 2, Message: "missing required flag --" + required}
		}
	}

	if *batchSize < 1 || *batchSize > 1000 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid --batch-size: must be 1-1000, got %d", *batchSize)}
	}
	if *ageSeconds < 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid --age-seconds: must not be negative, got %d", *ageSeconds)}
	}
	if *sleepSeconds < 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid --sleep-seconds: must not be negative, got %d", *sleepSeconds)}
	}
	if *lookback <= 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid --lookback: must be positive"}
	}

	mode := strings.ToLower(*outputMode)
	if mode != "table" && mode != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid --output: must be 'table' or 'json'"}
	}

	level := strings.ToLower(*logLevel)
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid --log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	opts := &Options{
		Scan: scan.Config{
			StateMachineARN: *stateMachineARN,
			PageSize:        int32(*batchSize),
			AgeThreshold:    time.Duration(*ageSeconds) * time.Second,
			InterPageDelay:  time.Duration(*sleepSeconds) * time.Second,
			Clean:           *clean,
		},
		Region:   *region,
		Lookback: *lookback,
		Output:   mode,
		LogLevel: level,
	}
	if err := opts.Scan.Validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return opts, false, nil
}

// NewLogger builds the process logger writing to w at the given level. It
// does not touch the global default.
func NewLogger(level string, w io.Writer) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
