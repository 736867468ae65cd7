package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"stepfunction-reaper/internal/cli"
	"stepfunction-reaper/internal/report"
	"stepfunction-reaper/internal/scan"
	"stepfunction-reaper/internal/stepfunctions"
	"stepfunction-reaper/internal/timeutil"
)

func main() {
	// Minimal logger until the configured one exists.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		if stepfunctions.IsThrottle(err) {
			fmt.Fprintln(os.Stderr, "The service is throttling this scan. Increase --sleep-seconds or reduce --batch-size and rerun.")
		}
		os.Exit(1)
	}
}

func run(outW io.Writer, args []string) error {
	opts, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	log := cli.NewLogger(opts.LogLevel, os.Stderr)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clients, err := stepfunctions.NewClients(ctx, opts.Region)
	if err != nil {
		return err
	}

	details, err := stepfunctions.DescribeStateMachine(ctx, clients.SFN, opts.Scan.StateMachineARN)
	if err != nil {
		return err
	}
	log.Info("scanning state machine", "name", details.Name, "type", details.Type,
		"clean", opts.Scan.Clean, "threshold", opts.Scan.AgeThreshold)

	clock := timeutil.SystemClock{}
	cfg := opts.Scan

	var lister scan.Lister
	if details.IsExpress() {
		if details.LogGroupName == "" {
			return fmt.Errorf("no CloudWatch Logs log group configured for Express state machine %s; enable logging to scan it", details.Name)
		}
		// Express executions cannot be stopped through the API, so a clean
		// scan of an Express machine downgrades to a dry run.
		if cfg.Clean {
			log.Warn("StopExecution does not support Express executions; running as dry run")
			cfg.Clean = false
		}
		lister = stepfunctions.NewExpressLister(clients.Logs, details.LogGroupName, opts.Lookback, clock, log)
	} else {
		lister = stepfunctions.NewExecutionLister(clients.SFN)
	}

	stopper := stepfunctions.NewExecutionStopper(clients.SFN)

	var reporter scan.Reporter
	console := report.NewConsole(outW)
	if opts.Output == "json" {
		reporter = report.NewLog(log)
	} else {
		reporter = console
	}

	orch := scan.NewOrchestrator(lister, stopper, reporter, clock, log)
	result, scanErr := orch.Run(ctx, cfg)

	// The summary is rendered even after a fatal list error or interrupt,
	// so the operator sees what the scan got through before dying.
	if opts.Output == "json" {
		if err := report.WriteJSON(outW, cfg.StateMachineARN, cfg.Clean, cfg.AgeThreshold, result); err != nil {
			log.Error("failed to write JSON summary", "error", err)
		}
	} else {
		console.Summary(result, cfg.Clean)
	}

	if scanErr != nil {
		return fmt.Errorf("scan aborted: %w", scanErr)
	}
	return nil
}
