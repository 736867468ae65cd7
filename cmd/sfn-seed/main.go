// sfn-seed starts sample executions against a fixture state machine so a
// reaper scan has material to work on.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"stepfunction-reaper/internal/cli"
	"stepfunction-reaper/internal/seed"
	"stepfunction-reaper/internal/stepfunctions"
)

func main() {
	stateMachineARN := flag.String("state-machine-arn", "", "ARN of the fixture state machine (required).")
	count := flag.Int("count", 10, "Number of executions to start.")
	ratePerSecond := flag.Float64("rate", 5, "Maximum StartExecution calls per second.")
	input := flag.String("input", "{}", "JSON input passed to every execution.")
	namePrefix := flag.String("name-prefix", "seed", "Prefix for generated execution names.")
	region := flag.String("region", "", "AWS region. Defaults to the SDK resolution chain.")
	logLevel := flag.String("log-level", "info", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flag.Parse()

	log := cli.NewLogger(*logLevel, os.Stderr)
	slog.SetDefault(log)

	cfg := seed.Config{
		StateMachineARN: *stateMachineARN,
		Count:           *count,
		RatePerSecond:   *ratePerSecond,
		Input:           *input,
		NamePrefix:      *namePrefix,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clients, err := stepfunctions.NewClients(ctx, *region)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	seeder := seed.NewSeeder(clients.SFN, cfg.RatePerSecond, log)
	rep, err := seeder.Run(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Started %d execution(s), %d failed\n", rep.Started, rep.Failed)
	if rep.Failed > 0 {
		os.Exit(1)
	}
}
