// Package seed starts batches of sample executions against a fixture state
// machine so the reaper has something to scan. Starts are paced by a rate
// limiter and throttled starts are retried with exponential backoff; the
// seeder is the load generator, so unlike the scan it is allowed to retry.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/cenkalti/backoff"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"stepfunction-reaper/internal/stepfunctions"
)

// StartExecutionAPI is the slice of the Step Functions client the seeder
// needs. *sfn.Client satisfies it.
type StartExecutionAPI interface {
	StartExecution(ctx context.Context, params *sfn.StartExecutionInput, optFns ...func(*sfn.Options)) (*sfn.StartExecutionOutput, error)
}

// Config describes one seeding run.
type Config struct {
	StateMachineARN string
	Count           int
	// RatePerSecond caps StartExecution calls per second.
	RatePerSecond float64
	// Input is the JSON document passed to every started execution.
	Input string
	// NamePrefix prefixes each execution name; a uuid suffix keeps names
	// unique across runs.
	NamePrefix string
}

func (c Config) Validate() error {
	if c.StateMachineARN == "" {
		return fmt.Errorf("state machine ARN is required")
	}
	if c.Count < 1 {
		return fmt.Errorf("count must be positive, got %d", c.Count)
	}
	if c.RatePerSecond <= 0 {
		return fmt.Errorf("rate must be positive, got %g", c.RatePerSecond)
	}
	return nil
}

// Report tallies one seeding run.
type Report struct {
	Started int
	Failed  int
}

// Seeder starts executions one at a time at a bounded rate.
type Seeder struct {
	api     StartExecutionAPI
	limiter *rate.Limiter
	log     *slog.Logger
	// maxElapsed bounds the backoff retries for one throttled start.
	maxElapsed time.Duration
}

func NewSeeder(api StartExecutionAPI, ratePerSecond float64, log *slog.Logger) *Seeder {
	return &Seeder{
		api:        api,
		limiter:    rate.NewLimiter(rate.Limit(ratePerSecond), 1),
		log:        log,
		maxElapsed: 2 * time.Minute,
	}
}

// Run starts cfg.Count executions. A start that keeps getting throttled past
// the backoff budget, or fails with any non-throttle error, counts as failed;
// the run continues to the next execution either way.
func (s *Seeder) Run(ctx context.Context, cfg Config) (Report, error) {
	var report Report

	if err := cfg.Validate(); err != nil {
		return report, err
	}

	for i := 0; i < cfg.Count; i++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return report, fmt.Errorf("seeding interrupted: %w", err)
		}

		name := fmt.Sprintf("%s-%s", cfg.NamePrefix, uuid.NewString())
		if err := s.start(ctx, cfg, name); err != nil {
			s.log.Error("failed to start execution", "name", name, "error", err)
			report.Failed++
			continue
		}
		s.log.Debug("started execution", "name", name)
		report.Started++
	}

	return report, nil
}

// start issues one StartExecution, retrying only while the service reports
// throttling. Any other failure is permanent for this execution.
func (s *Seeder) start(ctx context.Context, cfg Config, name string) error {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.MaxElapsedTime = s.maxElapsed

	operation := func() error {
		_, err := s.api.StartExecution(ctx, &sfn.StartExecutionInput{
			StateMachineArn: aws.String(cfg.StateMachineARN),
			Name:            aws.String(name),
			Input:           aws.String(cfg.Input),
		})
		if err == nil {
			return nil
		}
		if stepfunctions.IsThrottle(err) {
			s.log.Warn("start throttled, will retry", "name", name, "error", err)
			return err
		}
		return backoff.Permanent(err)
	}

	if err := backoff.Retry(operation, backoff.WithContext(expBackoff, ctx)); err != nil {
		return fmt.Errorf("failed to start execution %s: %w", name, err)
	}
	return nil
}
