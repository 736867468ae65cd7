package scan

import (
	"context"
	"log/slog"
	"time"

	"stepfunction-reaper/internal/stepfunctions"
	"stepfunction-reaper/internal/timeutil"
)

// Lister returns one page of running executions per call. Both the Standard
// and the Express lister satisfy it.
type Lister interface {
	ListRunning(ctx context.Context, stateMachineARN string, pageSize int32, nextToken *string) (*stepfunctions.Page, error)
}

// Stopper issues a stop request for one execution.
type Stopper interface {
	Stop(ctx context.Context, executionARN, cause string) error
}

// AgedExecution is one over-threshold execution together with what the scan
// did about it.
type AgedExecution struct {
	Execution stepfunctions.ExecutionSummary
	Age       time.Duration
	// Stopped is true when a stop request was issued and acknowledged.
	// False in dry runs and on stop failure.
	Stopped bool
	StopErr error
}

// PageReport describes one evaluated page for the reporter.
type PageReport struct {
	PageNumber int
	Checked    int
	Skipped    int
	Aged       []AgedExecution
}

// Reporter receives a PageReport after each page is fully evaluated.
type Reporter interface {
	PageCompleted(PageReport)
}

// Orchestrator drives the scan: fetch a page, classify every execution on
// it, act on the aged ones, report, sleep, repeat until the continuation
// token runs out. Strictly sequential, so at most one destructive call is
// ever in flight and the inter-page delay actually paces the API.
type Orchestrator struct {
	lister   Lister
	stopper  Stopper
	reporter Reporter
	clock    timeutil.Clock
	sleep    func(ctx context.Context, d time.Duration) error
	log      *slog.Logger
}

func NewOrchestrator(lister Lister, stopper Stopper, reporter Reporter, clock timeutil.Clock, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		lister:   lister,
		stopper:  stopper,
		reporter: reporter,
		clock:    clock,
		sleep:    sleepCtx,
		log:      log,
	}
}

// Run executes one scan. The returned Result carries whatever counters
// accumulated, even when err is non-nil, so the caller can render a partial
// summary after a fatal list error or an interrupt.
func (o *Orchestrator) Run(ctx context.Context, cfg Config) (Result, error) {
	var result Result

	if err := cfg.Validate(); err != nil {
		return result, err
	}

	cause := StopCause(cfg.AgeThreshold)

	var token *string
	for {
		page, err := o.lister.ListRunning(ctx, cfg.StateMachineARN, cfg.PageSize, token)
		if err != nil {
			return result, err
		}

		if len(page.Executions) == 0 && page.NextToken == nil {
			break
		}

		result.Counters.PagesProcessed++
		result.Counters.TotalChecked += len(page.Executions)

		report := PageReport{
			PageNumber: result.Counters.PagesProcessed,
			Checked:    len(page.Executions),
		}
		now := o.clock.Now()

		for _, exec := range page.Executions {
			aged, err := IsAged(exec, now, cfg.AgeThreshold)
			if err != nil {
				o.log.Warn("skipping execution with unparseable start time",
					"arn", exec.ARN, "started_at", exec.StartedAt, "error", err)
				result.Counters.TotalSkipped++
				report.Skipped++
				continue
			}
			if !aged {
				continue
			}

			result.Counters.TotalAged++
			item := AgedExecution{Execution: exec}
			if started, perr := timeutil.ParseServiceTimestamp(exec.StartedAt); perr == nil {
				item.Age = now.Sub(started)
			}

			if cfg.Clean {
				if err := o.stopper.Stop(ctx, exec.ARN, cause); err != nil {
					o.log.Error("failed to stop execution", "arn", exec.ARN, "error", err)
					result.Counters.TotalStopFailed++
					result.StopFailures = append(result.StopFailures, StopFailure{
						ExecutionARN: exec.ARN,
						Reason:       err.Error(),
					})
					item.StopErr = err
				} else {
					result.Counters.TotalStopped++
					item.Stopped = true
				}
			}
			report.Aged = append(report.Aged, item)
		}

		if o.reporter != nil {
			o.reporter.PageCompleted(report)
		}
		o.log.Info("page evaluated",
			"page", report.PageNumber, "checked", report.Checked, "aged", len(report.Aged))

		if page.NextToken == nil {
			break
		}
		token = page.NextToken

		if err := o.sleep(ctx, cfg.InterPageDelay); err != nil {
			return result, err
		}
	}

	return result, nil
}

// sleepCtx waits for d or until ctx is canceled, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
