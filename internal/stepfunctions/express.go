package stepfunctions

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	"stepfunction-reaper/internal/timeutil"
)

// Express executions never appear in the list API, so they are reconstructed
// from the lifecycle events the service writes to the vended log group: an
// ExecutionStarted event with no matching terminal event means the execution
// is still running.
const expressFilterPattern = `{ $.eventType = "ExecutionStarted" || $.eventType = "ExecutionSucceeded" || $.eventType = "ExecutionFailed" || $.eventType = "ExecutionTimedOut" || $.eventType = "ExecutionAborted" }`

// expressLogEvent is the subset of a Step Functions log message the
// correlation needs. Timestamp is epoch milliseconds.
type expressLogEvent struct {
	EventType    string `json:"eventType"`
	ExecutionARN string `json:"executionArn"`
	Timestamp    int64  `json:"timestamp"`
}

// ExpressLister serves running Express executions in orchestrator-sized
// pages. The running set is materialized once from CloudWatch Logs on the
// first call (paging log events internally), then sliced with synthetic
// offset tokens so the scan loop treats Express and Standard machines
// identically.
type ExpressLister struct {
	logs         cloudwatchlogs.FilterLogEventsAPIClient
	logGroupName string
	lookback     time.Duration
	clock        timeutil.Clock
	log          *slog.Logger

	running []ExecutionSummary
	loaded  bool
}

func NewExpressLister(logs cloudwatchlogs.FilterLogEventsAPIClient, logGroupName string, lookback time.Duration, clock timeutil.Clock, log *slog.Logger) *ExpressLister {
	return &ExpressLister{
		logs:         logs,
		logGroupName: logGroupName,
		lookback:     lookback,
		clock:        clock,
		log:          log,
	}
}

// ListRunning returns one page of running executions. The stateMachineARN
// argument is unused (the log group already scopes the events) but kept so
// the Express lister satisfies the same contract as the Standard one.
func (l *ExpressLister) ListRunning(ctx context.Context, _ string, pageSize int32, nextToken *string) (*Page, error) {
	if !l.loaded {
		if err := l.load(ctx); err != nil {
			return nil, err
		}
		l.loaded = true
	}

	offset := 0
	if nextToken != nil {
		n, err := strconv.Atoi(*nextToken)
		if err != nil || n < 0 || n > len(l.running) {
			return nil, fmt.Errorf("invalid continuation token %q", *nextToken)
		}
		offset = n
	}

	end := offset + int(pageSize)
	if end > len(l.running) {
		end = len(l.running)
	}

	page := &Page{Executions: l.running[offset:end]}
	if end < len(l.running) {
		page.NextToken = aws.String(strconv.Itoa(end))
	}
	return page, nil
}

// load reads lifecycle events over the lookback window and keeps the
// executions that started but never reached a terminal event. Event order
// does not matter: a terminal event seen before its start event still
// removes the execution from the running set.
func (l *ExpressLister) load(ctx context.Context) error {
	input := &cloudwatchlogs.FilterLogEventsInput{
		LogGroupName:  aws.String(l.logGroupName),
		FilterPattern: aws.String(expressFilterPattern),
		StartTime:     aws.Int64(l.clock.Now().Add(-l.lookback).UnixMilli()),
	}

	started := make(map[string]ExecutionSummary)
	ended := make(map[string]bool)

	paginator := cloudwatchlogs.NewFilterLogEventsPaginator(l.logs, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return &APICallError{Op: "filter log events in " + l.logGroupName, Err: err}
		}

		for _, event := range out.Events {
			var le expressLogEvent
			if err := json.Unmarshal([]byte(aws.ToString(event.Message)), &le); err != nil {
				l.log.Warn("skipping unparseable log event", "log_group", l.logGroupName, "error", err)
				continue
			}
			if le.ExecutionARN == "" {
				continue
			}

			if le.EventType == "ExecutionStarted" {
				started[le.ExecutionARN] = ExecutionSummary{
					ARN:       le.ExecutionARN,
					Status:    "RUNNING",
					StartedAt: timeutil.FormatServiceTimestamp(time.UnixMilli(le.Timestamp)),
				}
			} else {
				ended[le.ExecutionARN] = true
			}
		}
	}

	for arn, summary := range started {
		if !ended[arn] {
			l.running = append(l.running, summary)
		}
	}
	// Stable order so the synthetic tokens page a fixed sequence.
	sort.Slice(l.running, func(i, j int) bool { return l.running[i].ARN < l.running[j].ARN })

	l.log.Debug("materialized Express running set",
		"log_group", l.logGroupName, "started", len(started), "running", len(l.running))
	return nil
}
