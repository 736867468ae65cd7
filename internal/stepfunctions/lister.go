package stepfunctions

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-sdk-go-v2/service/sfn/types"

	"stepfunction-reaper/internal/timeutil"
)

// ListExecutionsAPI is the slice of the Step Functions client the lister
// needs. *sfn.Client satisfies it.
type ListExecutionsAPI interface {
	ListExecutions(ctx context.Context, params *sfn.ListExecutionsInput, optFns ...func(*sfn.Options)) (*sfn.ListExecutionsOutput, error)
}

// ExecutionLister fetches one page of running executions per call for
// STANDARD state machines. Pagination is the caller's: the lister never loops,
// so the caller controls the delay between pages.
type ExecutionLister struct {
	api ListExecutionsAPI
}

func NewExecutionLister(api ListExecutionsAPI) *ExecutionLister {
	return &ExecutionLister{api: api}
}

// ListRunning returns one page of RUNNING executions for the state machine.
// A nil nextToken requests the first page. The server-side status filter is
// set on every call, so the caller never sees a non-running execution. Any
// API failure comes back as *APICallError and ends the scan.
func (l *ExecutionLister) ListRunning(ctx context.Context, stateMachineARN string, pageSize int32, nextToken *string) (*Page, error) {
	out, err := l.api.ListExecutions(ctx, &sfn.ListExecutionsInput{
		StateMachineArn: aws.String(stateMachineARN),
		StatusFilter:    types.ExecutionStatusRunning,
		MaxResults:      pageSize,
		NextToken:       nextToken,
	})
	if err != nil {
		return nil, &APICallError{Op: "list executions", Err: err}
	}

	page := &Page{NextToken: out.NextToken}
	for _, item := range out.Executions {
		startedAt := ""
		if item.StartDate != nil {
			startedAt = timeutil.FormatServiceTimestamp(*item.StartDate)
		}
		page.Executions = append(page.Executions, ExecutionSummary{
			ARN:       aws.ToString(item.ExecutionArn),
			Name:      aws.ToString(item.Name),
			Status:    string(item.Status),
			StartedAt: startedAt,
		})
	}

	return page, nil
}
