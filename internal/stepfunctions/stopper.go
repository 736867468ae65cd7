package stepfunctions

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
)

// StopErrorCode is the error code attached to every stop request so stopped
// executions are attributable to this tool in execution history.
const StopErrorCode = "CancelledByScript"

// StopExecutionAPI is the slice of the Step Functions client the stopper
// needs. *sfn.Client satisfies it.
type StopExecutionAPI interface {
	StopExecution(ctx context.Context, params *sfn.StopExecutionInput, optFns ...func(*sfn.Options)) (*sfn.StopExecutionOutput, error)
}

// ExecutionStopper issues stop requests for individual executions. It only
// checks the synchronous acknowledgment; the execution's transition to a
// terminal status happens on the service's side afterwards.
type ExecutionStopper struct {
	api StopExecutionAPI
}

func NewExecutionStopper(api StopExecutionAPI) *ExecutionStopper {
	return &ExecutionStopper{api: api}
}

// Stop requests termination of one execution. The cause should name the age
// threshold that targeted it so the execution history explains itself.
// Stopping an already-stopped execution is a benign no-op at the API.
func (s *ExecutionStopper) Stop(ctx context.Context, executionARN, cause string) error {
	_, err := s.api.StopExecution(ctx, &sfn.StopExecutionInput{
		ExecutionArn: aws.String(executionARN),
		Error:        aws.String(StopErrorCode),
		Cause:        aws.String(cause),
	})
	if err != nil {
		return &APICallError{Op: "stop execution " + executionARN, Err: err}
	}
	return nil
}
