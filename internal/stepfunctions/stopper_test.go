package stepfunctions

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStopSendsReasonCodeAndCause(t *testing.T) {
	api := new(MockSFNAPI)
	api.On("StopExecution", mock.Anything, mock.MatchedBy(func(in *sfn.StopExecutionInput) bool {
		return aws.ToString(in.ExecutionArn) == "arn:exec:1" &&
			aws.ToString(in.Error) == "CancelledByScript" &&
			aws.ToString(in.Cause) == "ran past the 5m0s threshold"
	})).Return(&sfn.StopExecutionOutput{}, nil)

	stopper := NewExecutionStopper(api)
	err := stopper.Stop(context.Background(), "arn:exec:1", "ran past the 5m0s threshold")

	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestStopWrapsFailure(t *testing.T) {
	api := new(MockSFNAPI)
	cause := errors.New("ExecutionDoesNotExist")
	api.On("StopExecution", mock.Anything, mock.Anything).Return(nil, cause)

	stopper := NewExecutionStopper(api)
	err := stopper.Stop(context.Background(), "arn:exec:gone", "too old")

	require.Error(t, err)
	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Op, "arn:exec:gone")
	assert.ErrorIs(t, err, cause)
}

func TestIsThrottle(t *testing.T) {
	throttled := &smithy.GenericAPIError{Code: "ThrottlingException", Message: "rate exceeded"}
	assert.True(t, IsThrottle(throttled))
	assert.True(t, IsThrottle(&APICallError{Op: "list executions", Err: throttled}))

	assert.False(t, IsThrottle(&smithy.GenericAPIError{Code: "AccessDeniedException"}))
	assert.False(t, IsThrottle(errors.New("connection refused")))
	assert.False(t, IsThrottle(nil))
}
