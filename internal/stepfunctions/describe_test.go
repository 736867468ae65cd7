package stepfunctions

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-sdk-go-v2/service/sfn/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDescribeStateMachineStandard(t *testing.T) {
	api := new(MockSFNAPI)
	api.On("DescribeStateMachine", mock.Anything, mock.MatchedBy(func(in *sfn.DescribeStateMachineInput) bool {
		return aws.ToString(in.StateMachineArn) == testStateMachineARN
	})).Return(&sfn.DescribeStateMachineOutput{
		Name:            aws.String("orders"),
		StateMachineArn: aws.String(testStateMachineARN),
		Type:            types.StateMachineTypeStandard,
	}, nil)

	details, err := DescribeStateMachine(context.Background(), api, testStateMachineARN)

	require.NoError(t, err)
	assert.Equal(t, "orders", details.Name)
	assert.False(t, details.IsExpress())
	assert.Empty(t, details.LogGroupName)
}

func TestDescribeStateMachineExpressLogGroup(t *testing.T) {
	api := new(MockSFNAPI)
	api.On("DescribeStateMachine", mock.Anything, mock.Anything).Return(&sfn.DescribeStateMachineOutput{
		Name:            aws.String("events"),
		StateMachineArn: aws.String(testStateMachineARN),
		Type:            types.StateMachineTypeExpress,
		LoggingConfiguration: &types.LoggingConfiguration{
			Destinations: []types.LogDestination{
				{
					CloudWatchLogsLogGroup: &types.CloudWatchLogsLogGroup{
						LogGroupArn: aws.String("arn:aws:logs:us-west-2:123456789012:log-group:/aws/vendedlogs/states/events-Logs:*"),
					},
				},
			},
		},
	}, nil)

	details, err := DescribeStateMachine(context.Background(), api, testStateMachineARN)

	require.NoError(t, err)
	assert.True(t, details.IsExpress())
	assert.Equal(t, "/aws/vendedlogs/states/events-Logs", details.LogGroupName)
}

func TestDescribeStateMachineExpressWithoutLogging(t *testing.T) {
	api := new(MockSFNAPI)
	api.On("DescribeStateMachine", mock.Anything, mock.Anything).Return(&sfn.DescribeStateMachineOutput{
		Name:            aws.String("events"),
		StateMachineArn: aws.String(testStateMachineARN),
		Type:            types.StateMachineTypeExpress,
	}, nil)

	details, err := DescribeStateMachine(context.Background(), api, testStateMachineARN)

	require.NoError(t, err)
	assert.True(t, details.IsExpress())
	assert.Empty(t, details.LogGroupName)
}

func TestDescribeStateMachineError(t *testing.T) {
	api := new(MockSFNAPI)
	api.On("DescribeStateMachine", mock.Anything, mock.Anything).Return(nil, errors.New("StateMachineDoesNotExist"))

	_, err := DescribeStateMachine(context.Background(), api, "arn:bogus")

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Op, "arn:bogus")
}
