package stepfunctions

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-sdk-go-v2/service/sfn/types"
)

// DescribeStateMachineAPI is the slice of the Step Functions client the
// preflight describe needs. *sfn.Client satisfies it.
type DescribeStateMachineAPI interface {
	DescribeStateMachine(ctx context.Context, params *sfn.DescribeStateMachineInput, optFns ...func(*sfn.Options)) (*sfn.DescribeStateMachineOutput, error)
}

// StateMachineDetails is what a scan needs to know about its target before
// the first page: the human name for reporting, the type that picks the
// lister, and for Express machines the vended log group executions are
// reconstructed from.
type StateMachineDetails struct {
	Name         string
	ARN          string
	Type         types.StateMachineType
	LogGroupName string
}

// IsExpress reports whether executions must be read from CloudWatch Logs
// instead of the list API.
func (d StateMachineDetails) IsExpress() bool {
	return d.Type == types.StateMachineTypeExpress
}

// DescribeStateMachine resolves the scan target. A bad ARN or missing
// permission surfaces here, before any execution page is requested. For
// Express machines without a CloudWatch Logs destination the details are
// still returned with an empty LogGroupName; the caller decides whether
// that is fatal.
func DescribeStateMachine(ctx context.Context, api DescribeStateMachineAPI, arn string) (StateMachineDetails, error) {
	out, err := api.DescribeStateMachine(ctx, &sfn.DescribeStateMachineInput{
		StateMachineArn: aws.String(arn),
	})
	if err != nil {
		return StateMachineDetails{}, &APICallError{Op: "describe state machine " + arn, Err: err}
	}

	details := StateMachineDetails{
		Name: aws.ToString(out.Name),
		ARN:  aws.ToString(out.StateMachineArn),
		Type: out.Type,
	}
	if details.IsExpress() && out.LoggingConfiguration != nil {
		details.LogGroupName = logGroupNameFromConfig(out.LoggingConfiguration)
	}

	return details, nil
}

// logGroupNameFromConfig extracts the log group name from the first
// CloudWatch Logs destination's ARN, which has the shape
// arn:aws:logs:region:account:log-group:NAME:*.
func logGroupNameFromConfig(cfg *types.LoggingConfiguration) string {
	for _, dest := range cfg.Destinations {
		if dest.CloudWatchLogsLogGroup == nil || dest.CloudWatchLogsLogGroup.LogGroupArn == nil {
			continue
		}
		parts := strings.Split(*dest.CloudWatchLogsLogGroup.LogGroupArn, ":log-group:")
		if len(parts) < 2 {
			continue
		}
		return strings.Split(parts[1], ":")[0]
	}
	return ""
}
