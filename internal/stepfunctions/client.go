package stepfunctions

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
)

// Clients holds the AWS service clients the reaper talks to.
type Clients struct {
	SFN  *sfn.Client
	Logs *cloudwatchlogs.Client
}

// NewClients loads the default AWS configuration and builds the service
// clients. An empty region defers to the SDK's normal resolution (env,
// profile, IMDS). SDK-level retries are disabled: pacing against throttling
// is the operator's job via the scan's batch size and inter-page delay, and
// silent retries would hide the signal they need to tune those.
func NewClients(ctx context.Context, region string) (*Clients, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Clients{
		SFN:  sfn.NewFromConfig(cfg),
		Logs: cloudwatchlogs.NewFromConfig(cfg),
	}, nil
}
