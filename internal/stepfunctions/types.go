// Package stepfunctions wraps the AWS Step Functions API surface the reaper
// needs: listing running executions one page at a time, stopping individual
// executions, and resolving state machine details. Express workflows, whose
// executions never appear in the list API, are reconstructed from the
// lifecycle events the service writes to CloudWatch Logs.
package stepfunctions

// ExecutionSummary describes one remote execution as of the scan.
// StartedAt carries the service timestamp as a string; parsing happens at the
// age decision so a malformed value skips one item instead of killing a page.
type ExecutionSummary struct {
	ARN       string
	Name      string
	Status    string
	StartedAt string
}

// Page is one batch of running executions plus the continuation token for the
// next batch. A nil NextToken means no more pages.
type Page struct {
	Executions []ExecutionSummary
	NextToken  *string
}
