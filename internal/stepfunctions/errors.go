package stepfunctions

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// APICallError wraps a failed Step Functions or CloudWatch Logs call. The
// underlying SDK error is preserved so the operator sees the raw service
// code, message and request id.
type APICallError struct {
	Op  string
	Err error
}

func (e *APICallError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *APICallError) Unwrap() error { return e.Err }

// IsThrottle reports whether err is the service telling us to slow down.
// The reaper never retries these itself; callers use this to print the
// tune-and-rerun hint.
func IsThrottle(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "ThrottlingException", "TooManyRequestsException", "RequestThrottled", "SlowDown":
		return true
	}
	return false
}
