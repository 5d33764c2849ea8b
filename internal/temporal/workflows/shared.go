package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// withJobActivityOptions applies the standard options for this pipeline.
// Failed runs are not retried; a failed mirror or import simply waits for
// the next scheduled run.
func withJobActivityOptions(ctx workflow.Context) workflow.Context {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	return workflow.WithActivityOptions(ctx, ao)
}
