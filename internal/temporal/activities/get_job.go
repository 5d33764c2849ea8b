package activities

import (
	"context"

	"go.temporal.io/sdk/activity"

	"stmtagent/internal/job"
)

type GetJobActivityInput struct {
	JobId string `json:"job_id"`
}

type GetJobActivityOutput struct {
	Job *job.Job
}

// GetJobActivity materializes and validates the named job from the agent
// config. Validation reports every missing required field at once, so a
// misconfigured job fails here, before any network or filesystem work.
func (a *Activities) GetJobActivity(ctx context.Context, input GetJobActivityInput) (*GetJobActivityOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Debug("GetJobActivity called", "jobId", input.JobId)

	j, err := a.Config.FindJob(input.JobId)
	if err != nil {
		return nil, err
	}

	logger.Info("Job found", "jobId", input.JobId, "provider", j.Provider)
	return &GetJobActivityOutput{Job: j}, nil
}
