package activities

import (
	"context"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"

	"stmtagent/internal/job"
	"stmtagent/internal/mirror"
	"stmtagent/internal/runlog"
)

type MirrorPullActivityInput struct {
	Job   *job.Job `json:"job"`
	RunID string   `json:"run_id"`
}

type MirrorPullActivityOutput struct {
	Report *mirror.Report `json:"report"`
}

// MirrorPullActivity performs the one-way, newer-only SFTP pull and writes
// the run's transfer log. Every invocation appends a start line, one line
// per file, the success or failure marker, and an end line to the job's
// log file.
func (a *Activities) MirrorPullActivity(ctx context.Context, input MirrorPullActivityInput) (*MirrorPullActivityOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("MirrorPullActivity started", "jobId", input.Job.ID)

	cfg, err := job.LoadAs[*job.MirrorConfig](*input.Job)
	if err != nil {
		return nil, fmt.Errorf("failed to load mirror config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mirror config: %w", err)
	}

	log, err := runlog.Open(cfg.LogFile, input.RunID)
	if err != nil {
		return nil, err
	}
	defer log.Close()

	if err := log.Start(time.Now()); err != nil {
		return nil, err
	}

	report, pullErr := a.pull(ctx, cfg)
	if pullErr != nil {
		logger.Error("Transfer failed", "jobId", input.Job.ID, "error", pullErr)
		log.Error(pullErr)
		log.End(time.Now())
		return nil, pullErr
	}

	for _, tr := range report.Transferred {
		if err := log.Transfer(tr.Name, tr.Size); err != nil {
			return nil, err
		}
	}
	if err := log.Okay(); err != nil {
		return nil, err
	}
	if err := log.End(time.Now()); err != nil {
		return nil, err
	}

	logger.Info("MirrorPullActivity completed",
		"jobId", input.Job.ID,
		"transferred", len(report.Transferred),
		"skipped", report.Skipped)

	return &MirrorPullActivityOutput{Report: report}, nil
}

func (a *Activities) pull(ctx context.Context, cfg *job.MirrorConfig) (*mirror.Report, error) {
	client, err := mirror.Dial(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	return mirror.Pull(ctx, client.Source(), cfg.RemoteDir, cfg.LocalDir)
}
