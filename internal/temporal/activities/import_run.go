package activities

import (
	"context"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"

	"stmtagent/internal/importer"
	"stmtagent/internal/job"
	"stmtagent/internal/runlog"
)

type ImportRunActivityInput struct {
	Job   *job.Job `json:"job"`
	RunID string   `json:"run_id"`
}

type ImportRunActivityOutput struct {
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration"`
}

// ImportRunActivity invokes the external statement importer. The importer's
// stdout and stderr land in the job log as separately labelled blocks; its
// exit code is passed through uninterpreted beyond zero/non-zero.
func (a *Activities) ImportRunActivity(ctx context.Context, input ImportRunActivityInput) (*ImportRunActivityOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("ImportRunActivity started", "jobId", input.Job.ID)

	cfg, err := job.LoadAs[*job.ImportConfig](*input.Job)
	if err != nil {
		return nil, fmt.Errorf("failed to load import config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid import config: %w", err)
	}

	// Interpreter and script presence are checked before anything is
	// spawned or logged.
	if err := importer.Preflight(cfg); err != nil {
		return nil, err
	}

	log, err := runlog.Open(cfg.LogFile, input.RunID)
	if err != nil {
		return nil, err
	}
	defer log.Close()

	if err := log.Start(time.Now()); err != nil {
		return nil, err
	}

	if cfg.TestConnection {
		probe, err := importer.TestConnection(ctx, cfg)
		if err != nil {
			if probe != nil {
				log.Section("test-connection stdout", probe.Stdout)
				log.Section("test-connection stderr", probe.Stderr)
			}
			log.Error(err)
			log.End(time.Now())
			return nil, err
		}
		logger.Info("Importer connection test passed", "jobId", input.Job.ID)
	}

	res, err := importer.Run(ctx, cfg)
	if err != nil {
		log.Error(err)
		log.End(time.Now())
		return nil, err
	}

	log.Section("stdout", res.Stdout)
	log.Section("stderr", res.Stderr)

	if res.ExitCode != 0 {
		importErr := fmt.Errorf("importer exited %d", res.ExitCode)
		log.Error(importErr)
		log.End(time.Now())
		return nil, importErr
	}

	if err := log.Okay(); err != nil {
		return nil, err
	}
	if err := log.End(time.Now()); err != nil {
		return nil, err
	}

	logger.Info("ImportRunActivity completed", "jobId", input.Job.ID, "duration", res.Duration)
	return &ImportRunActivityOutput{ExitCode: res.ExitCode, Duration: res.Duration}, nil
}
