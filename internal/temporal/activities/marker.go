package activities

import (
	"context"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"

	"stmtagent/internal/job"
	"stmtagent/internal/marker"
)

type WriteSyncMarkerActivityInput struct {
	LocalDir    string `json:"local_dir"`
	RunID       string `json:"run_id"`
	Transferred int    `json:"transferred"`
	Skipped     int    `json:"skipped"`
}

type WriteSyncMarkerActivityOutput struct{}

// WriteSyncMarkerActivity records that a mirror run completed, so the
// import side no longer has to trust schedule offsets alone.
func (a *Activities) WriteSyncMarkerActivity(ctx context.Context, input WriteSyncMarkerActivityInput) (*WriteSyncMarkerActivityOutput, error) {
	logger := activity.GetLogger(ctx)

	err := marker.Write(input.LocalDir, marker.Marker{
		RunID:       input.RunID,
		CompletedAt: time.Now(),
		Transferred: input.Transferred,
		Skipped:     input.Skipped,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write sync marker: %w", err)
	}

	logger.Info("Sync marker written", "dir", input.LocalDir, "runId", input.RunID)
	return &WriteSyncMarkerActivityOutput{}, nil
}

type CheckSyncMarkerActivityInput struct {
	Job *job.Job `json:"job"`
}

type CheckSyncMarkerActivityOutput struct {
	LastRunID   string    `json:"last_run_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// CheckSyncMarkerActivity verifies the mirror job left a sufficiently
// recent completion marker before an import is allowed to start.
func (a *Activities) CheckSyncMarkerActivity(ctx context.Context, input CheckSyncMarkerActivityInput) (*CheckSyncMarkerActivityOutput, error) {
	logger := activity.GetLogger(ctx)

	cfg, err := job.LoadAs[*job.ImportConfig](*input.Job)
	if err != nil {
		return nil, fmt.Errorf("failed to load import config: %w", err)
	}

	m, err := marker.CheckFresh(cfg.ArchiveDir, time.Duration(cfg.MaxSyncAge), time.Now())
	if err != nil {
		return nil, err
	}

	logger.Info("Sync marker verified", "dir", cfg.ArchiveDir, "lastRunId", m.RunID)
	return &CheckSyncMarkerActivityOutput{LastRunID: m.RunID, CompletedAt: m.CompletedAt}, nil
}
