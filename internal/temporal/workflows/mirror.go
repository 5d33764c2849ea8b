package workflows

import (
	"go.temporal.io/sdk/workflow"

	"stmtagent/internal"
	"stmtagent/internal/job"
	"stmtagent/internal/temporal/activities"
)

// MirrorSyncOutput defines the output for the mirror sync workflow
type MirrorSyncOutput struct {
	Transferred int `json:"transferred"`
	Skipped     int `json:"skipped"`
}

// MirrorSyncWorkflow pulls new statement files from the bank's SFTP drop
// into the local archive directory, records the sync marker and optionally
// pushes a zip bundle of the directory to the archive bucket.
func MirrorSyncWorkflow(ctx workflow.Context, input GeneralWorkflowInput) (*MirrorSyncOutput, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("MirrorSyncWorkflow started", "jobId", input.JobId)

	ctx = withJobActivityOptions(ctx)
	runID := workflow.GetInfo(ctx).WorkflowExecution.RunID

	// 1. Get and validate job details
	var getJobOutput activities.GetJobActivityOutput
	err := workflow.ExecuteActivity(ctx, internal.ActivityNameGetJob,
		activities.GetJobActivityInput{JobId: input.JobId}).Get(ctx, &getJobOutput)
	if err != nil {
		logger.Error("Failed to get job details", "error", err)
		return nil, err
	}

	mirrorConfig, err := job.LoadAs[*job.MirrorConfig](*getJobOutput.Job)
	if err != nil {
		logger.Error("Failed to cast job config to MirrorConfig", "error", err)
		return nil, err
	}

	// 2. Pull remote files
	var pullOutput activities.MirrorPullActivityOutput
	err = workflow.ExecuteActivity(ctx, internal.ActivityNameMirrorPull,
		activities.MirrorPullActivityInput{Job: getJobOutput.Job, RunID: runID}).Get(ctx, &pullOutput)
	if err != nil {
		logger.Error("Transfer failed", "error", err)
		return nil, err
	}

	result := &MirrorSyncOutput{
		Transferred: len(pullOutput.Report.Transferred),
		Skipped:     pullOutput.Report.Skipped,
	}

	// 3. Record sync completion for the import job
	err = workflow.ExecuteActivity(ctx, internal.ActivityNameWriteSyncMarker,
		activities.WriteSyncMarkerActivityInput{
			LocalDir:    mirrorConfig.LocalDir,
			RunID:       runID,
			Transferred: result.Transferred,
			Skipped:     result.Skipped,
		}).Get(ctx, nil)
	if err != nil {
		logger.Error("Failed to write sync marker", "error", err)
		return nil, err
	}

	if !mirrorConfig.Archive.Enabled {
		logger.Info("MirrorSyncWorkflow completed", "jobId", input.JobId, "transferred", result.Transferred)
		return result, nil
	}

	// 4. Bundle the directory
	var zipOutput activities.ArchiveZipActivityOutput
	err = workflow.ExecuteActivity(ctx, internal.ActivityNameArchiveZip,
		activities.ArchiveZipActivityInput{SourceDir: mirrorConfig.LocalDir, RunID: runID}).Get(ctx, &zipOutput)
	if err != nil {
		logger.Error("Failed to zip statement directory", "error", err)
		return nil, err
	}

	defer func() {
		// Use a disconnected context so the temp bundle is removed even if
		// the workflow is cancelled.
		disconnectedCtx, _ := workflow.NewDisconnectedContext(ctx)
		disconnectedCtx = withJobActivityOptions(disconnectedCtx)
		err := workflow.ExecuteActivity(disconnectedCtx, internal.ActivityNameFileCleanup,
			activities.FileCleanupActivityInput{FilePath: zipOutput.FilePath}).Get(disconnectedCtx, nil)
		if err != nil {
			logger.Error("Failed to clean up archive bundle", "error", err)
		}
	}()

	// 5. Upload the bundle
	err = workflow.ExecuteActivity(ctx, internal.ActivityNameArchiveUploadS3,
		activities.ArchiveUploadS3ActivityInput{
			FilePath: zipOutput.FilePath,
			Name:     zipOutput.Name,
			Archive:  &mirrorConfig.Archive,
		}).Get(ctx, nil)
	if err != nil {
		logger.Error("Failed to upload archive bundle", "error", err)
		return nil, err
	}

	logger.Info("MirrorSyncWorkflow completed", "jobId", input.JobId, "transferred", result.Transferred)
	return result, nil
}
