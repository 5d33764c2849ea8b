package workflows

import (
	"go.temporal.io/sdk/workflow"

	"stmtagent/internal"
	"stmtagent/internal/job"
	"stmtagent/internal/temporal/activities"
)

// StatementImportOutput defines the output for the statement import workflow
type StatementImportOutput struct {
	ExitCode int `json:"exit_code"`
}

// StatementImportWorkflow invokes the external importer against the local
// statement directory. When the job requires a fresh sync, the mirror job's
// completion marker is checked first.
func StatementImportWorkflow(ctx workflow.Context, input GeneralWorkflowInput) (*StatementImportOutput, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("StatementImportWorkflow started", "jobId", input.JobId)

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

	importConfig, err := job.LoadAs[*job.ImportConfig](*getJobOutput.Job)
	if err != nil {
		logger.Error("Failed to cast job config to ImportConfig", "error", err)
		return nil, err
	}

	// 2. Verify the mirror job handed off
	if importConfig.RequireFreshSync {
		var markerOutput activities.CheckSyncMarkerActivityOutput
		err = workflow.ExecuteActivity(ctx, internal.ActivityNameCheckSyncMarker,
			activities.CheckSyncMarkerActivityInput{Job: getJobOutput.Job}).Get(ctx, &markerOutput)
		if err != nil {
			logger.Error("Sync marker check failed", "error", err)
			return nil, err
		}
		logger.Info("Sync marker verified", "lastMirrorRun", markerOutput.LastRunID)
	}

	// 3. Run the importer
	var importOutput activities.ImportRunActivityOutput
	err = workflow.ExecuteActivity(ctx, internal.ActivityNameImportRun,
		activities.ImportRunActivityInput{Job: getJobOutput.Job, RunID: runID}).Get(ctx, &importOutput)
	if err != nil {
		logger.Error("Import failed", "error", err)
		return nil, err
	}

	logger.Info("StatementImportWorkflow completed", "jobId", input.JobId)
	return &StatementImportOutput{ExitCode: importOutput.ExitCode}, nil
}
