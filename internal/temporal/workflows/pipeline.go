package workflows

import (
	"go.temporal.io/sdk/workflow"
)

// PipelineOutput defines the output for the full pipeline workflow
type PipelineOutput struct {
	Mirror *MirrorSyncOutput      `json:"mirror"`
	Import *StatementImportOutput `json:"import"`
}

// StatementPipelineWorkflow runs the mirror sync and the statement import
// as one sequenced unit. The original setup relied on cron offsets to order
// the two jobs; here the import only starts after the sync succeeded.
func StatementPipelineWorkflow(ctx workflow.Context, input PipelineWorkflowInput) (*PipelineOutput, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("StatementPipelineWorkflow started",
		"mirrorJobId", input.MirrorJobId, "importJobId", input.ImportJobId)

	mirrorResult, err := MirrorSyncWorkflow(ctx, GeneralWorkflowInput{JobId: input.MirrorJobId})
	if err != nil {
		logger.Error("Mirror stage failed, import will not run", "error", err)
		return nil, err
	}

	importResult, err := StatementImportWorkflow(ctx, GeneralWorkflowInput{JobId: input.ImportJobId})
	if err != nil {
		logger.Error("Import stage failed", "error", err)
		return nil, err
	}

	logger.Info("StatementPipelineWorkflow completed")
	return &PipelineOutput{Mirror: mirrorResult, Import: importResult}, nil
}
