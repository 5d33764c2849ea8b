package workflows

// GeneralWorkflowInput defines the standardized input for the single-job
// workflows. This is sent by Temporal when triggering a workflow.
type GeneralWorkflowInput struct {
	JobId string `json:"job_id"`
}

// PipelineWorkflowInput names the two jobs the pipeline chains together.
type PipelineWorkflowInput struct {
	MirrorJobId string `json:"mirror_job_id"`
	ImportJobId string `json:"import_job_id"`
}
