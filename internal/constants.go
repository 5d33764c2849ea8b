package internal

const (
	WorkflowNameMirrorSync      = "mirror-sync"
	WorkflowNameStatementImport = "statement-import"
	WorkflowNamePipeline        = "statement-pipeline"

	ActivityNameGetJob          = "GetJobActivity"
	ActivityNameMirrorPull      = "MirrorPullActivity"
	ActivityNameWriteSyncMarker = "WriteSyncMarkerActivity"
	ActivityNameCheckSyncMarker = "CheckSyncMarkerActivity"
	ActivityNameImportRun       = "ImportRunActivity"
	ActivityNameArchiveZip      = "ArchiveZipActivity"
	ActivityNameArchiveUploadS3 = "ArchiveUploadS3Activity"
	ActivityNameFileCleanup     = "FileCleanupActivity"
)
