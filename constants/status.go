package constants

// JobStatus is the canonical status for a processing job.
type JobStatus string

// Stable values (store these exact strings).
const (
	JobStatusQueued     JobStatus = "QUEUED"     // accepted, waiting for a worker
	JobStatusProcessing JobStatus = "PROCESSING" // pipeline in progress
	JobStatusCompleted  JobStatus = "COMPLETED"  // workbook produced and stored
	JobStatusFailed     JobStatus = "FAILED"     // terminal failure
)
