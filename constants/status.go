package constants

// JobStatus is the canonical status for an archived parse job.
type JobStatus string

// Stable values (these exact strings appear in logs and batch results).
const (
	JobStatusQueued  JobStatus = "QUEUED"  // waiting on a batch worker
	JobStatusRunning JobStatus = "RUNNING" // in progress
	JobStatusOK      JobStatus = "OK"      // record extracted and written
	JobStatusFailed  JobStatus = "FAILED"  // terminal failure for this document
)
