package constants

// JobStatus is the canonical status for rows in extract_jobs.
type JobStatus string

// Stable values (stored as these exact strings).
const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusTextOK   JobStatus = "TEXT_OK"  // text layer / OCR completed
	JobStatusParsed   JobStatus = "PARSED"   // fields and variants extracted
	JobStatusRedacted JobStatus = "REDACTED" // redaction detector short-circuit
	JobStatusFailed   JobStatus = "FAILED"   // terminal failure (no text)
)
