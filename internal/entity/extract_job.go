package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinreports/clinreports-extractor/constants"
)

// ExtractJob tracks one document through the pipeline: text extraction
// method, progress while OCR runs, and the terminal outcome.
type ExtractJob struct {
	ID           uuid.UUID
	SourcePath   string
	ContentHash  string // hex-encoded sha256 of the source file
	Status       constants.JobStatus
	Method       string // "pdf-text" | "pdf-ocr"
	Pages        int
	Confidence   float32
	ReportKind   constants.ReportKind
	Rows         int
	Progress     int // 0..100
	Stage        string
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   *time.Time
}
