// Package repository persists extraction job state in an embedded sqlite
// database so batch runs can be resumed and audited.
package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/clinreports/clinreports-extractor/constants"
	"github.com/clinreports/clinreports-extractor/internal/common"
	"github.com/clinreports/clinreports-extractor/internal/entity"
)

type ExtractJobRepository interface {
	Start(ctx context.Context, sourcePath, contentHash string) (*entity.ExtractJob, error)
	UpdateProgress(ctx context.Context, jobID uuid.UUID, status constants.JobStatus, progress int, stage string) error
	FinishSuccess(ctx context.Context, jobID uuid.UUID, out Outcome) error
	FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error
	GetByID(ctx context.Context, jobID uuid.UUID) (*entity.ExtractJob, error)
}

// Outcome carries the terminal state of a successful extraction.
type Outcome struct {
	Status     constants.JobStatus
	Method     string
	Pages      int
	Confidence float32
	ReportKind constants.ReportKind
	Rows       int
}

const schema = `
CREATE TABLE IF NOT EXISTS extract_jobs (
	id            TEXT PRIMARY KEY,
	source_path   TEXT NOT NULL,
	content_hash  TEXT NOT NULL,
	status        TEXT NOT NULL,
	method        TEXT NOT NULL DEFAULT '',
	pages         INTEGER NOT NULL DEFAULT 0,
	confidence    REAL NOT NULL DEFAULT 0,
	report_kind   TEXT NOT NULL DEFAULT '',
	rows_emitted  INTEGER NOT NULL DEFAULT 0,
	progress      INTEGER NOT NULL DEFAULT 0,
	stage         TEXT NOT NULL DEFAULT '',
	error_message TEXT NOT NULL DEFAULT '',
	started_at    TIMESTAMP NOT NULL,
	finished_at   TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_extract_jobs_hash ON extract_jobs(content_hash);
`

type jobRepo struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (creating if needed) the job store at path and applies the
// schema. Use ":memory:" for an ephemeral store.
func Open(path string, log *slog.Logger) (ExtractJobRepository, *sql.DB, error) {
	if log == nil {
		log = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, common.WrapError(err, "opening job store")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, nil, common.WrapError(err, "migrating job store")
	}
	return &jobRepo{db: db, log: log}, db, nil
}

func (r *jobRepo) Start(ctx context.Context, sourcePath, contentHash string) (*entity.ExtractJob, error) {
	job := &entity.ExtractJob{
		ID:          uuid.New(),
		SourcePath:  sourcePath,
		ContentHash: contentHash,
		Status:      constants.JobStatusQueued,
		StartedAt:   time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO extract_jobs (id, source_path, content_hash, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		job.ID.String(), job.SourcePath, job.ContentHash, string(job.Status), job.StartedAt)
	if err != nil {
		r.log.Error("extract_job start failed", "source_path", sourcePath, "err", err)
		return nil, err
	}
	r.log.Info("extract_job started", "job_id", job.ID, "source_path", sourcePath)
	return job, nil
}

func (r *jobRepo) UpdateProgress(ctx context.Context, jobID uuid.UUID, status constants.JobStatus, progress int, stage string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE extract_jobs SET status = ?, progress = ?, stage = ? WHERE id = ?`,
		string(status), progress, stage, jobID.String())
	if err != nil {
		r.log.Error("extract_job progress update failed", "job_id", jobID, "err", err)
	}
	return err
}

func (r *jobRepo) FinishSuccess(ctx context.Context, jobID uuid.UUID, out Outcome) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE extract_jobs
		 SET status = ?, method = ?, pages = ?, confidence = ?, report_kind = ?,
		     rows_emitted = ?, progress = 100, finished_at = ?
		 WHERE id = ?`,
		string(out.Status), out.Method, out.Pages, out.Confidence,
		string(out.ReportKind), out.Rows, time.Now().UTC(), jobID.String())
	if err != nil {
		r.log.Error("extract_job finish(OK) failed", "job_id", jobID, "err", err)
		return err
	}
	r.log.Info("extract_job finished", "job_id", jobID, "status", out.Status, "method", out.Method, "rows", out.Rows)
	return nil
}

func (r *jobRepo) FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE extract_jobs SET status = ?, error_message = ?, finished_at = ? WHERE id = ?`,
		string(constants.JobStatusFailed), message, time.Now().UTC(), jobID.String())
	if err != nil {
		r.log.Error("extract_job finish(FAILED) failed", "job_id", jobID, "err", err)
		return err
	}
	r.log.Warn("extract_job finished (FAILED)", "job_id", jobID, "error", message)
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, jobID uuid.UUID) (*entity.ExtractJob, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, source_path, content_hash, status, method, pages, confidence,
		        report_kind, rows_emitted, progress, stage, error_message,
		        started_at, finished_at
		 FROM extract_jobs WHERE id = ?`, jobID.String())

	var (
		job      entity.ExtractJob
		id       string
		status   string
		kind     string
		finished sql.NullTime
	)
	err := row.Scan(&id, &job.SourcePath, &job.ContentHash, &status, &job.Method,
		&job.Pages, &job.Confidence, &kind, &job.Rows, &job.Progress, &job.Stage,
		&job.ErrorMessage, &job.StartedAt, &finished)
	if err == sql.ErrNoRows {
		return nil, common.NewAppError("JOB_NOT_FOUND", "job not found", common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	job.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	job.Status = constants.JobStatus(status)
	job.ReportKind = constants.ReportKind(kind)
	if finished.Valid {
		t := finished.Time
		job.FinishedAt = &t
	}
	return &job, nil
}

// NopRepository discards all job state; used when no store path is
// configured.
type NopRepository struct{}

func (NopRepository) Start(_ context.Context, sourcePath, contentHash string) (*entity.ExtractJob, error) {
	return &entity.ExtractJob{
		ID:          uuid.New(),
		SourcePath:  sourcePath,
		ContentHash: contentHash,
		Status:      constants.JobStatusQueued,
		StartedAt:   time.Now().UTC(),
	}, nil
}

func (NopRepository) UpdateProgress(context.Context, uuid.UUID, constants.JobStatus, int, string) error {
	return nil
}
func (NopRepository) FinishSuccess(context.Context, uuid.UUID, Outcome) error { return nil }
func (NopRepository) FinishFailure(context.Context, uuid.UUID, string) error  { return nil }
func (NopRepository) GetByID(context.Context, uuid.UUID) (*entity.ExtractJob, error) {
	return nil, common.NewAppError("JOB_STORE_DISABLED", "job store disabled", common.ErrNotFound)
}
