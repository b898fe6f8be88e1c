package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinreports/clinreports-extractor/constants"
)

func openTestRepo(t *testing.T) ExtractJobRepository {
	t.Helper()
	repo, db, err := Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repo
}

func TestJobLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	job, err := repo.Start(ctx, "/reports/a.pdf", "deadbeef")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, job.ID)
	assert.Equal(t, constants.JobStatusQueued, job.Status)

	require.NoError(t, repo.UpdateProgress(ctx, job.ID, constants.JobStatusRunning, 55, "ocr page 3/5"))

	got, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 55, got.Progress)
	assert.Equal(t, "ocr page 3/5", got.Stage)
	assert.Equal(t, "/reports/a.pdf", got.SourcePath)
	assert.Equal(t, "deadbeef", got.ContentHash)
	assert.Nil(t, got.FinishedAt)

	require.NoError(t, repo.FinishSuccess(ctx, job.ID, Outcome{
		Status:     constants.JobStatusParsed,
		Method:     "pdf-text",
		Pages:      5,
		Confidence: 0.8,
		ReportKind: constants.Genetic,
		Rows:       3,
	}))

	got, err = repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusParsed, got.Status)
	assert.Equal(t, "pdf-text", got.Method)
	assert.Equal(t, 5, got.Pages)
	assert.Equal(t, constants.Genetic, got.ReportKind)
	assert.Equal(t, 3, got.Rows)
	assert.Equal(t, 100, got.Progress)
	require.NotNil(t, got.FinishedAt)
}

func TestJobFailure(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	job, err := repo.Start(ctx, "/reports/b.pdf", "cafe")
	require.NoError(t, err)
	require.NoError(t, repo.FinishFailure(ctx, job.ID, "no text could be extracted"))

	got, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusFailed, got.Status)
	assert.Equal(t, "no text could be extracted", got.ErrorMessage)
	require.NotNil(t, got.FinishedAt)
}

func TestGetByIDUnknownJob(t *testing.T) {
	repo := openTestRepo(t)
	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestNopRepository(t *testing.T) {
	ctx := context.Background()
	var repo ExtractJobRepository = NopRepository{}

	job, err := repo.Start(ctx, "/reports/c.pdf", "beef")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, job.ID)
	assert.NoError(t, repo.UpdateProgress(ctx, job.ID, constants.JobStatusRunning, 10, "x"))
	assert.NoError(t, repo.FinishSuccess(ctx, job.ID, Outcome{}))
	_, err = repo.GetByID(ctx, job.ID)
	assert.Error(t, err)
}
