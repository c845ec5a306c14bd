package jobstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/constants"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/common"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "jobs.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleManifest(jobID string) Manifest {
	return Manifest{
		JobID:    jobID,
		Source:   "tender.pdf",
		Workbook: "results/" + jobID + "/combined.xlsx",
		Kinds: map[string]KindResult{
			string(constants.KindBOQ):     {Succeeded: true, File: "boq.xlsx"},
			string(constants.KindPayment): {Succeeded: false, Error: "extraction failed"},
		},
		DroppedRows: 2,
	}
}

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	created, err := s.Create(ctx, "job-1", "tender.pdf")
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusQueued, created.Status)

	require.NoError(t, s.MarkProcessing(ctx, "job-1"))
	got, err := s.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusProcessing, got.Status)
	assert.Nil(t, got.Manifest)

	m := sampleManifest("job-1")
	require.NoError(t, s.Complete(ctx, "job-1", m.Workbook, m))

	got, err = s.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusCompleted, got.Status)
	assert.Equal(t, m.Workbook, got.ResultRef)
	require.NotNil(t, got.Manifest)
	assert.Equal(t, m.Kinds, got.Manifest.Kinds)
	assert.Equal(t, []string{string(constants.KindPayment)}, got.Manifest.Failed())
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestStore_Fail(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	_, err := s.Create(ctx, "job-2", "tender.pdf")
	require.NoError(t, err)
	require.NoError(t, s.Fail(ctx, "job-2", "document conversion failed"))

	got, err := s.Get(ctx, "job-2")
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusFailed, got.Status)
	assert.Equal(t, "document conversion failed", got.Error)
}

func TestStore_GetUnknownJob(t *testing.T) {
	s := openStore(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestStore_UpdateUnknownJob(t *testing.T) {
	s := openStore(t)
	err := s.MarkProcessing(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestStore_DuplicateIDRejected(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	_, err := s.Create(ctx, "job-3", "a.pdf")
	require.NoError(t, err)
	_, err = s.Create(ctx, "job-3", "b.pdf")
	assert.Error(t, err)
}

func TestStore_CompleteRejectsInvalidManifest(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	_, err := s.Create(ctx, "job-4", "tender.pdf")
	require.NoError(t, err)

	// Missing source violates the schema.
	err = s.Complete(ctx, "job-4", "x", Manifest{JobID: "job-4", Kinds: map[string]KindResult{}})
	require.Error(t, err)

	got, err := s.Get(ctx, "job-4")
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusQueued, got.Status)
}

func TestManifest_Validate(t *testing.T) {
	m := sampleManifest("job-5")
	require.NoError(t, m.Validate())

	m.Kinds["NOT_A_KIND"] = KindResult{Succeeded: true}
	assert.Error(t, m.Validate())
}
