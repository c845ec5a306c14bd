package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/constants"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/async"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/jobstore"
)

type fakeQueue struct {
	jobs   []async.Job
	closed bool
	full   bool
}

func (q *fakeQueue) Enqueue(_ context.Context, job async.Job) error {
	if q.closed {
		return async.ErrQueueClosed
	}
	if q.full {
		return async.ErrQueueFull
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *fakeQueue) Shutdown(context.Context) {}

func newTestServer(t *testing.T) (*Server, *fakeQueue, *jobstore.Store) {
	t.Helper()
	jobs, err := jobstore.Open(filepath.Join(t.TempDir(), "jobs.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { jobs.Close() })

	queue := &fakeQueue{}
	srv, err := New(queue, jobs, t.TempDir(), nil)
	require.NoError(t, err)
	return srv, queue, jobs
}

func multipartUpload(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/process-rfp", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestProcessRFP_AcceptsPDF(t *testing.T) {
	srv, queue, jobs := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, multipartUpload(t, "file", "tender.pdf", []byte("%PDF-1.4")))
	require.Equal(t, http.StatusAccepted, rr.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.NotEmpty(t, resp["job_id"])
	assert.Equal(t, "tender.pdf", resp["filename"])
	assert.Equal(t, string(constants.JobStatusQueued), resp["status"])

	require.Len(t, queue.jobs, 1)
	assert.Equal(t, resp["job_id"], queue.jobs[0].ID)
	assert.FileExists(t, queue.jobs[0].SourcePath)

	job, err := jobs.Get(context.Background(), resp["job_id"])
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusQueued, job.Status)
}

func TestProcessRFP_RejectsNonPDF(t *testing.T) {
	srv, queue, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, multipartUpload(t, "file", "tender.docx", []byte("not a pdf")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, queue.jobs)
}

func TestProcessRFP_MissingFileField(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, multipartUpload(t, "document", "tender.pdf", []byte("%PDF-1.4")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProcessRFP_QueueClosed(t *testing.T) {
	srv, queue, _ := newTestServer(t)
	queue.closed = true

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, multipartUpload(t, "file", "tender.pdf", []byte("%PDF-1.4")))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestProcessRFP_QueueFull(t *testing.T) {
	srv, queue, jobs := newTestServer(t)
	queue.full = true

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, multipartUpload(t, "file", "tender.pdf", []byte("%PDF-1.4")))
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "processing queue is full")
	assert.Empty(t, queue.jobs)

	// The rejected job is recorded as terminal so a status poll explains itself.
	entries, err := os.ReadDir(srv.uploadDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	jobID := strings.TrimSuffix(entries[0].Name(), ".pdf")

	job, err := jobs.Get(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusFailed, job.Status)
	assert.Equal(t, "processing queue is full", job.Error)
}

func TestStatus_UnknownJob(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStatus_ReportsJobState(t *testing.T) {
	srv, _, jobs := newTestServer(t)
	_, err := jobs.Create(context.Background(), "job-1", "tender.pdf")
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status/job-1", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp statusResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "job-1", resp.JobID)
	assert.Equal(t, string(constants.JobStatusQueued), resp.Status)
	assert.Nil(t, resp.Manifest)
}

func TestDownload_NotReady(t *testing.T) {
	srv, _, jobs := newTestServer(t)
	_, err := jobs.Create(context.Background(), "job-1", "tender.pdf")
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/download/job-1", nil))
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestDownload_FailedJob(t *testing.T) {
	srv, _, jobs := newTestServer(t)
	_, err := jobs.Create(context.Background(), "job-1", "tender.pdf")
	require.NoError(t, err)
	require.NoError(t, jobs.Fail(context.Background(), "job-1", "conversion failed"))

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/download/job-1", nil))
	assert.Equal(t, http.StatusGone, rr.Code)
}

func TestDownload_ServesLocalResult(t *testing.T) {
	srv, _, jobs := newTestServer(t)

	resultPath := filepath.Join(t.TempDir(), "rfp_analysis.xlsx")
	require.NoError(t, os.WriteFile(resultPath, []byte("workbook bytes"), 0o644))

	ctx := context.Background()
	_, err := jobs.Create(ctx, "job-1", "tender.pdf")
	require.NoError(t, err)
	m := jobstore.Manifest{
		JobID:  "job-1",
		Source: "tender.pdf",
		Kinds:  map[string]jobstore.KindResult{string(constants.KindBOQ): {Succeeded: true, File: "boq.xlsx"}},
	}
	require.NoError(t, jobs.Complete(ctx, "job-1", resultPath, m))

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/download/job-1", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "workbook bytes", rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "rfp_analysis.xlsx")
}

func TestDownload_RedirectsRemoteResult(t *testing.T) {
	srv, _, jobs := newTestServer(t)

	ctx := context.Background()
	_, err := jobs.Create(ctx, "job-1", "tender.pdf")
	require.NoError(t, err)
	url := "https://example.blob.core.windows.net/rfp-results/job-1/rfp_analysis.xlsx"
	m := jobstore.Manifest{
		JobID:  "job-1",
		Source: "tender.pdf",
		Kinds:  map[string]jobstore.KindResult{string(constants.KindBOQ): {Succeeded: true}},
	}
	require.NoError(t, jobs.Complete(ctx, "job-1", url, m))

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/download/job-1", nil))
	assert.Equal(t, http.StatusTemporaryRedirect, rr.Code)
	assert.Equal(t, url, rr.Header().Get("Location"))
}

func TestDownload_RedirectsShortRemoteRef(t *testing.T) {
	srv, _, jobs := newTestServer(t)

	ctx := context.Background()
	_, err := jobs.Create(ctx, "job-2", "tender.pdf")
	require.NoError(t, err)
	m := jobstore.Manifest{
		JobID:  "job-2",
		Source: "tender.pdf",
		Kinds:  map[string]jobstore.KindResult{string(constants.KindBOQ): {Succeeded: true}},
	}
	require.NoError(t, jobs.Complete(ctx, "job-2", "http://x", m))

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/download/job-2", nil))
	assert.Equal(t, http.StatusTemporaryRedirect, rr.Code)
	assert.Equal(t, "http://x", rr.Header().Get("Location"))
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCORS_Preflight(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/process-rfp", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
