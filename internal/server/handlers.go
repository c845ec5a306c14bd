package server

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/constants"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/async"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/common"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/jobstore"
)

// maxUploadBytes caps multipart parsing memory; larger files spill to disk.
const maxUploadBytes = 100 << 20

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleProcessRFP accepts a multipart PDF upload, records a QUEUED job and
// hands it to the background queue. The response returns immediately with
// the job id.
func (s *Server) handleProcessRFP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	ext := constants.NormalizeExt(filepath.Ext(filename))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		writeError(w, http.StatusBadRequest, "only .pdf uploads are accepted")
		return
	}

	jobID := uuid.New().String()
	stagedPath := filepath.Join(s.uploadDir, jobID+".pdf")
	if err := saveUpload(file, stagedPath); err != nil {
		s.log.Error("http.upload.stage_failed", "job_id", jobID, "error", err)
		writeError(w, http.StatusInternalServerError, "cannot store upload")
		return
	}

	if _, err := s.jobs.Create(r.Context(), jobID, filename); err != nil {
		_ = os.Remove(stagedPath)
		s.log.Error("http.upload.job_create_failed", "job_id", jobID, "error", err)
		writeError(w, http.StatusInternalServerError, "cannot record job")
		return
	}

	job := async.Job{
		ID:          jobID,
		Filename:    filename,
		SourcePath:  stagedPath,
		SubmittedAt: time.Now(),
	}
	if err := s.queue.Enqueue(r.Context(), job); err != nil {
		reason := "service is shutting down"
		if errors.Is(err, async.ErrQueueFull) {
			reason = "processing queue is full"
		}
		_ = s.jobs.Fail(r.Context(), jobID, reason)
		writeError(w, http.StatusServiceUnavailable, reason)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"job_id":   jobID,
		"filename": filename,
		"status":   string(constants.JobStatusQueued),
	})
}

type statusResponse struct {
	JobID     string             `json:"job_id"`
	Filename  string             `json:"filename"`
	Status    string             `json:"status"`
	CreatedAt string             `json:"created_at"`
	UpdatedAt string             `json:"updated_at"`
	Error     string             `json:"error,omitempty"`
	Manifest  *jobstore.Manifest `json:"manifest,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	job, ok := s.lookupJob(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		JobID:     job.ID,
		Filename:  job.Filename,
		Status:    string(job.Status),
		CreatedAt: job.CreatedAt.Format(time.RFC3339),
		UpdatedAt: job.UpdatedAt.Format(time.RFC3339),
		Error:     job.Error,
		Manifest:  job.Manifest,
	})
}

// handleDownload serves the combined workbook for a completed job, or
// redirects when the result lives in remote storage.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	job, ok := s.lookupJob(w, r)
	if !ok {
		return
	}
	switch job.Status {
	case constants.JobStatusCompleted:
	case constants.JobStatusFailed:
		writeError(w, http.StatusGone, "job failed: "+job.Error)
		return
	default:
		writeError(w, http.StatusConflict, "result not ready")
		return
	}

	if isRemoteRef(job.ResultRef) {
		http.Redirect(w, r, job.ResultRef, http.StatusTemporaryRedirect)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="rfp_analysis.xlsx"`)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, job.ResultRef)
}

func (s *Server) lookupJob(w http.ResponseWriter, r *http.Request) (*jobstore.Job, bool) {
	id := chi.URLParam(r, "id")
	job, err := s.jobs.Get(r.Context(), id)
	if errors.Is(err, common.ErrNotFound) {
		writeError(w, http.StatusNotFound, "unknown job id")
		return nil, false
	}
	if err != nil {
		s.log.Error("http.job_lookup_failed", "job_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "cannot read job")
		return nil, false
	}
	return job, true
}

func isRemoteRef(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func saveUpload(src io.Reader, dst string) error {
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
