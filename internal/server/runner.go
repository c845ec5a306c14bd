package server

import (
	"context"
	"log/slog"
	"os"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/constants"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/async"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/common"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/jobstore"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/pipeline"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/storage"
)

// pipelineProcessor runs one document through the full pipeline.
type pipelineProcessor interface {
	Process(ctx context.Context, srcPath string) (*pipeline.Outcome, error)
}

// JobRunner executes queued jobs: pipeline run, result upload, job record
// update, session cleanup. It implements async.Runner.
type JobRunner struct {
	proc    pipelineProcessor
	jobs    *jobstore.Store
	results storage.ResultStore
	log     *slog.Logger
}

func NewJobRunner(proc pipelineProcessor, jobs *jobstore.Store, results storage.ResultStore, logger *slog.Logger) *JobRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobRunner{proc: proc, jobs: jobs, results: results, log: logger.With("component", "job_runner")}
}

// Run processes one job to a terminal status. The staged upload is removed
// whatever happens; the session tree is removed once the workbook is stored.
func (r *JobRunner) Run(ctx context.Context, job async.Job) {
	ctx = common.WithJobID(ctx, job.ID)
	defer os.Remove(job.SourcePath)

	if err := r.jobs.MarkProcessing(ctx, job.ID); err != nil {
		r.log.Error("runner.mark_processing_failed", "job_id", job.ID, "error", err)
		return
	}

	outcome, err := r.proc.Process(ctx, job.SourcePath)
	if err != nil {
		r.fail(ctx, job.ID, err)
		return
	}
	defer func() {
		if err := outcome.Session.Cleanup(); err != nil {
			r.log.Warn("runner.session_cleanup_failed", "job_id", job.ID, "error", err)
		}
	}()

	ref, err := r.results.Store(ctx, job.ID, pipeline.CombinedFilename, outcome.WorkbookPath)
	if err != nil {
		r.fail(ctx, job.ID, err)
		return
	}

	manifest := buildManifest(job, outcome)
	if err := r.jobs.Complete(ctx, job.ID, ref.Location, manifest); err != nil {
		r.log.Error("runner.complete_failed", "job_id", job.ID, "error", err)
		r.fail(ctx, job.ID, err)
		return
	}
}

func (r *JobRunner) fail(ctx context.Context, jobID string, cause error) {
	if err := r.jobs.Fail(ctx, jobID, cause.Error()); err != nil {
		r.log.Error("runner.fail_update_failed", "job_id", jobID, "error", err)
	}
}

func buildManifest(job async.Job, outcome *pipeline.Outcome) jobstore.Manifest {
	kinds := make(map[string]jobstore.KindResult, len(outcome.Kinds))
	for _, kind := range constants.AllKinds {
		res, ok := outcome.Kinds[kind]
		if !ok {
			continue
		}
		kr := jobstore.KindResult{Succeeded: res.Succeeded}
		if res.Succeeded {
			kr.File = constants.ExcelFilenames[kind]
		} else if res.Err != nil {
			kr.Error = res.Err.Error()
		}
		kinds[string(kind)] = kr
	}
	return jobstore.Manifest{
		JobID:       job.ID,
		Source:      job.Filename,
		Workbook:    pipeline.CombinedFilename,
		Kinds:       kinds,
		DroppedRows: outcome.DroppedRows,
	}
}
