package jobstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/constants"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/common"
)

// Job is one processing job as the status endpoint reports it.
type Job struct {
	ID        string
	Filename  string
	Status    constants.JobStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	// ResultRef points at the stored combined workbook (path or blob URL).
	ResultRef string
	// Error is the terminal failure message for FAILED jobs.
	Error    string
	Manifest *Manifest
}

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id         TEXT PRIMARY KEY,
	filename   TEXT NOT NULL,
	status     TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	result_ref TEXT NOT NULL DEFAULT '',
	error      TEXT NOT NULL DEFAULT '',
	manifest   TEXT NOT NULL DEFAULT ''
);
`

// Store persists job state in SQLite. A single writer connection keeps
// per-job updates serialized.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (creating if needed) the job database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir job db dir: %w", err)
		}
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(10000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open job db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply job schema: %w", err)
	}
	return &Store{db: db, log: logger.With("component", "jobstore")}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Create records a new job in QUEUED state.
func (s *Store) Create(ctx context.Context, id, filename string) (*Job, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, filename, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, filename, string(constants.JobStatusQueued), now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, common.NewAppError("JOB_CREATE_FAILED", "cannot record job", err)
	}
	s.log.Info("jobstore.create", "job_id", id, "filename", filename)
	return &Job{ID: id, Filename: filename, Status: constants.JobStatusQueued, CreatedAt: now, UpdatedAt: now}, nil
}

// Get returns one job by id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, filename, status, created_at, updated_at, result_ref, error, manifest FROM jobs WHERE id = ?`, id)

	var j Job
	var status, createdAt, updatedAt, manifestJSON string
	err := row.Scan(&j.ID, &j.Filename, &status, &createdAt, &updatedAt, &j.ResultRef, &j.Error, &manifestJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewAppError("JOB_NOT_FOUND", fmt.Sprintf("no job with id %s", id), common.ErrNotFound)
	}
	if err != nil {
		return nil, common.NewAppError("JOB_READ_FAILED", "cannot read job", err)
	}

	j.Status = constants.JobStatus(status)
	if j.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, common.NewAppError("JOB_READ_FAILED", "corrupt created_at", err)
	}
	if j.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, common.NewAppError("JOB_READ_FAILED", "corrupt updated_at", err)
	}
	if manifestJSON != "" {
		var m Manifest
		if err := json.Unmarshal([]byte(manifestJSON), &m); err != nil {
			return nil, common.NewAppError("JOB_READ_FAILED", "corrupt manifest", err)
		}
		j.Manifest = &m
	}
	return &j, nil
}

// MarkProcessing transitions a job to PROCESSING.
func (s *Store) MarkProcessing(ctx context.Context, id string) error {
	return s.update(ctx, id, `UPDATE jobs SET status = ?, updated_at = ? WHERE id = ?`,
		string(constants.JobStatusProcessing), now(), id)
}

// Complete records a successful job with its result reference and
// schema-validated manifest. Partial extraction success still completes;
// the manifest carries the per-kind outcomes.
func (s *Store) Complete(ctx context.Context, id, resultRef string, m Manifest) error {
	if err := m.Validate(); err != nil {
		return common.NewAppError("JOB_MANIFEST_INVALID", "result manifest failed validation", err)
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return common.NewAppError("JOB_MANIFEST_INVALID", "cannot encode manifest", err)
	}
	if err := s.update(ctx, id,
		`UPDATE jobs SET status = ?, result_ref = ?, manifest = ?, updated_at = ? WHERE id = ?`,
		string(constants.JobStatusCompleted), resultRef, string(raw), now(), id); err != nil {
		return err
	}
	s.log.Info("jobstore.complete", "job_id", id, "result_ref", resultRef, "failed_kinds", m.Failed())
	return nil
}

// Fail records a terminal failure.
func (s *Store) Fail(ctx context.Context, id, message string) error {
	if err := s.update(ctx, id,
		`UPDATE jobs SET status = ?, error = ?, updated_at = ? WHERE id = ?`,
		string(constants.JobStatusFailed), message, now(), id); err != nil {
		return err
	}
	s.log.Info("jobstore.fail", "job_id", id, "error", message)
	return nil
}

func (s *Store) update(ctx context.Context, id, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return common.NewAppError("JOB_UPDATE_FAILED", "cannot update job", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.NewAppError("JOB_NOT_FOUND", fmt.Sprintf("no job with id %s", id), common.ErrNotFound)
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
