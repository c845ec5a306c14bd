package async

import (
	"context"
	"errors"
	"time"
)

// ErrQueueClosed is returned by Enqueue after Shutdown has begun.
var ErrQueueClosed = errors.New("queue is shut down")

// ErrQueueFull is returned by Enqueue when the buffer is at capacity.
// Callers surface it as backpressure rather than blocking the submitter.
var ErrQueueFull = errors.New("queue is full")

// Job is one queued RFP processing request. The source file is already
// staged outside the HTTP request lifetime before the job is enqueued.
type Job struct {
	ID          string
	Filename    string
	SourcePath  string
	SubmittedAt time.Time
}

// Runner executes one job end to end, including recording its terminal
// status; the queue never interprets outcomes.
type Runner interface {
	Run(ctx context.Context, job Job)
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
