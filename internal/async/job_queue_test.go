package async

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	mu   sync.Mutex
	jobs []string
}

func (r *recordingRunner) Run(_ context.Context, job Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, job.ID)
}

func (r *recordingRunner) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.jobs...)
}

func TestJobQueue_RunsEveryJob(t *testing.T) {
	runner := &recordingRunner{}
	q := NewJobQueue(runner, nil, WithWorkers(3), WithQueueSize(8))

	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, q.Enqueue(context.Background(), Job{ID: id, SubmittedAt: time.Now()}))
	}
	q.Shutdown(context.Background())

	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, runner.seen())
}

type gatedRunner struct {
	started chan struct{}
	release chan struct{}
}

func (r *gatedRunner) Run(_ context.Context, _ Job) {
	r.started <- struct{}{}
	<-r.release
}

func TestJobQueue_EnqueueFullQueueFailsFast(t *testing.T) {
	runner := &gatedRunner{started: make(chan struct{}, 4), release: make(chan struct{})}
	q := NewJobQueue(runner, nil, WithWorkers(1), WithQueueSize(1))

	// First job occupies the worker, second fills the buffer.
	require.NoError(t, q.Enqueue(context.Background(), Job{ID: "running", SubmittedAt: time.Now()}))
	<-runner.started
	require.NoError(t, q.Enqueue(context.Background(), Job{ID: "buffered", SubmittedAt: time.Now()}))

	start := time.Now()
	err := q.Enqueue(context.Background(), Job{ID: "rejected", SubmittedAt: time.Now()})
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Less(t, time.Since(start), time.Second)

	close(runner.release)
	q.Shutdown(context.Background())
}

func TestJobQueue_EnqueueAfterShutdown(t *testing.T) {
	q := NewJobQueue(&recordingRunner{}, nil, WithWorkers(1))
	q.Shutdown(context.Background())

	err := q.Enqueue(context.Background(), Job{ID: "late"})
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestJobQueue_ShutdownIsIdempotent(t *testing.T) {
	q := NewJobQueue(&recordingRunner{}, nil, WithWorkers(1))
	q.Shutdown(context.Background())
	q.Shutdown(context.Background())
}

type slowRunner struct{ done chan struct{} }

func (r *slowRunner) Run(ctx context.Context, _ Job) {
	select {
	case <-ctx.Done():
	case <-r.done:
	}
}

func TestJobQueue_ShutdownHonorsContext(t *testing.T) {
	runner := &slowRunner{done: make(chan struct{})}
	q := NewJobQueue(runner, nil, WithWorkers(1), WithJobTimeout(time.Minute))
	require.NoError(t, q.Enqueue(context.Background(), Job{ID: "stuck"}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	q.Shutdown(ctx)
	assert.Less(t, time.Since(start), 5*time.Second)
	close(runner.done)
}
