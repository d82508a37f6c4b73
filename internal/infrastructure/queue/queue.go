package queue

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	usecaseErrors "github.com/johnquangdev/interview-realtime/internal/usecase/errors"
	"github.com/johnquangdev/interview-realtime/pkg/jobcontext"
)

// Job is one unit of background work. Done, when set, receives the final outcome.
type Job struct {
	ID     uuid.UUID
	Type   string
	Run    func(ctx context.Context) error
	Done   func(err error)
	Fields []zap.Field
}

// Config controls the worker pool
type Config struct {
	Workers    int
	Capacity   int
	JobTimeout time.Duration
	MaxElapsed time.Duration
}

// Queue is a bounded worker pool. Enqueue never blocks the caller.
type Queue struct {
	cfg    Config
	jobs   chan Job
	logger *zap.Logger

	mu      sync.RWMutex
	stopped bool
	started bool
	wg      sync.WaitGroup
	stopCh  chan struct{}
}

// New creates a queue; call Start to launch the workers
func New(cfg Config, logger *zap.Logger) *Queue {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{
		cfg:    cfg,
		jobs:   make(chan Job, cfg.Capacity),
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// Start launches the workers. Calling it twice is a no-op.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.stopped {
		return
	}
	q.started = true

	q.logger.Info("🚀 Starting job queue",
		zap.Int("worker_count", q.cfg.Workers),
		zap.Int("capacity", q.cfg.Capacity),
	)

	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx, i)
	}
}

// Enqueue submits a job. A full or stopped queue drops the job and reports why.
func (q *Queue) Enqueue(job Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}

	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.stopped {
		return usecaseErrors.ErrQueueStopped
	}

	select {
	case q.jobs <- job:
		return nil
	default:
		fields := append([]zap.Field{
			zap.String("job_id", job.ID.String()),
			zap.String("job_type", job.Type),
		}, job.Fields...)
		q.logger.Warn("⚠️ Job queue full, dropping job", fields...)
		return usecaseErrors.ErrQueueFull
	}
}

// Len returns the number of jobs waiting
func (q *Queue) Len() int {
	return len(q.jobs)
}

// Stop rejects new jobs, drains what is queued and waits for the workers
func (q *Queue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	close(q.jobs)
	started := q.started
	q.mu.Unlock()

	if !started {
		return
	}

	q.logger.Info("🛑 Stopping job queue...")
	q.wg.Wait()
	q.logger.Info("✅ Job queue stopped")
}

func (q *Queue) worker(parentCtx context.Context, workerID int) {
	defer q.wg.Done()

	for job := range q.jobs {
		q.process(parentCtx, workerID, job)
	}
}

func (q *Queue) process(parentCtx context.Context, workerID int, job Job) {
	// Drain with a live context even after the parent is cancelled
	ctx := context.WithoutCancel(parentCtx)
	jobCtx, cancel := jobcontext.JobBegin(ctx, job.ID, job.Type, workerID, q.cfg.JobTimeout)
	defer cancel()

	attempts := 0
	run := func(attemptCtx context.Context) error {
		attempts++
		if meta := jobcontext.GetJobMetadata(attemptCtx); meta.RetryAttempt > 0 {
			q.logger.Debug("🔁 Retrying job", append(jobFields(meta), job.Fields...)...)
		}
		return job.Run(attemptCtx)
	}

	err := jobcontext.JobEnd(jobCtx, jobcontext.NewBackOff(q.cfg.MaxElapsed), run)
	if job.Done != nil {
		job.Done(err)
	}
	if err == nil {
		return
	}

	meta := jobcontext.GetJobMetadata(jobCtx)
	meta.RetryAttempt = attempts - 1
	appErr := apperrors.ErrTransientPersistence(job.Type, err)
	fields := append(jobFields(meta),
		zap.Duration("elapsed", time.Since(meta.StartTime)),
		zap.String("code", appErr.Code.String()),
		zap.Error(err),
	)
	q.logger.Error("❌ Job failed after retries", append(fields, job.Fields...)...)
}

func jobFields(meta *jobcontext.JobMetadata) []zap.Field {
	return []zap.Field{
		zap.String("job_id", meta.JobID.String()),
		zap.String("job_type", meta.JobType),
		zap.Int("worker_id", meta.WorkerID),
		zap.Int("retry_attempt", meta.RetryAttempt),
	}
}
