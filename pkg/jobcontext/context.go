package jobcontext

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

type KeyContext string

// ErrRetryLater marks a failure caused by a dependency that is not ready yet
var ErrRetryLater = stdErrors.New("temporary failure, try again")

var (
	keyJobID        KeyContext = "job_id"
	keyJobType      KeyContext = "job_type"
	keyWorkerID     KeyContext = "worker_id"
	keyRetryAttempt KeyContext = "retry_attempt"
	keyJobStartTime KeyContext = "job_start_time"
)

// JobMetadata holds metadata for a job execution
type JobMetadata struct {
	JobID        uuid.UUID
	JobType      string
	WorkerID     int
	RetryAttempt int
	StartTime    time.Time
}

// JobBegin derives a job context carrying metadata and the per-job timeout
func JobBegin(parentCtx context.Context, jobID uuid.UUID, jobType string, workerID int, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(parentCtx, timeout)

	ctx = context.WithValue(ctx, keyJobID, jobID)
	ctx = context.WithValue(ctx, keyJobType, jobType)
	ctx = context.WithValue(ctx, keyWorkerID, workerID)
	ctx = context.WithValue(ctx, keyRetryAttempt, 0)
	ctx = context.WithValue(ctx, keyJobStartTime, time.Now())

	return ctx, cancel
}

// JobEnd runs jobFunc under bo until it succeeds, hits a non-retryable error,
// or the backoff gives up. Panics are converted to errors.
func JobEnd(ctx context.Context, bo backoff.BackOff, jobFunc func(context.Context) error) error {
	attempt := 0
	op := func() (err error) {
		attemptCtx := SetRetryAttempt(ctx, attempt)
		attempt++

		defer func() {
			if p := recover(); p != nil {
				err = backoff.Permanent(fmt.Errorf("panic recovered: %v", p))
			}
		}()

		if ctx.Err() != nil {
			return backoff.Permanent(fmt.Errorf("context cancelled before job execution: %w", ctx.Err()))
		}

		if err := jobFunc(attemptCtx); err != nil {
			if !IsRetryableError(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return fmt.Errorf("job failed after %d attempts: %w", attempt, err)
	}
	return nil
}

// NewBackOff builds the exponential policy used by job workers
func NewBackOff(maxElapsed time.Duration) backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = maxElapsed
	return bo
}

// GetJobID extracts job ID from context
func GetJobID(ctx context.Context) (uuid.UUID, bool) {
	jobID, ok := ctx.Value(keyJobID).(uuid.UUID)
	return jobID, ok
}

// GetJobType extracts job type from context
func GetJobType(ctx context.Context) (string, bool) {
	jobType, ok := ctx.Value(keyJobType).(string)
	return jobType, ok
}

// GetWorkerID extracts worker ID from context
func GetWorkerID(ctx context.Context) int {
	workerID, ok := ctx.Value(keyWorkerID).(int)
	if !ok {
		return -1
	}
	return workerID
}

// GetRetryAttempt extracts current retry attempt from context
func GetRetryAttempt(ctx context.Context) int {
	attempt, ok := ctx.Value(keyRetryAttempt).(int)
	if !ok {
		return 0
	}
	return attempt
}

// SetRetryAttempt updates retry attempt in context
func SetRetryAttempt(ctx context.Context, attempt int) context.Context {
	return context.WithValue(ctx, keyRetryAttempt, attempt)
}

// GetJobMetadata extracts all job metadata from context
func GetJobMetadata(ctx context.Context) *JobMetadata {
	jobID, _ := GetJobID(ctx)
	jobType, _ := GetJobType(ctx)
	startTime, _ := ctx.Value(keyJobStartTime).(time.Time)

	return &JobMetadata{
		JobID:        jobID,
		JobType:      jobType,
		WorkerID:     GetWorkerID(ctx),
		RetryAttempt: GetRetryAttempt(ctx),
		StartTime:    startTime,
	}
}

// IsRetryableError checks if an error should trigger a retry.
// Timeouts, network failures, lock conflicts, throttling and 5xx responses qualify.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if stdErrors.Is(err, context.DeadlineExceeded) || stdErrors.Is(err, ErrRetryLater) {
		return true
	}
	var netErr net.Error
	if stdErrors.As(err, &netErr) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, marker := range retryableMarkers {
		if strings.Contains(errStr, marker) {
			return true
		}
	}
	return false
}

var retryableMarkers = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"no such host",
	"i/o timeout",
	"deadlock",
	"40001", // serialization_failure
	"40p01", // deadlock_detected
	"too many requests",
	"rate limit",
	"service unavailable",
	"bad gateway",
	"internal server error",
	"slowdown",
	"temporary failure",
	"try again",
}
