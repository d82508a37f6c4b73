package capture

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	"github.com/johnquangdev/interview-realtime/internal/domain/repositories"
	"github.com/johnquangdev/interview-realtime/internal/infrastructure/external/livekit"
	"github.com/johnquangdev/interview-realtime/internal/infrastructure/queue"
	usecaseErrors "github.com/johnquangdev/interview-realtime/internal/usecase/errors"
	"github.com/johnquangdev/interview-realtime/pkg/jobcontext"
)

// Job types
const (
	JobStartCapture = "start_capture"
	JobStopCapture  = "stop_capture"
	JobBindEgress   = "bind_egress"
	JobProgress     = "recording_progress"
	JobComplete     = "complete_recording"
	JobFail         = "fail_recording"
)

// processingProgress is reported while egress finalizes the file
const processingProgress = 50

// Enqueuer accepts background jobs without blocking
type Enqueuer interface {
	Enqueue(job queue.Job) error
}

// Service captures room media through LiveKit egress.
// Jobs must run on a single worker so a stop never overtakes its start.
type Service struct {
	recorder   livekit.Recorder
	recordings repositories.RecordingSessionRepository
	jobs       Enqueuer
	outputDir  string
	logger     *zap.Logger

	mu     sync.Mutex
	egress map[uuid.UUID]string
}

// NewService creates a capture service
func NewService(recorder livekit.Recorder, recordings repositories.RecordingSessionRepository, jobs Enqueuer, outputDir string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		recorder:   recorder,
		recordings: recordings,
		jobs:       jobs,
		outputDir:  outputDir,
		logger:     logger,
		egress:     make(map[uuid.UUID]string),
	}
}

// StartCapture begins recording the room in the background
func (s *Service) StartCapture(rec entities.RecordingSession) {
	s.submit(queue.Job{
		Type: JobStartCapture,
		Run: func(ctx context.Context) error {
			if _, ok := s.egressID(rec.ID); ok {
				return nil
			}
			egressID, err := s.recorder.StartRoomRecording(ctx, livekit.RecordingRequest{
				RoomName: rec.RoomID,
				Filepath: s.filepath(rec),
				Format:   rec.Format,
				Quality:  rec.Quality,
			})
			if err != nil {
				return err
			}

			s.mu.Lock()
			s.egress[rec.ID] = egressID
			s.mu.Unlock()

			s.logger.Info("🎬 Recording capture started",
				zap.String("recording_id", rec.ID.String()),
				zap.String("room_id", rec.RoomID),
				zap.String("egress_id", egressID),
			)
			s.bindEgress(rec.ID, egressID)
			return nil
		},
		Done: func(err error) {
			if err != nil {
				s.fail(rec.ID, apperrors.ErrRecordingStartFailed(rec.RoomID, err).Error())
			}
		},
		Fields: recordingFields(rec),
	})
}

// StopCapture ends the egress; mock egress completes immediately
func (s *Service) StopCapture(rec entities.RecordingSession) {
	s.submit(queue.Job{
		Type: JobStopCapture,
		Run: func(ctx context.Context) error {
			egressID, ok := s.egressID(rec.ID)
			if !ok {
				s.logger.Warn("⚠️ No capture to stop",
					zap.String("recording_id", rec.ID.String()),
				)
				return nil
			}

			result, err := s.recorder.StopRecording(ctx, egressID)
			if err != nil {
				return err
			}

			s.mu.Lock()
			delete(s.egress, rec.ID)
			s.mu.Unlock()

			s.logger.Info("⏹️ Recording capture stopped",
				zap.String("recording_id", rec.ID.String()),
				zap.String("egress_id", egressID),
				zap.String("egress_status", result.Status),
			)
			s.apply(rec.ID, result)
			return nil
		},
		Done: func(err error) {
			if err != nil {
				s.fail(rec.ID, apperrors.ErrRecordingStopFailed(rec.ID.String(), err).Error())
			}
		},
		Fields: recordingFields(rec),
	})
}

// HandleEgressEvent applies a webhook-reported egress state to its recording
func (s *Service) HandleEgressEvent(ctx context.Context, event string, result *livekit.EgressResult) error {
	rec, err := s.recordings.FindByEgressID(ctx, result.EgressID)
	if err != nil {
		return apperrors.ErrDBQueryFailed("find recording by egress", err)
	}
	if rec == nil {
		return apperrors.ErrNotFound("Recording").
			WithDetail("egress_id", result.EgressID).
			WithCause(usecaseErrors.ErrRecordingNotFound)
	}
	if rec.IsFinal() {
		return nil
	}

	switch {
	case result.Final:
		s.apply(rec.ID, result)
	case event == livekit.EventEgressUpdated && rec.Status == entities.RecordingStatusProcessing:
		s.progress(rec.ID, processingProgress)
	}
	return nil
}

// apply stores a final egress outcome
func (s *Service) apply(id uuid.UUID, result *livekit.EgressResult) {
	if !result.Final {
		s.progress(id, processingProgress)
		return
	}
	if result.Success {
		s.complete(id, result.Location)
		return
	}
	s.fail(id, result.Error)
}

func (s *Service) bindEgress(id uuid.UUID, egressID string) {
	s.submit(queue.Job{
		Type: JobBindEgress,
		Run: func(ctx context.Context) error {
			return retryIfMissing(s.recordings.SetEgressID(ctx, id, egressID))
		},
		Fields: []zap.Field{zap.String("recording_id", id.String()), zap.String("egress_id", egressID)},
	})
}

func (s *Service) progress(id uuid.UUID, progress int) {
	s.submit(queue.Job{
		Type: JobProgress,
		Run: func(ctx context.Context) error {
			return retryIfMissing(s.recordings.UpdateProgress(ctx, id, progress))
		},
		Fields: []zap.Field{zap.String("recording_id", id.String()), zap.Int("progress", progress)},
	})
}

func (s *Service) complete(id uuid.UUID, location string) {
	s.submit(queue.Job{
		Type: JobComplete,
		Run: func(ctx context.Context) error {
			return retryIfMissing(s.recordings.Complete(ctx, id, location))
		},
		Fields: []zap.Field{zap.String("recording_id", id.String()), zap.String("file_url", location)},
	})
	s.logger.Info("✅ Recording completed",
		zap.String("recording_id", id.String()),
		zap.String("file_url", location),
	)
}

func (s *Service) fail(id uuid.UUID, reason string) {
	s.submit(queue.Job{
		Type: JobFail,
		Run: func(ctx context.Context) error {
			return retryIfMissing(s.recordings.Fail(ctx, id, reason))
		},
		Fields: []zap.Field{zap.String("recording_id", id.String())},
	})
	s.logger.Error("❌ Recording failed",
		zap.String("recording_id", id.String()),
		zap.String("reason", reason),
	)
}

func (s *Service) egressID(id uuid.UUID) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	egressID, ok := s.egress[id]
	return egressID, ok
}

func (s *Service) filepath(rec entities.RecordingSession) string {
	return path.Join(s.outputDir, rec.InterviewID, rec.FileName)
}

func (s *Service) submit(job queue.Job) {
	if err := s.jobs.Enqueue(job); err != nil {
		s.logger.Error("❌ Capture job dropped",
			append([]zap.Field{zap.String("job_type", job.Type), zap.Error(err)}, job.Fields...)...,
		)
	}
}

// retryIfMissing retries updates that raced ahead of the session row insert
func retryIfMissing(err error) error {
	if errors.Is(err, repositories.ErrRecordMissing) {
		return fmt.Errorf("%w: %v", jobcontext.ErrRetryLater, err)
	}
	return err
}

func recordingFields(rec entities.RecordingSession) []zap.Field {
	return []zap.Field{
		zap.String("recording_id", rec.ID.String()),
		zap.String("room_id", rec.RoomID),
	}
}
