package archive

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	"github.com/johnquangdev/interview-realtime/internal/domain/repositories"
)

const (
	DefaultHistoryLimit = 200
	MaxHistoryLimit     = 1000
	DefaultMetricsSpan  = time.Hour
)

// Service reads back what the persistence gateway stored. Live rooms are served by the hub.
type Service struct {
	chats      repositories.ChatMessageRepository
	files      repositories.FileShareRepository
	recordings repositories.RecordingSessionRepository
	metrics    repositories.MetricsRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates an archive service
func NewService(
	chats repositories.ChatMessageRepository,
	files repositories.FileShareRepository,
	recordings repositories.RecordingSessionRepository,
	metrics repositories.MetricsRepository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		chats:      chats,
		files:      files,
		recordings: recordings,
		metrics:    metrics,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ChatHistory returns the newest stored messages of a room, oldest first.
// A limit outside (0, MaxHistoryLimit] falls back to the default or the cap.
func (s *Service) ChatHistory(ctx context.Context, roomID string, limit int) ([]*entities.ChatMessage, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}

	messages, err := s.chats.FindByRoomID(ctx, roomID, limit)
	if err != nil {
		s.logger.Error("❌ Failed to load chat history", zap.String("room_id", roomID), zap.Error(err))
		return nil, apperrors.ErrDBQueryFailed("chat_messages", err)
	}
	return messages, nil
}

// InterviewFiles lists file metadata shared during an interview, newest first
func (s *Service) InterviewFiles(ctx context.Context, interviewID string) ([]*entities.FileShareRecord, error) {
	records, err := s.files.FindByInterviewID(ctx, interviewID)
	if err != nil {
		s.logger.Error("❌ Failed to load shared files", zap.String("interview_id", interviewID), zap.Error(err))
		return nil, apperrors.ErrDBQueryFailed("file_shares", err)
	}
	return records, nil
}

// Recording returns one stored recording session
func (s *Service) Recording(ctx context.Context, id uuid.UUID) (*entities.RecordingSession, error) {
	rec, err := s.recordings.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("❌ Failed to load recording", zap.String("recording_id", id.String()), zap.Error(err))
		return nil, apperrors.ErrDBQueryFailed("recording_sessions", err)
	}
	if rec == nil {
		return nil, apperrors.ErrNotFound("Recording").WithDetail("recording_id", id.String())
	}
	return rec, nil
}

// MetricsSince returns health snapshots recorded at or after since.
// A zero since means the last DefaultMetricsSpan.
func (s *Service) MetricsSince(ctx context.Context, since time.Time) ([]*entities.MetricsSnapshot, error) {
	if since.IsZero() {
		since = s.now().Add(-DefaultMetricsSpan)
	}
	snapshots, err := s.metrics.FindSince(ctx, since)
	if err != nil {
		s.logger.Error("❌ Failed to load metrics", zap.Time("since", since), zap.Error(err))
		return nil, apperrors.ErrDBQueryFailed("room_metrics", err)
	}
	return snapshots, nil
}
