package persistence

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	"github.com/johnquangdev/interview-realtime/internal/domain/repositories"
	"github.com/johnquangdev/interview-realtime/internal/infrastructure/queue"
	usecaseErrors "github.com/johnquangdev/interview-realtime/internal/usecase/errors"
	"github.com/johnquangdev/interview-realtime/pkg/jobcontext"
)

// Job types
const (
	JobSaveChatMessage = "save_chat_message"
	JobSaveFile        = "save_file"
	JobRecordDownload  = "record_file_download"
	JobSaveRecording   = "save_recording_session"
	JobSaveMetrics     = "save_metrics"
)

// Enqueuer accepts background jobs without blocking
type Enqueuer interface {
	Enqueue(job queue.Job) error
}

// Gateway is the best-effort durable sink used by the session hub.
// Every writer hands a job to the queue and returns.
type Gateway struct {
	jobs       Enqueuer
	chats      repositories.ChatMessageRepository
	files      repositories.FileShareRepository
	storage    repositories.FileStorage
	recordings repositories.RecordingSessionRepository
	metrics    repositories.MetricsRepository
	logger     *zap.Logger

	// payloads whose upload has not finished, served to downloads meanwhile
	mu      sync.RWMutex
	pending map[uuid.UUID][]byte
}

// NewGateway creates a persistence gateway
func NewGateway(
	jobs Enqueuer,
	chats repositories.ChatMessageRepository,
	files repositories.FileShareRepository,
	storage repositories.FileStorage,
	recordings repositories.RecordingSessionRepository,
	metrics repositories.MetricsRepository,
	logger *zap.Logger,
) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		jobs:       jobs,
		chats:      chats,
		files:      files,
		storage:    storage,
		recordings: recordings,
		metrics:    metrics,
		logger:     logger,
		pending:    make(map[uuid.UUID][]byte),
	}
}

// SaveChatMessage upserts a message, covering edits, reactions and reads
func (g *Gateway) SaveChatMessage(msg entities.ChatMessage) {
	g.submit(queue.Job{
		Type: JobSaveChatMessage,
		Run: func(ctx context.Context) error {
			return g.chats.Upsert(ctx, &msg)
		},
		Fields: []zap.Field{
			zap.String("message_id", msg.ID.String()),
			zap.String("room_id", msg.RoomID),
		},
	})
}

// SaveFile uploads the payload, then writes the metadata row
func (g *Gateway) SaveFile(rec entities.FileShareRecord, payload []byte) {
	g.mu.Lock()
	g.pending[rec.ID] = payload
	g.mu.Unlock()

	ok := g.submit(queue.Job{
		Type: JobSaveFile,
		Run: func(ctx context.Context) error {
			if err := g.storage.PutObject(ctx, rec.StorageKey, payload, rec.MimeType); err != nil {
				return err
			}
			return g.files.Upsert(ctx, &rec)
		},
		Done: func(error) {
			g.forget(rec.ID)
		},
		Fields: []zap.Field{
			zap.String("file_id", rec.ID.String()),
			zap.String("room_id", rec.RoomID),
			zap.Int64("size", rec.Size),
		},
	})
	if !ok {
		g.forget(rec.ID)
	}
}

// RecordFileDownload stores the in-room download counter
func (g *Gateway) RecordFileDownload(rec entities.FileShareRecord) {
	g.submit(queue.Job{
		Type: JobRecordDownload,
		Run: func(ctx context.Context) error {
			err := g.files.SetDownloadCount(ctx, rec.ID, rec.DownloadCount)
			if errors.Is(err, repositories.ErrRecordMissing) {
				return fmt.Errorf("%w: %v", jobcontext.ErrRetryLater, err)
			}
			return err
		},
		Fields: []zap.Field{
			zap.String("file_id", rec.ID.String()),
			zap.Int("download_count", rec.DownloadCount),
		},
	})
}

// FetchFilePayload returns a shared payload, from memory while its upload is in flight
func (g *Gateway) FetchFilePayload(ctx context.Context, rec entities.FileShareRecord) ([]byte, error) {
	g.mu.RLock()
	payload, ok := g.pending[rec.ID]
	g.mu.RUnlock()
	if ok {
		return payload, nil
	}

	data, err := g.storage.GetObject(ctx, rec.StorageKey)
	if err != nil {
		if errors.Is(err, repositories.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrPayloadMissing, err)
		}
		return nil, err
	}
	return data, nil
}

// SaveRecordingSession upserts the session state owned by the hub
func (g *Gateway) SaveRecordingSession(rec entities.RecordingSession) {
	g.submit(queue.Job{
		Type: JobSaveRecording,
		Run: func(ctx context.Context) error {
			return g.recordings.Upsert(ctx, &rec)
		},
		Fields: []zap.Field{
			zap.String("recording_id", rec.ID.String()),
			zap.String("room_id", rec.RoomID),
			zap.String("status", string(rec.Status)),
		},
	})
}

// SaveMetrics stores a health snapshot
func (g *Gateway) SaveMetrics(snapshot entities.MetricsSnapshot) {
	g.submit(queue.Job{
		Type: JobSaveMetrics,
		Run: func(ctx context.Context) error {
			return g.metrics.Create(ctx, &snapshot)
		},
		Fields: []zap.Field{
			zap.Int("active_rooms", snapshot.ActiveRooms),
			zap.Int("participants", snapshot.Participants),
		},
	})
}

// PendingUploads returns how many payloads are still held in memory
func (g *Gateway) PendingUploads() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.pending)
}

func (g *Gateway) submit(job queue.Job) bool {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if err := g.jobs.Enqueue(job); err != nil {
		appErr := apperrors.ErrTransientPersistence(job.Type, err)
		fields := append([]zap.Field{
			zap.String("job_id", job.ID.String()),
			zap.String("job_type", job.Type),
			zap.String("code", appErr.Code.String()),
			zap.Error(err),
		}, job.Fields...)
		g.logger.Error("❌ Durable write dropped", fields...)
		return false
	}
	return true
}

func (g *Gateway) forget(id uuid.UUID) {
	g.mu.Lock()
	delete(g.pending, id)
	g.mu.Unlock()
}
