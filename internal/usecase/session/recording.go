package session

import (
	"context"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/interview-realtime/internal/usecase/errors"
)

// StartRecording opens the room's recording session. A room holds at most one.
func (h *Hub) StartRecording(ctx context.Context, userID, roomID string, settings entities.RecordingSettings) (entities.RecordingSession, error) {
	var started entities.RecordingSession
	err := h.exec(ctx, "start-recording", func() error {
		room, actor, err := h.member(roomID, userID, "start-recording")
		if err != nil {
			return err
		}
		if err := requirePermission(actor, entities.PermissionControlRecording); err != nil {
			return err
		}
		if room.HasActiveRecording() {
			return apperrors.ErrRecordingInProgress(roomID).WithCause(usecaseErrors.ErrRecordingInProgress)
		}

		rec := entities.NewRecordingSession(room, userID, settings, h.now())
		room.Recording = rec
		started = rec.Clone()

		h.store.SaveRecordingSession(rec.Clone())
		h.capture.StartCapture(rec.Clone())
		h.broadcast(room, "", EventRecordingStarted, RecordingEvent{
			RoomID:    room.ID,
			Recording: started,
			ActorID:   userID,
			ActorName: actor.DisplayName(),
		})

		h.logger.Info("🔴 Recording started",
			zap.String("room_id", room.ID),
			zap.String("recording_id", rec.ID.String()),
			zap.String("started_by", userID),
		)
		return nil
	})
	return started, err
}

// StopRecording moves the session to processing and clears the room reference.
// Completion arrives later from the capture backend.
func (h *Hub) StopRecording(ctx context.Context, userID, roomID string) (entities.RecordingSession, error) {
	var stopped entities.RecordingSession
	err := h.exec(ctx, "stop-recording", func() error {
		room, actor, err := h.member(roomID, userID, "stop-recording")
		if err != nil {
			return err
		}
		if err := requirePermission(actor, entities.PermissionControlRecording); err != nil {
			return err
		}
		if !room.HasActiveRecording() {
			return apperrors.ErrRecordingNotFound(roomID).WithCause(usecaseErrors.ErrRecordingNotStarted)
		}

		rec := room.Recording
		room.Recording = nil
		rec.MarkAsProcessing(h.now())
		stopped = rec.Clone()

		h.store.SaveRecordingSession(rec.Clone())
		h.capture.StopCapture(rec.Clone())
		h.broadcast(room, "", EventRecordingStopped, RecordingEvent{
			RoomID:    room.ID,
			Recording: stopped,
			ActorID:   userID,
			ActorName: actor.DisplayName(),
		})

		h.logger.Info("⏹️ Recording stopped",
			zap.String("room_id", room.ID),
			zap.String("recording_id", rec.ID.String()),
			zap.String("stopped_by", userID),
		)
		return nil
	})
	return stopped, err
}
