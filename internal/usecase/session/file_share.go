package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/interview-realtime/internal/usecase/errors"
)

// ShareFileInput is a validated share-file request with its decoded payload
type ShareFileInput struct {
	RoomID      string
	Info        entities.FileInfo
	Payload     []byte
	Description string
}

// ShareFile records file metadata in the room, hands the payload to the
// persistence gateway and broadcasts the metadata only.
func (h *Hub) ShareFile(ctx context.Context, uploaderID string, in ShareFileInput) (entities.FileShareRecord, error) {
	if entities.ExceedsMaxSize(in.Info.Size) || entities.ExceedsMaxSize(int64(len(in.Payload))) {
		size := in.Info.Size
		if int64(len(in.Payload)) > size {
			size = int64(len(in.Payload))
		}
		return entities.FileShareRecord{}, apperrors.ErrFileTooLarge(size, entities.MaxFileSize).
			WithCause(usecaseErrors.ErrFileTooLarge)
	}
	if in.Info.Size != int64(len(in.Payload)) {
		return entities.FileShareRecord{}, apperrors.ErrInvalidArgument("Declared file size does not match payload").
			WithDetail("size", fmt.Sprintf("%d", in.Info.Size)).
			WithDetail("payload_size", fmt.Sprintf("%d", len(in.Payload))).
			WithCause(usecaseErrors.ErrFileSizeMismatch)
	}

	var shared entities.FileShareRecord
	err := h.exec(ctx, "share-file", func() error {
		room, uploader, err := h.member(in.RoomID, uploaderID, "share-file")
		if err != nil {
			return err
		}
		if err := requirePermission(uploader, entities.PermissionShareFiles); err != nil {
			return err
		}

		rec := entities.NewFileShareRecord(room.ID, room.InterviewID, uploaderID, in.Info, in.Description, h.now())
		room.AddFile(rec)
		shared = rec

		h.store.SaveFile(rec, in.Payload)
		h.broadcast(room, "", EventFileShared, FileSharedEvent{
			RoomID:       room.ID,
			File:         rec,
			UploaderName: uploader.DisplayName(),
		})

		h.logger.Info("📎 File shared",
			zap.String("room_id", room.ID),
			zap.String("file_id", rec.ID.String()),
			zap.String("uploader_id", uploaderID),
			zap.Int64("size", rec.Size),
		)
		return nil
	})
	return shared, err
}

// RequestFile fetches a shared payload and sends it only to the requester.
// The fetch runs off the hub loop, so the room is re-read afterwards.
func (h *Hub) RequestFile(ctx context.Context, userID, roomID string, fileID uuid.UUID) error {
	var rec entities.FileShareRecord
	err := h.exec(ctx, "request-file", func() error {
		room, _, err := h.member(roomID, userID, "request-file")
		if err != nil {
			return err
		}
		found := room.FindFile(fileID)
		if found == nil {
			return apperrors.ErrFileNotFound(fileID.String()).WithCause(usecaseErrors.ErrFileNotFound)
		}
		rec = *found
		return nil
	})
	if err != nil {
		return err
	}

	payload, err := h.store.FetchFilePayload(ctx, rec)
	if err != nil {
		if errors.Is(err, usecaseErrors.ErrPayloadMissing) {
			return apperrors.ErrFileNotFound(fileID.String()).WithCause(err)
		}
		return apperrors.ErrStorageFailed("fetch file", err)
	}

	return h.exec(ctx, "request-file", func() error {
		room, _, err := h.member(roomID, userID, "request-file")
		if err != nil {
			return err
		}
		found := room.FindFile(fileID)
		if found == nil {
			return apperrors.ErrFileNotFound(fileID.String()).WithCause(usecaseErrors.ErrFileNotFound)
		}
		handle, ok := h.registry.LookupHandle(userID)
		if !ok {
			return apperrors.ErrPermissionDenied("request-file").WithCause(usecaseErrors.ErrConnectionNotActive)
		}

		found.DownloadCount++
		h.store.RecordFileDownload(*found)
		h.deliver(handle, EventFileData, FileDataEvent{
			RoomID: room.ID,
			File:   *found,
			Data:   payload,
		})
		return nil
	})
}
