package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	"github.com/johnquangdev/interview-realtime/internal/adapter/presenter"
	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	"github.com/johnquangdev/interview-realtime/internal/usecase/archive"
)

// ArchiveReader reads back what the persistence gateway stored
type ArchiveReader interface {
	ChatHistory(ctx context.Context, roomID string, limit int) ([]*entities.ChatMessage, error)
	InterviewFiles(ctx context.Context, interviewID string) ([]*entities.FileShareRecord, error)
	Recording(ctx context.Context, id uuid.UUID) (*entities.RecordingSession, error)
	MetricsSince(ctx context.Context, since time.Time) ([]*entities.MetricsSnapshot, error)
}

// Archive handles operator HTTP requests against stored session data
type Archive struct {
	archive ArchiveReader
	logger  *zap.Logger
	now     func() time.Time
}

// NewArchiveHandler creates a new archive handler
func NewArchiveHandler(reader ArchiveReader, logger *zap.Logger) *Archive {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archive{
		archive: reader,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ChatHistory handles GET /admin/rooms/:id/messages
// @Summary      Stored chat history of a room
// @Tags         Archive
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Room ID"
// @Param        limit  query     int     false  "Maximum number of messages"
// @Success      200    {object}  admin.ChatHistoryResponse
// @Failure      400    {object}  common.ErrorResponse
// @Router       /admin/rooms/{id}/messages [get]
func (h *Archive) ChatHistory(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return HandleError(h.logger, c, apperrors.ErrInvalidArgument("limit must be an integer").WithDetail("limit", raw))
		}
		limit = n
	}

	roomID := c.Param("id")
	messages, err := h.archive.ChatHistory(c.Request().Context(), roomID, limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToChatHistoryResponse(roomID, messages))
}

// InterviewFiles handles GET /admin/interviews/:id/files
// @Summary      Files shared during an interview
// @Tags         Archive
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Interview ID"
// @Success      200  {object}  admin.FileListResponse
// @Router       /admin/interviews/{id}/files [get]
func (h *Archive) InterviewFiles(c echo.Context) error {
	interviewID := c.Param("id")
	records, err := h.archive.InterviewFiles(c.Request().Context(), interviewID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToFileListResponse(interviewID, records))
}

// GetRecording handles GET /admin/recordings/:id
// @Summary      Get a stored recording session
// @Tags         Archive
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Recording ID"
// @Success      200  {object}  admin.RecordingDetailResponse
// @Failure      400  {object}  common.ErrorResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /admin/recordings/{id} [get]
func (h *Archive) GetRecording(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("recording id must be a UUID").WithDetail("recording_id", c.Param("id")))
	}

	rec, err := h.archive.Recording(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToRecordingDetailResponse(rec))
}

// Metrics handles GET /admin/metrics
// @Summary      Health snapshots recorded since a point in time
// @Tags         Archive
// @Produce      json
// @Security     BearerAuth
// @Param        since  query     string  false  "RFC3339 timestamp, defaults to one hour ago"
// @Success      200    {object}  admin.MetricsResponse
// @Failure      400    {object}  common.ErrorResponse
// @Router       /admin/metrics [get]
func (h *Archive) Metrics(c echo.Context) error {
	since := h.now().Add(-archive.DefaultMetricsSpan)
	if raw := c.QueryParam("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return HandleError(h.logger, c, apperrors.ErrInvalidArgument("since must be an RFC3339 timestamp").WithDetail("since", raw))
		}
		since = t.UTC()
	}

	snapshots, err := h.archive.MetricsSince(c.Request().Context(), since)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMetricsResponse(since, snapshots))
}
