package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	"github.com/johnquangdev/interview-realtime/internal/adapter/dto/admin"
	"github.com/johnquangdev/interview-realtime/internal/adapter/presenter"
	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	"github.com/johnquangdev/interview-realtime/internal/usecase/session"
)

// SessionAdmin is the administrative view of the session hub
type SessionAdmin interface {
	ActiveRooms(ctx context.Context) ([]entities.RoomSnapshot, error)
	RoomByID(ctx context.Context, roomID string) (entities.RoomSnapshot, error)
	ParticipantCount(ctx context.Context) (int, error)
	BroadcastToRoom(ctx context.Context, roomID, event string, data interface{}) (int, error)
	SendToUser(ctx context.Context, userID, event string, data interface{}) error
	Stats(ctx context.Context) (session.HealthStats, error)
}

// Pinger is a backing service the health report checks
type Pinger interface {
	Ping(ctx context.Context) error
}

// MembershipCache drops cached interview membership decisions
type MembershipCache interface {
	Invalidate(ctx context.Context, userID, interviewID string) error
}

const pingTimeout = 2 * time.Second

// Admin handles operator HTTP requests against live rooms
type Admin struct {
	sessions    SessionAdmin
	environment string
	logger      *zap.Logger

	dependencies map[string]Pinger
	memberships  MembershipCache
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(sessions SessionAdmin, environment string, logger *zap.Logger) *Admin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Admin{
		sessions:     sessions,
		environment:  environment,
		logger:       logger,
		dependencies: make(map[string]Pinger),
	}
}

// WithMembershipCache enables the membership invalidation route
func (h *Admin) WithMembershipCache(cache MembershipCache) *Admin {
	h.memberships = cache
	return h
}

// WithDependency adds a backing service to the health report
func (h *Admin) WithDependency(name string, p Pinger) *Admin {
	h.dependencies[name] = p
	return h
}

// ListRooms handles GET /admin/rooms
// @Summary      List live rooms
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  admin.RoomListResponse
// @Failure      401  {object}  common.ErrorResponse
// @Failure      403  {object}  common.ErrorResponse
// @Router       /admin/rooms [get]
func (h *Admin) ListRooms(c echo.Context) error {
	rooms, err := h.sessions.ActiveRooms(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToRoomListResponse(rooms))
}

// GetRoom handles GET /admin/rooms/:id
// @Summary      Get a live room
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Room ID"
// @Success      200  {object}  admin.RoomResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /admin/rooms/{id} [get]
func (h *Admin) GetRoom(c echo.Context) error {
	room, err := h.sessions.RoomByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToRoomResponse(room))
}

// ParticipantCount handles GET /admin/participants/count
// @Summary      Count participants across live rooms
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  admin.ParticipantCountResponse
// @Router       /admin/participants/count [get]
func (h *Admin) ParticipantCount(c echo.Context) error {
	count, err := h.sessions.ParticipantCount(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, admin.ParticipantCountResponse{Count: count})
}

// BroadcastToRoom handles POST /admin/rooms/:id/broadcast
// @Summary      Broadcast an event to a live room
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                  true  "Room ID"
// @Param        request  body      admin.BroadcastRequest  true  "Event to broadcast"
// @Success      200      {object}  admin.BroadcastResponse
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Router       /admin/rooms/{id}/broadcast [post]
func (h *Admin) BroadcastToRoom(c echo.Context) error {
	var req admin.BroadcastRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	roomID := c.Param("id")
	delivered, err := h.sessions.BroadcastToRoom(c.Request().Context(), roomID, req.Event, rawData(req.Data))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.logger.Info("📣 Admin broadcast",
		zap.String("room_id", roomID),
		zap.String("event", req.Event),
		zap.Int("delivered", delivered),
	)
	return HandleSuccess(h.logger, c, admin.BroadcastResponse{
		RoomID:    roomID,
		Event:     req.Event,
		Delivered: delivered,
	})
}

// SendToUser handles POST /admin/users/:id/events
// @Summary      Send an event to one user's live connection
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                   true  "User ID"
// @Param        request  body      admin.SendToUserRequest  true  "Event to send"
// @Success      200      {object}  common.SuccessResponse
// @Failure      404      {object}  common.ErrorResponse
// @Router       /admin/users/{id}/events [post]
func (h *Admin) SendToUser(c echo.Context) error {
	var req admin.SendToUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.sessions.SendToUser(c.Request().Context(), c.Param("id"), req.Event, rawData(req.Data)); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"status": "sent"})
}

// Health handles GET /health
// @Summary      Liveness and live room counts
// @Tags         Health
// @Produce      json
// @Success      200  {object}  admin.HealthResponse
// @Router       /health [get]
func (h *Admin) Health(c echo.Context) error {
	stats, err := h.sessions.Stats(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	status := "ok"
	var deps map[string]string
	if len(h.dependencies) > 0 {
		deps = make(map[string]string, len(h.dependencies))
	}
	for name, p := range h.dependencies {
		ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
		err := p.Ping(ctx)
		cancel()
		if err != nil {
			h.logger.Warn("⚠️ Health dependency unreachable", zap.String("dependency", name), zap.Error(err))
			deps[name] = "unreachable"
			status = "degraded"
			continue
		}
		deps[name] = "ok"
	}

	return HandleSuccess(h.logger, c, admin.HealthResponse{
		Status:       status,
		Environment:  h.environment,
		ActiveRooms:  stats.ActiveRooms,
		Participants: stats.Participants,
		Connections:  stats.Connections,
		Dependencies: deps,
		Time:         time.Now().UTC(),
	})
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.ErrInvalidPayload(err)
	}
	if err := c.Validate(req); err != nil {
		return apperrors.ErrInvalidArgument(err.Error()).WithCause(err)
	}
	return nil
}

// rawData keeps an absent body field absent on the wire
func rawData(data []byte) interface{} {
	if len(data) == 0 {
		return nil
	}
	return json.RawMessage(data)
}

// InvalidateMembership handles DELETE /admin/interviews/:id/members/:user_id/cache
// @Summary      Drop a cached membership decision
// @Description  The next join by this user re-reads interview membership from the database
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Interview ID"
// @Param        user_id  path      string  true  "User ID"
// @Success      200      {object}  common.SuccessResponse
// @Failure      500      {object}  common.ErrorResponse
// @Router       /admin/interviews/{id}/members/{user_id}/cache [delete]
func (h *Admin) InvalidateMembership(c echo.Context) error {
	interviewID, userID := c.Param("id"), c.Param("user_id")
	if err := h.memberships.Invalidate(c.Request().Context(), userID, interviewID); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}

	h.logger.Info("🧹 Membership cache invalidated",
		zap.String("interview_id", interviewID),
		zap.String("user_id", userID),
	)
	return HandleSuccess(h.logger, c, map[string]string{"status": "invalidated"})
}
