package handler

import (
	"context"
	stdErrors "errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	realtimeDto "github.com/johnquangdev/interview-realtime/internal/adapter/dto/realtime"
	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	"github.com/johnquangdev/interview-realtime/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/interview-realtime/internal/infrastructure/realtime"
	"github.com/johnquangdev/interview-realtime/internal/usecase/session"
	"github.com/johnquangdev/interview-realtime/pkg/config"
)

// Realtime serves the WebSocket endpoint and dispatches decoded frames to the hub
type Realtime struct {
	hub       *session.Hub
	validator realtimeDto.Validator
	cfg       config.RealtimeConfig
	upgrader  websocket.Upgrader
	logger    *zap.Logger

	mu    sync.Mutex
	conns map[string]*realtime.Connection
	wg    sync.WaitGroup
}

// NewRealtime creates the WebSocket handler. allowedOrigins empty accepts any origin.
func NewRealtime(hub *session.Hub, validator realtimeDto.Validator, cfg config.RealtimeConfig, allowedOrigins []string, logger *zap.Logger) *Realtime {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Realtime{
		hub:       hub,
		validator: validator,
		cfg:       cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
		conns:  make(map[string]*realtime.Connection),
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// Serve godoc
// @Summary      Open a realtime session
// @Description  Upgrades to a WebSocket carrying JSON frames {"event": "...", "data": {...}}. The bearer token may be passed as the token query parameter.
// @Tags         realtime
// @Param        token  query  string  false  "Access token"
// @Success      101
// @Failure      401  {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /ws [get]
func (h *Realtime) Serve(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return HandleError(h.logger, c, apperrors.ErrUnauthenticated())
	}

	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the response
		h.logger.Warn("⚠️ WebSocket upgrade failed", zap.String("user_id", userID), zap.Error(err))
		return nil
	}

	conn := realtime.NewConnection(userID, ws, h.cfg.SendBufferSize)
	conn.Start()
	h.track(conn)
	defer h.untrack(conn)

	logger := h.logger.With(
		zap.String("connection_id", conn.ID()),
		zap.String("user_id", userID),
	)

	// the hub outlives the upgrade request
	ctx := context.Background()
	if err := h.hub.Connect(ctx, conn); err != nil {
		logger.Error("❌ Failed to register connection", zap.Error(err))
		conn.Close(websocket.CloseInternalServerErr, "registration failed")
		return nil
	}
	logger.Info("🔌 Client connected", zap.String("remote_addr", c.RealIP()))

	reason := h.readLoop(ctx, conn, ws, logger)

	if err := h.hub.Disconnect(ctx, conn.ID(), reason); err != nil {
		logger.Error("❌ Disconnect cleanup failed", zap.Error(err))
	}
	conn.Close(websocket.CloseNormalClosure, realtime.CloseReasonSession)
	logger.Info("🔌 Client disconnected", zap.String("reason", reason))
	return nil
}

func (h *Realtime) track(conn *realtime.Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn.ID()] = conn
	h.wg.Add(1)
}

func (h *Realtime) untrack(conn *realtime.Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn.ID())
	h.wg.Done()
}

// Shutdown closes every open connection and waits for their cleanup to finish
func (h *Realtime) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	open := make([]*realtime.Connection, 0, len(h.conns))
	for _, conn := range h.conns {
		open = append(open, conn)
	}
	h.mu.Unlock()

	h.logger.Info("🛑 Closing realtime connections", zap.Int("connections", len(open)))
	for _, conn := range open {
		conn.Close(websocket.CloseGoingAway, realtime.CloseReasonShutdown)
	}

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// readLoop processes frames sequentially until the socket fails and returns the disconnect reason
func (h *Realtime) readLoop(ctx context.Context, conn *realtime.Connection, ws *websocket.Conn, logger *zap.Logger) string {
	if h.cfg.MaxFrameBytes > 0 {
		ws.SetReadLimit(h.cfg.MaxFrameBytes)
	}
	readTimeout := h.cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 60 * time.Second
	}
	_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return disconnectReason(conn, err)
		}
		_ = ws.SetReadDeadline(time.Now().Add(readTimeout))

		msg, err := realtimeDto.Decode(data, h.validator)
		if err != nil {
			h.replyError(conn, "", err, logger)
			continue
		}

		if err := h.dispatch(ctx, conn, msg); err != nil {
			h.replyError(conn, msg.EventName(), err, logger)
		}
	}
}

func disconnectReason(conn *realtime.Connection, err error) string {
	switch {
	case conn.CloseReason() == realtime.CloseReasonSlowConsumer:
		return session.ReasonSlowConsumer
	case conn.CloseReason() == realtime.CloseReasonShutdown:
		return session.ReasonServerClose
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived),
		stdErrors.Is(err, websocket.ErrCloseSent):
		return session.ReasonClientClosed
	default:
		return session.ReasonNetworkError
	}
}

// dispatch routes one decoded payload to the hub operation it names
func (h *Realtime) dispatch(ctx context.Context, conn *realtime.Connection, msg realtimeDto.Message) error {
	userID := conn.UserID()

	switch m := msg.(type) {
	case realtimeDto.JoinRoom:
		_, err := h.hub.JoinRoom(ctx, conn, session.JoinRoomInput{
			RoomID:      m.RoomID,
			InterviewID: m.InterviewID,
			UserInfo:    m.UserInfo,
		})
		return err

	case realtimeDto.LeaveRoom:
		return h.hub.LeaveRoom(ctx, userID, m.RoomID)

	case realtimeDto.Signal:
		return h.hub.Relay(ctx, userID, session.RelayInput{
			Kind:         session.SignalKind(m.Kind),
			RoomID:       m.RoomID,
			TargetUserID: m.TargetUserID,
			Payload:      m.Payload,
		})

	case realtimeDto.SendMessage:
		_, err := h.hub.SendMessage(ctx, userID, session.SendMessageInput{
			RoomID:  m.RoomID,
			Content: m.Content,
			Type:    entities.MessageType(m.MessageType),
			ReplyTo: m.ReplyToUUID(),
		})
		return err

	case realtimeDto.EditMessage:
		_, err := h.hub.EditMessage(ctx, userID, m.RoomID, m.MessageUUID(), m.Content)
		return err

	case realtimeDto.ReactMessage:
		return h.hub.ReactToMessage(ctx, userID, m.RoomID, m.MessageUUID(), m.Emoji)

	case realtimeDto.MarkRead:
		return h.hub.MarkRead(ctx, userID, m.RoomID, m.MessageUUID())

	case realtimeDto.Typing:
		return h.hub.SetTyping(ctx, userID, m.RoomID, m.IsTyping)

	case realtimeDto.ShareFile:
		_, err := h.hub.ShareFile(ctx, userID, session.ShareFileInput{
			RoomID:      m.RoomID,
			Info:        m.FileInfo,
			Payload:     m.Data,
			Description: m.Description,
		})
		return err

	case realtimeDto.RequestFile:
		return h.hub.RequestFile(ctx, userID, m.RoomID, m.FileUUID())

	case realtimeDto.StartRecording:
		var settings entities.RecordingSettings
		if m.Settings != nil {
			settings = *m.Settings
		}
		_, err := h.hub.StartRecording(ctx, userID, m.RoomID, settings)
		return err

	case realtimeDto.StopRecording:
		_, err := h.hub.StopRecording(ctx, userID, m.RoomID)
		return err

	case realtimeDto.ScreenShare:
		if m.Start {
			return h.hub.StartScreenShare(ctx, userID, m.RoomID)
		}
		return h.hub.StopScreenShare(ctx, userID, m.RoomID)

	case realtimeDto.MediaState:
		return h.hub.UpdateMedia(ctx, userID, m.RoomID, m.AudioEnabled, m.VideoEnabled)

	case realtimeDto.ConnectionQuality:
		_, err := h.hub.ReportQuality(ctx, userID, m.RoomID, m.Metrics)
		return err
	}

	return apperrors.ErrInvalidArgument("Unsupported event").WithDetail("event", msg.EventName())
}

// replyError sends an error event to the originating connection only
func (h *Realtime) replyError(conn *realtime.Connection, event string, err error, logger *zap.Logger) {
	appErr := apperrors.FromError(err)
	if appErr.HTTPCode >= http.StatusInternalServerError {
		logger.Error("❌ Realtime event failed", zap.String("event", event), zap.Error(err))
	} else {
		logger.Debug("⚠️ Realtime event rejected",
			zap.String("event", event),
			zap.Stringer("code", appErr.Code),
			zap.Error(err),
		)
	}

	payload := realtimeDto.ErrorPayload{
		Message:   appErr.Message,
		Code:      appErr.Code.String(),
		Event:     event,
		Details:   appErr.Details,
		Timestamp: appErr.Timestamp,
	}
	_ = conn.Send(session.EventError, payload)
}
