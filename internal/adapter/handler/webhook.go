package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	livekitProto "github.com/livekit/protocol/livekit"
	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protojson"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	"github.com/johnquangdev/interview-realtime/internal/infrastructure/external/livekit"
)

// EventReceiver verifies and decodes a signed webhook request
type EventReceiver interface {
	Receive(r *http.Request) (*livekitProto.WebhookEvent, error)
}

// EgressEventHandler applies egress state reported by LiveKit
type EgressEventHandler interface {
	HandleEgressEvent(ctx context.Context, event string, result *livekit.EgressResult) error
}

// WebhookHandler handles LiveKit webhook events
type WebhookHandler struct {
	receiver EventReceiver
	capture  EgressEventHandler
	logger   *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(receiver EventReceiver, capture EgressEventHandler, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{
		receiver: receiver,
		capture:  capture,
		logger:   logger,
	}
}

// HandleLiveKitWebhook processes LiveKit webhook events with signature validation
// @Summary      LiveKit Webhook
// @Description  Receives signed egress events from LiveKit and advances the matching recording
// @Tags         Webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  common.SuccessResponse
// @Failure      401  {object}  common.ErrorResponse
// @Router       /webhooks/livekit [post]
func (h *WebhookHandler) HandleLiveKitWebhook(c echo.Context) error {
	event, err := h.receiver.Receive(c.Request())
	if err != nil {
		h.logger.Warn("⚠️ Rejected LiveKit webhook", zap.Error(err))
		return HandleError(h.logger, c, apperrors.ErrInvalidToken().WithCause(err))
	}

	h.logger.Info("📥 LiveKit webhook received",
		zap.String("event", event.GetEvent()),
		zap.String("event_id", event.GetId()),
	)
	if ce := h.logger.Check(zap.DebugLevel, "LiveKit webhook payload"); ce != nil {
		if raw, err := protojson.Marshal(event); err == nil {
			ce.Write(zap.ByteString("payload", raw))
		}
	}

	switch event.GetEvent() {
	case livekit.EventEgressStarted, livekit.EventEgressUpdated, livekit.EventEgressEnded:
	default:
		return HandleSuccess(h.logger, c, map[string]string{"status": "ignored"})
	}

	info := event.GetEgressInfo()
	if info == nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Egress event without egress info"))
	}

	result := livekit.ResultFromInfo(info)
	if err := h.capture.HandleEgressEvent(c.Request().Context(), event.GetEvent(), result); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"status": "processed"})
}
