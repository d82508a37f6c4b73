package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	livekitProto "github.com/livekit/protocol/livekit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	"github.com/johnquangdev/interview-realtime/internal/infrastructure/external/livekit"
)

type stubReceiver struct {
	event *livekitProto.WebhookEvent
	err   error
}

func (s stubReceiver) Receive(r *http.Request) (*livekitProto.WebhookEvent, error) {
	return s.event, s.err
}

type recordingCapture struct {
	event  string
	result *livekit.EgressResult
	err    error
}

func (r *recordingCapture) HandleEgressEvent(ctx context.Context, event string, result *livekit.EgressResult) error {
	r.event, r.result = event, result
	return r.err
}

func postWebhook(h *WebhookHandler) *httptest.ResponseRecorder {
	e := echo.New()
	e.POST("/v1/webhooks/livekit", h.HandleLiveKitWebhook)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/webhooks/livekit", nil))
	return rec
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	capture := &recordingCapture{}
	rec := postWebhook(NewWebhookHandler(stubReceiver{err: errors.New("invalid signature")}, capture, nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, capture.event)
}

func TestWebhookAppliesEgressEnded(t *testing.T) {
	capture := &recordingCapture{}
	event := &livekitProto.WebhookEvent{
		Event: livekit.EventEgressEnded,
		Id:    "EV_1",
		EgressInfo: &livekitProto.EgressInfo{
			EgressId: "EG_1",
			Status:   livekitProto.EgressStatus_EGRESS_COMPLETE,
			FileResults: []*livekitProto.FileInfo{
				{Location: "s3://bucket/interview-1/rec.mp4"},
			},
		},
	}

	rec := postWebhook(NewWebhookHandler(stubReceiver{event: event}, capture, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, livekit.EventEgressEnded, capture.event)
	require.NotNil(t, capture.result)
	assert.Equal(t, "EG_1", capture.result.EgressID)
	assert.True(t, capture.result.Final)
	assert.True(t, capture.result.Success)
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	capture := &recordingCapture{}
	rec := postWebhook(NewWebhookHandler(stubReceiver{event: &livekitProto.WebhookEvent{Event: "room_started"}}, capture, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ignored")
	assert.Empty(t, capture.event)
}

func TestWebhookUnknownEgress(t *testing.T) {
	capture := &recordingCapture{err: apperrors.ErrNotFound("Recording")}
	event := &livekitProto.WebhookEvent{
		Event:      livekit.EventEgressUpdated,
		EgressInfo: &livekitProto.EgressInfo{EgressId: "EG_missing", Status: livekitProto.EgressStatus_EGRESS_ACTIVE},
	}

	rec := postWebhook(NewWebhookHandler(stubReceiver{event: event}, capture, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
