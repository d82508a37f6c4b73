package livekit

import (
	"net/http"

	"github.com/livekit/protocol/auth"
	livekit "github.com/livekit/protocol/livekit"
	"github.com/livekit/protocol/webhook"
)

// Webhook event names handled by the service
const (
	EventEgressStarted = "egress_started"
	EventEgressUpdated = "egress_updated"
	EventEgressEnded   = "egress_ended"
)

// WebhookReceiver verifies signed LiveKit webhook requests
type WebhookReceiver struct {
	keys auth.KeyProvider
}

// NewWebhookReceiver creates a receiver for webhooks signed with the API key pair
func NewWebhookReceiver(apiKey, apiSecret string) *WebhookReceiver {
	return &WebhookReceiver{keys: auth.NewSimpleKeyProvider(apiKey, apiSecret)}
}

// Receive validates the signature and decodes the event
func (w *WebhookReceiver) Receive(r *http.Request) (*livekit.WebhookEvent, error) {
	return webhook.ReceiveWebhookEvent(r, w.keys)
}
