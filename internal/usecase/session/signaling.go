package session

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	usecaseErrors "github.com/johnquangdev/interview-realtime/internal/usecase/errors"
)

// RelayInput is one negotiation message addressed to a peer
type RelayInput struct {
	Kind         SignalKind
	RoomID       string
	TargetUserID string
	Payload      json.RawMessage
}

// Relay forwards an offer, answer or ICE candidate to the target's live handle.
// Both users must be in the room. Nothing is queued when the target is unreachable.
func (h *Hub) Relay(ctx context.Context, senderID string, in RelayInput) error {
	if !in.Kind.Valid() {
		return apperrors.ErrInvalidArgument("unknown signaling message").
			WithDetail("event", string(in.Kind)).
			WithCause(usecaseErrors.ErrInvalidInput)
	}

	return h.exec(ctx, string(in.Kind), func() error {
		room, _, err := h.member(in.RoomID, senderID, string(in.Kind))
		if err != nil {
			return err
		}

		target := room.Participant(in.TargetUserID)
		if target == nil {
			return apperrors.ErrTargetUnavailable(in.TargetUserID).WithCause(usecaseErrors.ErrTargetNotInRoom)
		}
		handle, ok := h.registry.LookupHandle(in.TargetUserID)
		if !ok {
			return targetUnavailable(in.TargetUserID)
		}

		if !h.deliver(handle, string(in.Kind), SignalEvent{
			RoomID:     room.ID,
			FromUserID: senderID,
			Payload:    in.Payload,
		}) {
			return targetUnavailable(in.TargetUserID)
		}

		h.logger.Debug("📡 Relayed signaling message",
			zap.String("room_id", room.ID),
			zap.String("kind", string(in.Kind)),
			zap.String("from_user_id", senderID),
			zap.String("target_user_id", in.TargetUserID),
		)
		return nil
	})
}
