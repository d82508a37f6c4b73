package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/interview-realtime/internal/usecase/errors"
)

func TestRelayForwardsToTarget(t *testing.T) {
	th := newTestHub(t, Options{})
	alice := th.admit(t, "alice", "r1", "i1", entities.DefaultPermissions())
	bob := th.admit(t, "bob", "r1", "i1", entities.DefaultPermissions())

	payload := json.RawMessage(`{"type":"offer","sdp":"v=0"}`)
	for _, kind := range []SignalKind{SignalOffer, SignalICECandidate} {
		err := th.Relay(context.Background(), "alice", RelayInput{
			Kind:         kind,
			RoomID:       "r1",
			TargetUserID: "bob",
			Payload:      payload,
		})
		require.NoError(t, err)
	}

	offers := bob.named(EventOffer)
	require.Len(t, offers, 1)
	ev := offers[0].(SignalEvent)
	assert.Equal(t, "alice", ev.FromUserID)
	assert.JSONEq(t, string(payload), string(ev.Payload))
	assert.Equal(t, 1, bob.count(EventICECandidate))
	assert.Equal(t, 0, alice.count(EventOffer))
}

func TestRelayTargetNotInRoom(t *testing.T) {
	th := newTestHub(t, Options{})
	th.admit(t, "alice", "r1", "i1", entities.DefaultPermissions())
	carol := th.admit(t, "carol", "r2", "i1", entities.DefaultPermissions())

	err := th.Relay(context.Background(), "alice", RelayInput{Kind: SignalAnswer, RoomID: "r1", TargetUserID: "carol"})
	assertCode(t, err, apperrors.ErrorCode_TARGET_UNAVAILABLE)
	assert.Equal(t, 0, carol.count(EventAnswer))
}

func TestRelayTargetDisconnected(t *testing.T) {
	th := newTestHub(t, Options{})
	th.admit(t, "alice", "r1", "i1", entities.DefaultPermissions())
	bob := th.admit(t, "bob", "r1", "i1", entities.DefaultPermissions())
	require.NoError(t, th.Disconnect(context.Background(), bob.ID(), ReasonNetworkError))

	err := th.Relay(context.Background(), "alice", RelayInput{Kind: SignalOffer, RoomID: "r1", TargetUserID: "bob"})
	assertCode(t, err, apperrors.ErrorCode_TARGET_UNAVAILABLE)
}

func TestRelayTargetHandleRejectsSend(t *testing.T) {
	th := newTestHub(t, Options{})
	th.admit(t, "alice", "r1", "i1", entities.DefaultPermissions())
	bob := th.admit(t, "bob", "r1", "i1", entities.DefaultPermissions())
	bob.close()

	err := th.Relay(context.Background(), "alice", RelayInput{Kind: SignalOffer, RoomID: "r1", TargetUserID: "bob"})
	assertCode(t, err, apperrors.ErrorCode_TARGET_UNAVAILABLE)
	assert.True(t, errors.Is(err, usecaseErrors.ErrTargetUnavailable))
}

func TestRelaySenderMustBeMember(t *testing.T) {
	th := newTestHub(t, Options{})
	bob := th.admit(t, "bob", "r1", "i1", entities.DefaultPermissions())
	th.admit(t, "mallory", "r2", "i2", entities.DefaultPermissions())

	err := th.Relay(context.Background(), "mallory", RelayInput{Kind: SignalOffer, RoomID: "r1", TargetUserID: "bob"})
	assertCode(t, err, apperrors.ErrorCode_PERMISSION_DENIED)
	assert.True(t, errors.Is(err, usecaseErrors.ErrNotParticipant))
	assert.Equal(t, 0, bob.count(EventOffer))
}

func TestRelayUnknownRoomAndKind(t *testing.T) {
	th := newTestHub(t, Options{})
	th.admit(t, "alice", "r1", "i1", entities.DefaultPermissions())

	err := th.Relay(context.Background(), "alice", RelayInput{Kind: SignalOffer, RoomID: "nope", TargetUserID: "bob"})
	assertCode(t, err, apperrors.ErrorCode_ROOM_NOT_FOUND)

	err = th.Relay(context.Background(), "alice", RelayInput{Kind: "renegotiate", RoomID: "r1", TargetUserID: "bob"})
	assertCode(t, err, apperrors.ErrorCode_INVALID_ARGUMENT)
}
