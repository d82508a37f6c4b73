package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/interview-realtime/internal/usecase/errors"
)

func TestJoinRoomCreatesRoomAndGreetsJoiner(t *testing.T) {
	th := newTestHub(t, Options{})
	th.authz.allow("alice", "i1", entities.DefaultPermissions())
	alice := th.connect(t, "alice")

	joined := th.join(t, alice, "r1", "i1")
	assert.Equal(t, "r1", joined.Room.ID)
	assert.Equal(t, "i1", joined.Room.InterviewID)
	assert.Equal(t, 1, joined.Room.ParticipantCount)
	assert.Empty(t, joined.Messages)
	assert.Empty(t, joined.Files)

	require.Equal(t, 1, alice.count(EventRoomJoined))
	assert.Equal(t, 0, alice.count(EventParticipantJoined))

	p := joined.Room.Participants[0]
	assert.Equal(t, alice.ID(), p.HandleID)
	assert.Equal(t, entities.ConnectionStatusConnected, p.Status)
	assert.Equal(t, entities.DefaultMediaState(), p.Media)
	assert.Equal(t, entities.DefaultPermissions(), p.Permissions)
}

func TestJoinRoomNotifiesExistingMembers(t *testing.T) {
	th := newTestHub(t, Options{})
	alice := th.admit(t, "alice", "r1", "i1", entities.DefaultPermissions())
	bob := th.admit(t, "bob", "r1", "i1", entities.DefaultPermissions())

	events := alice.named(EventParticipantJoined)
	require.Len(t, events, 1)
	assert.Equal(t, "bob", events[0].(ParticipantJoinedEvent).Participant.UserID)
	assert.Equal(t, 0, bob.count(EventParticipantJoined))

	room, err := th.RoomByID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, 2, room.ParticipantCount)
}

func TestJoinRoomUnauthorizedLeavesNoTrace(t *testing.T) {
	th := newTestHub(t, Options{})
	alice := th.admit(t, "alice", "r1", "i1", entities.DefaultPermissions())
	mallory := th.connect(t, "mallory")

	for _, roomID := range []string{"r1", "r2"} {
		_, err := th.JoinRoom(context.Background(), mallory, JoinRoomInput{RoomID: roomID, InterviewID: "i1"})
		assertCode(t, err, apperrors.ErrorCode_AUTHORIZATION_FAILED)
		assert.True(t, errors.Is(err, usecaseErrors.ErrNotInterviewMember))
	}

	rooms, err := th.ActiveRooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, 1, rooms[0].ParticipantCount)
	assert.Equal(t, 0, alice.count(EventParticipantJoined))
	assert.Equal(t, 0, mallory.count(EventRoomJoined))
}

func TestJoinRoomAuthorizationFailureIsAuthorizationError(t *testing.T) {
	th := newTestHub(t, Options{})
	th.authz.err = errors.New("database is down")
	alice := th.connect(t, "alice")

	_, err := th.JoinRoom(context.Background(), alice, JoinRoomInput{RoomID: "r1", InterviewID: "i1"})
	assertCode(t, err, apperrors.ErrorCode_AUTHORIZATION_FAILED)

	_, err = th.RoomByID(context.Background(), "r1")
	assertCode(t, err, apperrors.ErrorCode_ROOM_NOT_FOUND)
}

func TestJoinRoomRejectsDifferentInterview(t *testing.T) {
	th := newTestHub(t, Options{})
	th.admit(t, "alice", "r1", "i1", entities.DefaultPermissions())
	th.authz.allow("bob", "i2", entities.DefaultPermissions())
	bob := th.connect(t, "bob")

	_, err := th.JoinRoom(context.Background(), bob, JoinRoomInput{RoomID: "r1", InterviewID: "i2"})
	assertCode(t, err, apperrors.ErrorCode_ROOM_INVALID_STATE)
	assert.True(t, errors.Is(err, usecaseErrors.ErrInterviewMismatch))
}

func TestJoinRoomAfterHandleClosedDuringAuthorization(t *testing.T) {
	th := newTestHub(t, Options{})
	th.authz.allow("alice", "i1", entities.DefaultPermissions())
	alice := th.connect(t, "alice")

	gate := make(chan struct{})
	th.authz.mu.Lock()
	th.authz.gate = gate
	th.authz.mu.Unlock()

	result := make(chan error, 1)
	go func() {
		_, err := th.JoinRoom(context.Background(), alice, JoinRoomInput{RoomID: "r1", InterviewID: "i1"})
		result <- err
	}()

	require.NoError(t, th.Disconnect(context.Background(), alice.ID(), ReasonNetworkError))
	close(gate)

	err := <-result
	assertCode(t, err, apperrors.ErrorCode_PERMISSION_DENIED)
	assert.True(t, errors.Is(err, usecaseErrors.ErrConnectionNotActive))

	rooms, err := th.ActiveRooms(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestJoinRoomReturnsRecentHistory(t *testing.T) {
	th := newTestHub(t, Options{JoinHistorySize: 3})
	th.admit(t, "alice", "r1", "i1", entities.DefaultPermissions())
	for i := 0; i < 5; i++ {
		_, err := th.SendMessage(context.Background(), "alice", SendMessageInput{RoomID: "r1", Content: fmt.Sprintf("m%d", i)})
		require.NoError(t, err)
	}

	th.authz.allow("bob", "i1", entities.DefaultPermissions())
	bob := th.connect(t, "bob")
	joined := th.join(t, bob, "r1", "i1")

	require.Len(t, joined.Messages, 3)
	assert.Equal(t, "m2", joined.Messages[0].Content)
	assert.Equal(t, "m4", joined.Messages[2].Content)
}

func TestRejoinReplacesParticipant(t *testing.T) {
	th := newTestHub(t, Options{})
	th.admit(t, "alice", "r1", "i1", entities.DefaultPermissions())

	second := th.connect(t, "alice")
	joined := th.join(t, second, "r1", "i1")

	require.Equal(t, 1, joined.Room.ParticipantCount)
	assert.Equal(t, second.ID(), joined.Room.Participants[0].HandleID)
}

func TestLeaveRoomDisposesEmptyRoom(t *testing.T) {
	th := newTestHub(t, Options{})
	alice := th.admit(t, "alice", "r1", "i1", entities.DefaultPermissions())
	th.admit(t, "bob", "r1", "i1", entities.DefaultPermissions())

	require.NoError(t, th.LeaveRoom(context.Background(), "bob", "r1"))
	left := alice.named(EventParticipantLeft)
	require.Len(t, left, 1)
	assert.Equal(t, "bob", left[0].(ParticipantLeftEvent).UserID)

	require.NoError(t, th.LeaveRoom(context.Background(), "alice", "r1"))
	_, err := th.RoomByID(context.Background(), "r1")
	assertCode(t, err, apperrors.ErrorCode_ROOM_NOT_FOUND)

	count, err := th.ParticipantCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestLeaveRoomIsNoopWhenAbsent(t *testing.T) {
	th := newTestHub(t, Options{})
	th.admit(t, "alice", "r1", "i1", entities.DefaultPermissions())

	assert.NoError(t, th.LeaveRoom(context.Background(), "bob", "r1"))
	assert.NoError(t, th.LeaveRoom(context.Background(), "alice", "missing"))

	room, err := th.RoomByID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, 1, room.ParticipantCount)
}

func TestActiveRoomsOrderedByCreation(t *testing.T) {
	th := newTestHub(t, Options{})
	th.admit(t, "alice", "r-b", "i1", entities.DefaultPermissions())
	th.admit(t, "bob", "r-a", "i2", entities.DefaultPermissions())

	rooms, err := th.ActiveRooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.False(t, rooms[1].CreatedAt.Before(rooms[0].CreatedAt))
}
