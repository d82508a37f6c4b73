package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/interview-realtime/internal/usecase/errors"
)

func messageIDs(h *fakeHandle) []uuid.UUID {
	var ids []uuid.UUID
	for _, ev := range h.named(EventNewMessage) {
		ids = append(ids, ev.(MessageEvent).Message.ID)
	}
	return ids
}

func TestSendMessageBroadcastsToEveryoneIncludingSender(t *testing.T) {
	th := newTestHub(t, Options{})
	alice := th.admit(t, "alice", "r1", "i1", entities.DefaultPermissions())
	bob := th.admit(t, "bob", "r1", "i1", entities.DefaultPermissions())

	msg, err := th.SendMessage(context.Background(), "alice", SendMessageInput{RoomID: "r1", Content: "hello"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, msg.ID)
	assert.Equal(t, entities.MessageTypeText, msg.Type)
	assert.Equal(t, "user alice", msg.SenderName)
	assert.Equal(t, "i1", msg.InterviewID)

	assert.Equal(t, []uuid.UUID{msg.ID}, messageIDs(alice))
	assert.Equal(t, []uuid.UUID{msg.ID}, messageIDs(bob))

	th.store.mu.Lock()
	defer th.store.mu.Unlock()
	require.Len(t, th.store.messages, 1)
	assert.Equal(t, "hello", th.store.messages[0].Content)
}

func TestSendMessageOrderIsIdenticalForAllObservers(t *testing.T) {
	th := newTestHub(t, Options{})
	users := []string{"alice", "bob", "carol"}
	handles := make([]*fakeHandle, len(users))
	for i, u := range users {
		handles[i] = th.admit(t, u, "r1", "i1", entities.DefaultPermissions())
	}

	var wg sync.WaitGroup
	for _, u := range users {
		wg.Add(1)
		go func(sender string) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				_, err := th.SendMessage(context.Background(), sender, SendMessageInput{
					RoomID:  "r1",
					Content: fmt.Sprintf("%s-%d", sender, i),
				})
				assert.NoError(t, err)
			}
		}(u)
	}
	wg.Wait()

	reference := messageIDs(handles[0])
	require.Len(t, reference, 60)
	for _, h := range handles[1:] {
		assert.Equal(t, reference, messageIDs(h))
	}

	var prev entities.ChatMessage
	for i, ev := range handles[0].named(EventNewMessage) {
		msg := ev.(MessageEvent).Message
		if i > 0 {
			assert.True(t, msg.CreatedAt.After(prev.CreatedAt), "creation times must strictly increase")
		}
		prev = msg
	}
}

func TestSendMessageHistoryIsBounded(t *testing.T) {
	th := newTestHub(t, Options{ChatHistoryLimit: 5, JoinHistorySize: 5})
	th.admit(t, "alice", "r1", "i1", entities.DefaultPermissions())
	for i := 0; i < 8; i++ {
		_, err := th.SendMessage(context.Background(), "alice", SendMessageInput{RoomID: "r1", Content: fmt.Sprintf("m%d", i)})
		require.NoError(t, err)
	}

	room, err := th.RoomByID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, 5, room.MessageCount)
}

func TestSendMessageRejectsNonMembersAndBadInput(t *testing.T) {
	th := newTestHub(t, Options{})
	th.admit(t, "alice", "r1", "i1", entities.DefaultPermissions())
	th.connect(t, "mallory")

	_, err := th.SendMessage(context.Background(), "mallory", SendMessageInput{RoomID: "r1", Content: "hi"})
	assertCode(t, err, apperrors.ErrorCode_PERMISSION_DENIED)

	_, err = th.SendMessage(context.Background(), "alice", SendMessageInput{RoomID: "r1", Content: "   "})
	assertCode(t, err, apperrors.ErrorCode_INVALID_ARGUMENT)

	_, err = th.SendMessage(context.Background(), "alice", SendMessageInput{RoomID: "r1", Content: "x", Type: "video"})
	assertCode(t, err, apperrors.ErrorCode_INVALID_ARGUMENT)

	th.store.mu.Lock()
	defer th.store.mu.Unlock()
	assert.Empty(t, th.store.messages)
}

func TestTypingExcludesOriginator(t *testing.T) {
	th := newTestHub(t, Options{})
	alice := th.admit(t, "alice", "r1", "i1", entities.DefaultPermissions())
	bob := th.admit(t, "bob", "r1", "i1", entities.DefaultPermissions())

	require.NoError(t, th.SetTyping(context.Background(), "alice", "r1", true))
	require.NoError(t, th.SetTyping(context.Background(), "alice", "r1", false))

	assert.Equal(t, 0, alice.count(EventUserTyping))
	events := bob.named(EventUserTyping)
	require.Len(t, events, 2)
	assert.True(t, events[0].(UserTypingEvent).IsTyping)
	assert.False(t, events[1].(UserTypingEvent).IsTyping)

	th.store.mu.Lock()
	defer th.store.mu.Unlock()
	assert.Empty(t, th.store.messages)
}

func TestEditMessageOnlyBySender(t *testing.T) {
	th := newTestHub(t, Options{})
	th.admit(t, "alice", "r1", "i1", entities.DefaultPermissions())
	bob := th.admit(t, "bob", "r1", "i1", entities.DefaultPermissions())

	msg, err := th.SendMessage(context.Background(), "alice", SendMessageInput{RoomID: "r1", Content: "helo"})
	require.NoError(t, err)

	_, err = th.EditMessage(context.Background(), "bob", "r1", msg.ID, "hacked")
	assertCode(t, err, apperrors.ErrorCode_PERMISSION_DENIED)
	assert.True(t, errors.Is(err, usecaseErrors.ErrNotMessageSender))

	edited, err := th.EditMessage(context.Background(), "alice", "r1", msg.ID, "hello")
	require.NoError(t, err)
	assert.True(t, edited.Edited)
	assert.NotNil(t, edited.EditedAt)
	assert.Equal(t, "hello", edited.Content)

	events := bob.named(EventMessageEdited)
	require.Len(t, events, 1)
	assert.Equal(t, "hello", events[0].(MessageEvent).Message.Content)

	_, err = th.EditMessage(context.Background(), "alice", "r1", uuid.New(), "x")
	assertCode(t, err, apperrors.ErrorCode_NOT_FOUND)
}

func TestReactToMessageToggles(t *testing.T) {
	th := newTestHub(t, Options{})
	alice := th.admit(t, "alice", "r1", "i1", entities.DefaultPermissions())
	th.admit(t, "bob", "r1", "i1", entities.DefaultPermissions())

	msg, err := th.SendMessage(context.Background(), "alice", SendMessageInput{RoomID: "r1", Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, th.ReactToMessage(context.Background(), "bob", "r1", msg.ID, "👍"))
	require.NoError(t, th.ReactToMessage(context.Background(), "bob", "r1", msg.ID, "👍"))

	events := alice.named(EventMessageReaction)
	require.Len(t, events, 2)
	first := events[0].(MessageReactionEvent)
	assert.True(t, first.Added)
	assert.Len(t, first.Reactions, 1)
	second := events[1].(MessageReactionEvent)
	assert.False(t, second.Added)
	assert.Empty(t, second.Reactions)
}

func TestMarkReadRecordsReaderOnce(t *testing.T) {
	th := newTestHub(t, Options{})
	alice := th.admit(t, "alice", "r1", "i1", entities.DefaultPermissions())
	th.admit(t, "bob", "r1", "i1", entities.DefaultPermissions())

	msg, err := th.SendMessage(context.Background(), "alice", SendMessageInput{RoomID: "r1", Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, th.MarkRead(context.Background(), "bob", "r1", msg.ID))
	require.NoError(t, th.MarkRead(context.Background(), "bob", "r1", msg.ID))

	events := alice.named(EventMessageRead)
	require.Len(t, events, 1)
	assert.Equal(t, "bob", events[0].(MessageReadEvent).UserID)

	th.store.mu.Lock()
	defer th.store.mu.Unlock()
	last := th.store.messages[len(th.store.messages)-1]
	assert.Equal(t, []string{"bob"}, []string(last.ReadBy))
}
