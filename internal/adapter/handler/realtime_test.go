package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/interview-realtime/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/interview-realtime/internal/usecase/session"
	"github.com/johnquangdev/interview-realtime/pkg/config"
	"github.com/johnquangdev/interview-realtime/pkg/jwt"
	"github.com/johnquangdev/interview-realtime/pkg/validator"
)

type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type realtimeServer struct {
	*httptest.Server
	hub     *session.Hub
	handler *Realtime
}

func newRealtimeServer(t *testing.T) *realtimeServer {
	t.Helper()

	hub := session.NewHub(allowAll{}, discardStore{}, discardStore{}, session.Options{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	h := NewRealtime(hub, validator.New(), config.RealtimeConfig{
		SendBufferSize: 64,
		ReadTimeout:    5 * time.Second,
		MaxFrameBytes:  1 << 20,
	}, nil, nil)

	e := echo.New()
	e.GET("/ws", h.Serve, middleware.EchoAuth(jwt.NewVerifier(testSecret, testIssuer)))
	srv := httptest.NewServer(e)

	t.Cleanup(func() {
		srv.Close()
		cancel()
		<-hub.Done()
	})
	return &realtimeServer{Server: srv, hub: hub, handler: h}
}

func (s *realtimeServer) dial(t *testing.T, userID uuid.UUID) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws?token=" + signToken(t, userID, "candidate")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })

	readEvent(t, ws, session.EventConnected)
	return ws
}

func sendEvent(t *testing.T, ws *websocket.Conn, event string, data interface{}) {
	t.Helper()
	require.NoError(t, ws.WriteJSON(map[string]interface{}{"event": event, "data": data}))
}

// readEvent skips frames until one with the given event name arrives
func readEvent(t *testing.T, ws *websocket.Conn, event string) json.RawMessage {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var frame inboundFrame
		require.NoError(t, ws.ReadJSON(&frame))
		if frame.Event == event {
			return frame.Data
		}
	}
}

func joinRoom(t *testing.T, ws *websocket.Conn, name string) {
	t.Helper()
	sendEvent(t, ws, "join-room", map[string]interface{}{
		"room_id":      "room-1",
		"interview_id": "interview-1",
		"user_info":    map[string]string{"name": name},
	})
	readEvent(t, ws, session.EventRoomJoined)
}

func TestRealtimeRejectsMissingToken(t *testing.T) {
	srv := newRealtimeServer(t)

	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRealtimeChatBetweenTwoClients(t *testing.T) {
	srv := newRealtimeServer(t)
	alice := srv.dial(t, uuid.New())
	bobID := uuid.New()
	bob := srv.dial(t, bobID)

	joinRoom(t, alice, "Alice")
	joinRoom(t, bob, "Bob")

	var joined session.ParticipantJoinedEvent
	require.NoError(t, json.Unmarshal(readEvent(t, alice, session.EventParticipantJoined), &joined))
	assert.Equal(t, bobID.String(), joined.Participant.UserID)

	sendEvent(t, alice, "send-message", map[string]string{"room_id": "room-1", "content": "hello"})

	for _, ws := range []*websocket.Conn{alice, bob} {
		var msg session.MessageEvent
		require.NoError(t, json.Unmarshal(readEvent(t, ws, session.EventNewMessage), &msg))
		assert.Equal(t, "hello", msg.Message.Content)
	}
}

func TestRealtimeInvalidFrameKeepsConnectionOpen(t *testing.T) {
	srv := newRealtimeServer(t)
	alice := srv.dial(t, uuid.New())

	require.NoError(t, alice.WriteMessage(websocket.TextMessage, []byte(`{"event":"leave-room","data":{}}`)))

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(readEvent(t, alice, session.EventError), &payload))
	assert.Equal(t, "INVALID_ARGUMENT", payload.Code)

	sendEvent(t, alice, "send-message", map[string]string{"room_id": "nowhere", "content": "hi"})
	require.NoError(t, json.Unmarshal(readEvent(t, alice, session.EventError), &payload))
	assert.Equal(t, "ROOM_NOT_FOUND", payload.Code)

	joinRoom(t, alice, "Alice")
}

func TestRealtimeClientCloseRunsCleanup(t *testing.T) {
	srv := newRealtimeServer(t)
	aliceID := uuid.New()
	alice := srv.dial(t, aliceID)
	bob := srv.dial(t, uuid.New())
	joinRoom(t, alice, "Alice")
	joinRoom(t, bob, "Bob")

	require.NoError(t, alice.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")))

	var ev session.ParticipantDisconnectedEvent
	require.NoError(t, json.Unmarshal(readEvent(t, bob, session.EventParticipantDisconnected), &ev))
	assert.Equal(t, aliceID.String(), ev.UserID)
	assert.Equal(t, session.ReasonClientClosed, ev.Reason)

	room, err := srv.hub.RoomByID(context.Background(), "room-1")
	require.NoError(t, err)
	assert.Equal(t, 1, room.ParticipantCount)
}

func TestRealtimeShutdownClosesConnections(t *testing.T) {
	srv := newRealtimeServer(t)
	alice := srv.dial(t, uuid.New())
	joinRoom(t, alice, "Alice")

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, srv.handler.Shutdown(ctx))

	count, err := srv.hub.ParticipantCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, alice.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		if _, _, err := alice.ReadMessage(); err != nil {
			assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), err.Error())
			break
		}
	}
}
