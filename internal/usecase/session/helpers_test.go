package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/interview-realtime/internal/usecase/errors"
)

var errHandleClosed = errors.New("handle closed")

type sentEvent struct {
	name string
	data interface{}
}

type fakeHandle struct {
	id     string
	userID string

	mu     sync.Mutex
	events []sentEvent
	closed bool
}

func newFakeHandle(userID string) *fakeHandle {
	return &fakeHandle{id: uuid.NewString(), userID: userID}
}

func (f *fakeHandle) ID() string     { return f.id }
func (f *fakeHandle) UserID() string { return f.userID }

func (f *fakeHandle) Send(event string, data interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errHandleClosed
	}
	f.events = append(f.events, sentEvent{name: event, data: data})
	return nil
}

func (f *fakeHandle) close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

// named returns the payloads of every event with the given name, in order
func (f *fakeHandle) named(event string) []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []interface{}
	for _, e := range f.events {
		if e.name == event {
			out = append(out, e.data)
		}
	}
	return out
}

func (f *fakeHandle) count(event string) int {
	return len(f.named(event))
}

type fakeAuthz struct {
	mu      sync.Mutex
	members map[string]entities.Permissions
	err     error
	gate    chan struct{}
}

func newFakeAuthz() *fakeAuthz {
	return &fakeAuthz{members: make(map[string]entities.Permissions)}
}

func (a *fakeAuthz) allow(userID, interviewID string, perms entities.Permissions) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.members[userID+"|"+interviewID] = perms
}

func (a *fakeAuthz) IsParticipant(ctx context.Context, userID, interviewID string) (bool, error) {
	a.mu.Lock()
	gate, err := a.gate, a.err
	_, ok := a.members[userID+"|"+interviewID]
	a.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (a *fakeAuthz) GetPermissions(ctx context.Context, userID, interviewID string) (entities.Permissions, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.members[userID+"|"+interviewID], nil
}

type fakeStore struct {
	mu         sync.Mutex
	messages   []entities.ChatMessage
	files      []entities.FileShareRecord
	payloads   map[uuid.UUID][]byte
	downloads  []entities.FileShareRecord
	recordings []entities.RecordingSession
	metrics    []entities.MetricsSnapshot
}

func newFakeStore() *fakeStore {
	return &fakeStore{payloads: make(map[uuid.UUID][]byte)}
}

func (s *fakeStore) SaveChatMessage(msg entities.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

func (s *fakeStore) SaveFile(rec entities.FileShareRecord, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files, rec)
	s.payloads[rec.ID] = payload
}

func (s *fakeStore) RecordFileDownload(rec entities.FileShareRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloads = append(s.downloads, rec)
}

func (s *fakeStore) FetchFilePayload(ctx context.Context, rec entities.FileShareRecord) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, ok := s.payloads[rec.ID]
	if !ok {
		return nil, usecaseErrors.ErrPayloadMissing
	}
	return payload, nil
}

func (s *fakeStore) SaveRecordingSession(rec entities.RecordingSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordings = append(s.recordings, rec)
}

func (s *fakeStore) SaveMetrics(snapshot entities.MetricsSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = append(s.metrics, snapshot)
}

func (s *fakeStore) fileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

func (s *fakeStore) metricCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.metrics)
}

func (s *fakeStore) lastRecording() entities.RecordingSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordings[len(s.recordings)-1]
}

type fakeCapture struct {
	mu      sync.Mutex
	started []entities.RecordingSession
	stopped []entities.RecordingSession
}

func (c *fakeCapture) StartCapture(rec entities.RecordingSession) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = append(c.started, rec)
}

func (c *fakeCapture) StopCapture(rec entities.RecordingSession) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = append(c.stopped, rec)
}

func (c *fakeCapture) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.started), len(c.stopped)
}

type testHub struct {
	*Hub
	authz   *fakeAuthz
	store   *fakeStore
	capture *fakeCapture
}

func newTestHub(t *testing.T, opts Options) *testHub {
	t.Helper()
	authz := newFakeAuthz()
	store := newFakeStore()
	capture := &fakeCapture{}
	h := NewHub(authz, store, capture, opts, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-h.Done()
	})
	return &testHub{Hub: h, authz: authz, store: store, capture: capture}
}

func hostPermissions() entities.Permissions {
	perms := entities.DefaultPermissions()
	perms.CanControlRecording = true
	return perms
}

func (th *testHub) connect(t *testing.T, userID string) *fakeHandle {
	t.Helper()
	handle := newFakeHandle(userID)
	require.NoError(t, th.Connect(context.Background(), handle))
	return handle
}

func (th *testHub) join(t *testing.T, handle *fakeHandle, roomID, interviewID string) RoomJoinedEvent {
	t.Helper()
	joined, err := th.JoinRoom(context.Background(), handle, JoinRoomInput{
		RoomID:      roomID,
		InterviewID: interviewID,
		UserInfo:    entities.UserInfo{Name: "user " + handle.UserID()},
	})
	require.NoError(t, err)
	return joined
}

// admit connects, authorizes and joins a user in one step
func (th *testHub) admit(t *testing.T, userID, roomID, interviewID string, perms entities.Permissions) *fakeHandle {
	t.Helper()
	th.authz.allow(userID, interviewID, perms)
	handle := th.connect(t, userID)
	th.join(t, handle, roomID, interviewID)
	return handle
}

func assertCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code.String(), apperrors.FromError(err).Code.String(), "error: %v", err)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	assert.Eventually(t, cond, 2*time.Second, 5*time.Millisecond)
}
