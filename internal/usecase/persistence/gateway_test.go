package persistence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	"github.com/johnquangdev/interview-realtime/internal/domain/repositories"
	"github.com/johnquangdev/interview-realtime/internal/infrastructure/queue"
	usecaseErrors "github.com/johnquangdev/interview-realtime/internal/usecase/errors"
)

type memoryRepos struct {
	mu         sync.Mutex
	messages   map[uuid.UUID]entities.ChatMessage
	files      map[uuid.UUID]entities.FileShareRecord
	objects    map[string][]byte
	recordings map[uuid.UUID]entities.RecordingSession
	snapshots  []entities.MetricsSnapshot

	// blocks PutObject until closed, when set
	uploadGate chan struct{}
	putErr     error
}

func newMemoryRepos() *memoryRepos {
	return &memoryRepos{
		messages:   make(map[uuid.UUID]entities.ChatMessage),
		files:      make(map[uuid.UUID]entities.FileShareRecord),
		objects:    make(map[string][]byte),
		recordings: make(map[uuid.UUID]entities.RecordingSession),
	}
}

func (m *memoryRepos) Upsert(_ context.Context, msg *entities.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.messages[msg.ID]; ok && existing.Revision >= msg.Revision {
		return nil
	}
	m.messages[msg.ID] = msg.Clone()
	return nil
}

func (m *memoryRepos) FindByID(_ context.Context, id uuid.UUID) (*entities.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.messages[id]
	if !ok {
		return nil, nil
	}
	return &msg, nil
}

func (m *memoryRepos) FindByRoomID(context.Context, string, int) ([]*entities.ChatMessage, error) {
	return nil, nil
}

func (m *memoryRepos) PutObject(_ context.Context, key string, payload []byte, _ string) error {
	if m.uploadGate != nil {
		<-m.uploadGate
	}
	if m.putErr != nil {
		return m.putErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = payload
	return nil
}

func (m *memoryRepos) GetObject(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, repositories.ErrObjectNotFound
	}
	return data, nil
}

type fileRepo struct{ *memoryRepos }

func (f fileRepo) Upsert(_ context.Context, rec *entities.FileShareRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.files[rec.ID]; !ok {
		f.files[rec.ID] = *rec
	}
	return nil
}

func (f fileRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.FileShareRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.files[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f fileRepo) SetDownloadCount(_ context.Context, id uuid.UUID, count int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.files[id]
	if !ok {
		return repositories.ErrRecordMissing
	}
	if count > rec.DownloadCount {
		rec.DownloadCount = count
		f.files[id] = rec
	}
	return nil
}

func (f fileRepo) FindByInterviewID(context.Context, string) ([]*entities.FileShareRecord, error) {
	return nil, nil
}

type recordingRepo struct{ *memoryRepos }

func (r recordingRepo) Upsert(_ context.Context, rec *entities.RecordingSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.recordings[rec.ID]; ok && existing.Status != entities.RecordingStatusRecording {
		return nil
	}
	r.recordings[rec.ID] = rec.Clone()
	return nil
}

func (r recordingRepo) FindByID(context.Context, uuid.UUID) (*entities.RecordingSession, error) {
	return nil, nil
}

func (r recordingRepo) FindByEgressID(context.Context, string) (*entities.RecordingSession, error) {
	return nil, nil
}

func (r recordingRepo) SetEgressID(context.Context, uuid.UUID, string) error { return nil }
func (r recordingRepo) UpdateProgress(context.Context, uuid.UUID, int) error { return nil }
func (r recordingRepo) Complete(context.Context, uuid.UUID, string) error    { return nil }
func (r recordingRepo) Fail(context.Context, uuid.UUID, string) error        { return nil }

type metricsRepo struct{ *memoryRepos }

func (m metricsRepo) Create(_ context.Context, s *entities.MetricsSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots = append(m.snapshots, *s)
	return nil
}

func (m metricsRepo) FindSince(context.Context, time.Time) ([]*entities.MetricsSnapshot, error) {
	return nil, nil
}

type rejectingQueue struct{}

func (rejectingQueue) Enqueue(queue.Job) error { return usecaseErrors.ErrQueueFull }

func newTestGateway(t *testing.T) (*Gateway, *memoryRepos, *queue.Queue) {
	t.Helper()
	repos := newMemoryRepos()
	q := queue.New(queue.Config{Workers: 2, Capacity: 16, JobTimeout: 5 * time.Second, MaxElapsed: 3 * time.Second}, nil)
	q.Start(context.Background())
	t.Cleanup(q.Stop)

	g := NewGateway(q, repos, fileRepo{repos}, repos, recordingRepo{repos}, metricsRepo{repos}, nil)
	return g, repos, q
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 3*time.Second, 10*time.Millisecond)
}

func TestGatewaySavesChatMessages(t *testing.T) {
	g, repos, _ := newTestGateway(t)
	msg := entities.ChatMessage{ID: uuid.New(), RoomID: "r1", Content: "hello"}

	g.SaveChatMessage(msg)
	eventually(t, func() bool {
		stored, _ := repos.FindByID(context.Background(), msg.ID)
		return stored != nil && stored.Content == "hello"
	})
}

func TestGatewayChatSnapshotsNeverGoBackwards(t *testing.T) {
	g, repos, q := newTestGateway(t)
	original := entities.ChatMessage{ID: uuid.New(), RoomID: "r1", Content: "hello"}
	edited := original.Clone()
	edited.Edit("hello (edited)", time.Now())
	edited.MarkReadBy("bob")

	g.SaveChatMessage(edited)
	g.SaveChatMessage(original)
	q.Stop()

	stored, err := repos.FindByID(context.Background(), original.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "hello (edited)", stored.Content)
	assert.True(t, stored.Edited)
	assert.Equal(t, edited.Revision, stored.Revision)
}

func TestGatewayServesPendingPayloadBeforeUploadFinishes(t *testing.T) {
	g, repos, q := newTestGateway(t)
	repos.uploadGate = make(chan struct{})

	rec := entities.NewFileShareRecord("r1", "i1", "alice", entities.FileInfo{Name: "cv.pdf", Size: 3, MimeType: "application/pdf"}, "", time.Now())
	g.SaveFile(rec, []byte("pdf"))

	payload, err := g.FetchFilePayload(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf"), payload)
	assert.Equal(t, 1, g.PendingUploads())

	close(repos.uploadGate)
	q.Stop()

	assert.Equal(t, 0, g.PendingUploads())
	payload, err = g.FetchFilePayload(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf"), payload)

	stored, err := fileRepo{repos}.FindByID(context.Background(), rec.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestGatewayMissingPayload(t *testing.T) {
	g, _, _ := newTestGateway(t)
	rec := entities.NewFileShareRecord("r1", "i1", "alice", entities.FileInfo{Name: "a.txt", Size: 1, MimeType: "text/plain"}, "", time.Now())

	_, err := g.FetchFilePayload(context.Background(), rec)
	assert.ErrorIs(t, err, usecaseErrors.ErrPayloadMissing)
}

func TestGatewayFailedUploadReleasesPayload(t *testing.T) {
	g, repos, q := newTestGateway(t)
	repos.putErr = errors.New("access denied")

	rec := entities.NewFileShareRecord("r1", "i1", "alice", entities.FileInfo{Name: "a.txt", Size: 1, MimeType: "text/plain"}, "", time.Now())
	g.SaveFile(rec, []byte("a"))
	q.Stop()

	assert.Equal(t, 0, g.PendingUploads())
}

func TestGatewayDownloadCountWaitsForFileRow(t *testing.T) {
	g, repos, q := newTestGateway(t)
	rec := entities.NewFileShareRecord("r1", "i1", "alice", entities.FileInfo{Name: "a.txt", Size: 1, MimeType: "text/plain"}, "", time.Now())

	rec.DownloadCount = 2
	g.RecordFileDownload(rec)
	time.Sleep(50 * time.Millisecond)
	rec.DownloadCount = 0
	g.SaveFile(rec, []byte("a"))
	q.Stop()

	stored, err := fileRepo{repos}.FindByID(context.Background(), rec.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 2, stored.DownloadCount)
}

func TestGatewayRecordingStopWinsOverLateStart(t *testing.T) {
	g, repos, q := newTestGateway(t)
	room := entities.NewRoom("r1", "i1", time.Now())
	rec := entities.NewRecordingSession(room, "alice", entities.RecordingSettings{}, time.Now())

	stopped := rec.Clone()
	stopped.MarkAsProcessing(time.Now())
	g.SaveRecordingSession(stopped)
	q.Stop()

	require.NoError(t, recordingRepo{repos}.Upsert(context.Background(), rec))
	assert.Equal(t, entities.RecordingStatusProcessing, repos.recordings[rec.ID].Status)
}

func TestGatewayDropsWhenQueueRejects(t *testing.T) {
	repos := newMemoryRepos()
	g := NewGateway(rejectingQueue{}, repos, fileRepo{repos}, repos, recordingRepo{repos}, metricsRepo{repos}, nil)

	rec := entities.NewFileShareRecord("r1", "i1", "alice", entities.FileInfo{Name: "a.txt", Size: 1, MimeType: "text/plain"}, "", time.Now())
	g.SaveFile(rec, []byte("a"))
	g.SaveMetrics(entities.MetricsSnapshot{ID: uuid.New()})

	assert.Equal(t, 0, g.PendingUploads())
	assert.Empty(t, repos.snapshots)
}
