package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/interview-realtime/internal/usecase/errors"
)

// Handle is a live client connection. Send must not block.
type Handle interface {
	ID() string
	UserID() string
	Send(event string, data interface{}) error
}

// Authorizer answers interview membership queries
type Authorizer interface {
	IsParticipant(ctx context.Context, userID, interviewID string) (bool, error)
	GetPermissions(ctx context.Context, userID, interviewID string) (entities.Permissions, error)
}

// Persister is the best-effort durable sink. Writers return immediately.
type Persister interface {
	SaveChatMessage(msg entities.ChatMessage)
	SaveFile(rec entities.FileShareRecord, payload []byte)
	RecordFileDownload(rec entities.FileShareRecord)
	FetchFilePayload(ctx context.Context, rec entities.FileShareRecord) ([]byte, error)
	SaveRecordingSession(rec entities.RecordingSession)
	SaveMetrics(snapshot entities.MetricsSnapshot)
}

// RecordingBackend captures room media. Calls return immediately.
type RecordingBackend interface {
	StartCapture(rec entities.RecordingSession)
	StopCapture(rec entities.RecordingSession)
}

// Options tune the hub
type Options struct {
	ChatHistoryLimit int
	JoinHistorySize  int
	HealthInterval   time.Duration
	Thresholds       entities.QualityThresholds
	CommandBuffer    int
}

// DefaultOptions mirrors the configuration defaults
func DefaultOptions() Options {
	return Options{
		ChatHistoryLimit: 200,
		JoinHistorySize:  50,
		HealthInterval:   30 * time.Second,
		Thresholds:       entities.DefaultQualityThresholds(),
		CommandBuffer:    256,
	}
}

// Hub owns every room and the registry. All mutations run as commands on one goroutine.
type Hub struct {
	commands chan func()
	done     chan struct{}

	registry *Registry
	rooms    map[string]*entities.Room
	parked   map[string]*entities.RecordingSession

	authz   Authorizer
	store   Persister
	capture RecordingBackend
	opts    Options
	logger  *zap.Logger
	now     func() time.Time
}

// NewHub creates a hub; call Run to start processing
func NewHub(authz Authorizer, store Persister, capture RecordingBackend, opts Options, logger *zap.Logger) *Hub {
	def := DefaultOptions()
	if opts.ChatHistoryLimit <= 0 {
		opts.ChatHistoryLimit = def.ChatHistoryLimit
	}
	if opts.JoinHistorySize <= 0 {
		opts.JoinHistorySize = def.JoinHistorySize
	}
	if opts.HealthInterval <= 0 {
		opts.HealthInterval = def.HealthInterval
	}
	if opts.Thresholds == (entities.QualityThresholds{}) {
		opts.Thresholds = def.Thresholds
	}
	if opts.CommandBuffer <= 0 {
		opts.CommandBuffer = def.CommandBuffer
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Hub{
		commands: make(chan func(), opts.CommandBuffer),
		done:     make(chan struct{}),
		registry: NewRegistry(),
		rooms:    make(map[string]*entities.Room),
		parked:   make(map[string]*entities.RecordingSession),
		authz:    authz,
		store:    store,
		capture:  capture,
		opts:     opts,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run processes commands until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.opts.HealthInterval)
	defer ticker.Stop()
	defer close(h.done)

	h.logger.Info("🚀 Session hub started",
		zap.Duration("health_interval", h.opts.HealthInterval),
	)

	for {
		select {
		case <-ctx.Done():
			h.stopParked()
			h.logger.Info("🛑 Session hub stopped",
				zap.Int("active_rooms", len(h.rooms)),
				zap.Int("connections", h.registry.Len()),
			)
			return
		case cmd := <-h.commands:
			cmd()
		case <-ticker.C:
			_ = h.safely("health", func() error {
				h.collectHealth()
				return nil
			})
		}
	}
}

// Done is closed once Run returns
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// exec runs fn on the hub goroutine and waits for its result
func (h *Hub) exec(ctx context.Context, op string, fn func() error) error {
	result := make(chan error, 1)
	cmd := func() {
		result <- h.safely(op, fn)
	}

	select {
	case h.commands <- cmd:
	case <-h.done:
		return apperrors.ErrInternal(usecaseErrors.ErrHubStopped)
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-h.done:
		// the command may have run right before shutdown
		select {
		case err := <-result:
			return err
		default:
			return apperrors.ErrInternal(usecaseErrors.ErrHubStopped)
		}
	}
}

// safely isolates a panic to the command that raised it
func (h *Hub) safely(op string, fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			h.logger.Error("💥 Recovered panic in session command",
				zap.String("operation", op),
				zap.Any("panic", p),
				zap.Stack("stack"),
			)
			err = apperrors.ErrInternal(fmt.Errorf("%w: %v", usecaseErrors.ErrPanicRecovered, p))
		}
	}()
	return fn()
}

// Connect registers a live handle and greets it
func (h *Hub) Connect(ctx context.Context, handle Handle) error {
	return h.exec(ctx, "connect", func() error {
		if prev, ok := h.registry.LookupHandle(handle.UserID()); ok && prev.ID() != handle.ID() {
			h.logger.Info("🔁 User reconnected with a new handle",
				zap.String("user_id", handle.UserID()),
				zap.String("previous_connection_id", prev.ID()),
				zap.String("connection_id", handle.ID()),
			)
		}
		h.registry.Register(handle)
		h.deliver(handle, EventConnected, ConnectedEvent{
			ConnectionID: handle.ID(),
			UserID:       handle.UserID(),
			ConnectedAt:  h.now(),
		})
		return nil
	})
}

// deliver sends to one handle and logs failures; a failing handle closes itself
func (h *Hub) deliver(handle Handle, event string, data interface{}) bool {
	if err := handle.Send(event, data); err != nil {
		h.logger.Debug("⚠️ Dropped outbound event",
			zap.String("connection_id", handle.ID()),
			zap.String("user_id", handle.UserID()),
			zap.String("event", event),
			zap.Error(err),
		)
		return false
	}
	return true
}

// sendToParticipant delivers through the handle the participant is bound to
func (h *Hub) sendToParticipant(p *entities.Participant, event string, data interface{}) bool {
	handle, ok := h.registry.Handle(p.HandleID)
	if !ok {
		return false
	}
	return h.deliver(handle, event, data)
}

// broadcast sends to every room member except excludeUserID (empty excludes nobody)
func (h *Hub) broadcast(room *entities.Room, excludeUserID, event string, data interface{}) int {
	delivered := 0
	for userID, p := range room.Participants {
		if userID == excludeUserID {
			continue
		}
		if h.sendToParticipant(p, event, data) {
			delivered++
		}
	}
	return delivered
}

// member resolves a room and a participant of it, or the matching error
func (h *Hub) member(roomID, userID, action string) (*entities.Room, *entities.Participant, error) {
	room, ok := h.rooms[roomID]
	if !ok {
		return nil, nil, roomNotFound(roomID)
	}
	p := room.Participant(userID)
	if p == nil {
		return room, nil, apperrors.ErrPermissionDenied(action).
			WithDetail("room_id", roomID).
			WithCause(usecaseErrors.ErrNotParticipant)
	}
	return room, p, nil
}

func roomNotFound(roomID string) error {
	return apperrors.ErrRoomNotFound(roomID).WithCause(usecaseErrors.ErrRoomNotFound)
}

func targetUnavailable(userID string) error {
	return apperrors.ErrTargetUnavailable(userID).WithCause(usecaseErrors.ErrTargetUnavailable)
}

// requirePermission checks a named capability of p
func requirePermission(p *entities.Participant, permission string) error {
	if p.Permissions.Has(permission) {
		return nil
	}
	return apperrors.ErrPermissionDenied(permission).
		WithDetail("user_id", p.UserID).
		WithCause(usecaseErrors.ErrMissingPermission)
}

// disposeIfEmpty removes an empty room. A running recording is parked until
// the room is recreated, since only an explicit stop may end it.
func (h *Hub) disposeIfEmpty(room *entities.Room) {
	if !room.IsEmpty() {
		return
	}
	if room.Recording != nil {
		h.parked[room.ID] = room.Recording
		h.logger.Info("⏸️ Recording parked with empty room",
			zap.String("room_id", room.ID),
			zap.String("recording_id", room.Recording.ID.String()),
		)
	}
	delete(h.rooms, room.ID)
	h.logger.Info("🧹 Room disposed",
		zap.String("room_id", room.ID),
		zap.String("interview_id", room.InterviewID),
	)
}

// stopParked ends recordings whose room was never recreated, so no capture
// outlives the hub
func (h *Hub) stopParked() {
	for roomID, rec := range h.parked {
		rec.MarkAsProcessing(h.now())
		h.store.SaveRecordingSession(rec.Clone())
		h.capture.StopCapture(rec.Clone())
		delete(h.parked, roomID)
		h.logger.Info("⏹️ Parked recording stopped on shutdown",
			zap.String("room_id", roomID),
			zap.String("recording_id", rec.ID.String()),
		)
	}
}

func (h *Hub) collectHealth() {
	participants := 0
	for _, room := range h.rooms {
		participants += len(room.Participants)
	}
	snapshot := entities.MetricsSnapshot{
		ID:           uuid.New(),
		ActiveRooms:  len(h.rooms),
		Participants: participants,
		RecordedAt:   h.now(),
	}
	h.store.SaveMetrics(snapshot)
	h.logger.Debug("📊 Health snapshot",
		zap.Int("active_rooms", snapshot.ActiveRooms),
		zap.Int("participants", snapshot.Participants),
		zap.Int("connections", h.registry.Len()),
	)
}
