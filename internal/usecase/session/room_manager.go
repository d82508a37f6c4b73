package session

import (
	"context"
	"sort"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/interview-realtime/internal/usecase/errors"
)

// JoinRoomInput is a validated join-room request
type JoinRoomInput struct {
	RoomID      string
	InterviewID string
	UserInfo    entities.UserInfo
}

// JoinRoom authorizes the user for the interview and adds them to the room.
// Authorization runs before the hub touches any state, so a denial leaves no trace.
func (h *Hub) JoinRoom(ctx context.Context, handle Handle, in JoinRoomInput) (RoomJoinedEvent, error) {
	userID := handle.UserID()

	ok, err := h.authz.IsParticipant(ctx, userID, in.InterviewID)
	if err != nil {
		h.logger.Warn("⚠️ Authorization check failed",
			zap.String("user_id", userID),
			zap.String("interview_id", in.InterviewID),
			zap.Error(err),
		)
		return RoomJoinedEvent{}, apperrors.ErrAuthorization(in.InterviewID).WithCause(err)
	}
	if !ok {
		h.logger.Info("🚫 Join rejected",
			zap.String("user_id", userID),
			zap.String("room_id", in.RoomID),
			zap.String("interview_id", in.InterviewID),
		)
		return RoomJoinedEvent{}, apperrors.ErrAuthorization(in.InterviewID).WithCause(usecaseErrors.ErrNotInterviewMember)
	}

	perms, err := h.authz.GetPermissions(ctx, userID, in.InterviewID)
	if err != nil {
		return RoomJoinedEvent{}, apperrors.ErrAuthorization(in.InterviewID).WithCause(err)
	}

	var joined RoomJoinedEvent
	err = h.exec(ctx, "join-room", func() error {
		// the connection may have closed while authorization was in flight
		if !h.registry.IsCurrent(handle.ID()) {
			return apperrors.ErrPermissionDenied("join-room").WithCause(usecaseErrors.ErrConnectionNotActive)
		}

		room, exists := h.rooms[in.RoomID]
		if exists && room.InterviewID != in.InterviewID {
			return interviewMismatch(in.RoomID)
		}
		// a parked recording keeps the room id bound to its interview
		rec, parked := h.parked[in.RoomID]
		if !exists && parked && rec.InterviewID != in.InterviewID {
			return interviewMismatch(in.RoomID)
		}
		now := h.now()
		if !exists {
			room = entities.NewRoom(in.RoomID, in.InterviewID, now)
			if parked {
				room.Recording = rec
				delete(h.parked, in.RoomID)
			}
			h.rooms[in.RoomID] = room
			h.logger.Info("🏠 Room created",
				zap.String("room_id", in.RoomID),
				zap.String("interview_id", in.InterviewID),
			)
		}

		participant := entities.NewParticipant(handle.ID(), userID, in.UserInfo, perms, now)
		_, rejoin := room.Participants[userID]
		room.AddParticipant(participant)

		joined = RoomJoinedEvent{
			Room:     room.Snapshot(),
			Messages: room.RecentMessages(h.opts.JoinHistorySize),
			Files:    room.FileList(),
		}
		h.deliver(handle, EventRoomJoined, joined)
		h.broadcast(room, userID, EventParticipantJoined, ParticipantJoinedEvent{
			RoomID:      room.ID,
			Participant: *participant,
		})

		h.logger.Info("👋 Participant joined",
			zap.String("room_id", room.ID),
			zap.String("user_id", userID),
			zap.String("connection_id", handle.ID()),
			zap.Bool("rejoin", rejoin),
			zap.Int("participants", len(room.Participants)),
		)
		return nil
	})
	return joined, err
}

func interviewMismatch(roomID string) error {
	return apperrors.ErrRoomInvalidState(roomID, "Room belongs to a different interview").
		WithCause(usecaseErrors.ErrInterviewMismatch)
}

// LeaveRoom removes the user from the room. Leaving a room you are not in is a no-op.
func (h *Hub) LeaveRoom(ctx context.Context, userID, roomID string) error {
	return h.exec(ctx, "leave-room", func() error {
		room, ok := h.rooms[roomID]
		if !ok {
			return nil
		}
		p := room.RemoveParticipant(userID)
		if p == nil {
			return nil
		}

		h.broadcast(room, "", EventParticipantLeft, ParticipantLeftEvent{
			RoomID:          room.ID,
			UserID:          userID,
			UserName:        p.DisplayName(),
			DurationSeconds: int64(p.Duration(h.now()).Seconds()),
		})
		h.logger.Info("🚪 Participant left",
			zap.String("room_id", room.ID),
			zap.String("user_id", userID),
			zap.Int("participants", len(room.Participants)),
		)
		h.disposeIfEmpty(room)
		return nil
	})
}

// RoomByID returns a snapshot of one room
func (h *Hub) RoomByID(ctx context.Context, roomID string) (entities.RoomSnapshot, error) {
	var snapshot entities.RoomSnapshot
	err := h.exec(ctx, "get-room", func() error {
		room, ok := h.rooms[roomID]
		if !ok {
			return roomNotFound(roomID)
		}
		snapshot = room.Snapshot()
		return nil
	})
	return snapshot, err
}

// ActiveRooms returns snapshots of all rooms ordered by creation
func (h *Hub) ActiveRooms(ctx context.Context) ([]entities.RoomSnapshot, error) {
	var snapshots []entities.RoomSnapshot
	err := h.exec(ctx, "list-rooms", func() error {
		snapshots = make([]entities.RoomSnapshot, 0, len(h.rooms))
		for _, room := range h.rooms {
			snapshots = append(snapshots, room.Snapshot())
		}
		sort.Slice(snapshots, func(i, j int) bool {
			if snapshots[i].CreatedAt.Equal(snapshots[j].CreatedAt) {
				return snapshots[i].ID < snapshots[j].ID
			}
			return snapshots[i].CreatedAt.Before(snapshots[j].CreatedAt)
		})
		return nil
	})
	return snapshots, err
}

// ParticipantCount returns the number of participants across all rooms
func (h *Hub) ParticipantCount(ctx context.Context) (int, error) {
	count := 0
	err := h.exec(ctx, "count-participants", func() error {
		for _, room := range h.rooms {
			count += len(room.Participants)
		}
		return nil
	})
	return count, err
}
