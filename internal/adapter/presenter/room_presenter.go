package presenter

import (
	"github.com/johnquangdev/interview-realtime/internal/adapter/dto/admin"
	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
)

// ToRoomResponse converts a room snapshot to RoomResponse DTO
func ToRoomResponse(r entities.RoomSnapshot) *admin.RoomResponse {
	participants := make([]*admin.ParticipantResponse, len(r.Participants))
	for i := range r.Participants {
		participants[i] = ToParticipantResponse(&r.Participants[i])
	}

	response := &admin.RoomResponse{
		ID:               r.ID,
		InterviewID:      r.InterviewID,
		ParticipantCount: r.ParticipantCount,
		Participants:     participants,
		MessageCount:     r.MessageCount,
		FileCount:        r.FileCount,
		CreatedAt:        r.CreatedAt,
	}

	// Include the recording if one is active
	if rec := r.Recording; rec != nil {
		response.Recording = &admin.RecordingResponse{
			ID:        rec.ID.String(),
			Status:    string(rec.Status),
			Format:    rec.Format,
			Quality:   rec.Quality,
			StartedBy: rec.StartedBy,
			StartedAt: rec.StartedAt,
		}
	}

	return response
}

// ToParticipantResponse converts a Participant entity to ParticipantResponse DTO
func ToParticipantResponse(p *entities.Participant) *admin.ParticipantResponse {
	return &admin.ParticipantResponse{
		UserID:         p.UserID,
		Name:           p.DisplayName(),
		Role:           p.UserInfo.Role,
		Status:         string(p.Status),
		JoinedAt:       p.JoinedAt,
		AudioEnabled:   p.Media.AudioEnabled,
		VideoEnabled:   p.Media.VideoEnabled,
		ScreenSharing:  p.Media.ScreenSharing,
		CanShareScreen: p.Permissions.CanShareScreen,
		CanRecord:      p.Permissions.CanControlRecording,
	}
}

// ToRoomListResponse converts room snapshots to RoomListResponse
func ToRoomListResponse(rooms []entities.RoomSnapshot) *admin.RoomListResponse {
	roomResponses := make([]*admin.RoomResponse, len(rooms))
	for i, r := range rooms {
		roomResponses[i] = ToRoomResponse(r)
	}

	return &admin.RoomListResponse{
		Rooms: roomResponses,
		Total: len(roomResponses),
	}
}
