package presenter

import (
	"time"

	"github.com/johnquangdev/interview-realtime/internal/adapter/dto/admin"
	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
)

// ToChatMessageResponse converts a stored ChatMessage to ChatMessageResponse DTO.
// Reactions are grouped by emoji in the order they were first added.
func ToChatMessageResponse(m *entities.ChatMessage) *admin.ChatMessageResponse {
	reactions := make(map[string][]string)
	for _, r := range m.Reactions {
		reactions[r.Emoji] = append(reactions[r.Emoji], r.UserID)
	}

	resp := &admin.ChatMessageResponse{
		ID:         m.ID.String(),
		RoomID:     m.RoomID,
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		Type:       string(m.Type),
		Content:    m.Content,
		Edited:     m.Edited,
		EditedAt:   m.EditedAt,
		Reactions:  reactions,
		ReadBy:     append([]string{}, m.ReadBy...),
		CreatedAt:  m.CreatedAt,
	}
	if m.ReplyTo != nil {
		resp.ReplyTo = m.ReplyTo.String()
	}
	return resp
}

// ToChatHistoryResponse converts stored messages to ChatHistoryResponse
func ToChatHistoryResponse(roomID string, messages []*entities.ChatMessage) *admin.ChatHistoryResponse {
	items := make([]*admin.ChatMessageResponse, len(messages))
	for i, m := range messages {
		items[i] = ToChatMessageResponse(m)
	}
	return &admin.ChatHistoryResponse{RoomID: roomID, Messages: items, Total: len(items)}
}

// ToFileListResponse converts file share records to FileListResponse
func ToFileListResponse(interviewID string, records []*entities.FileShareRecord) *admin.FileListResponse {
	files := make([]*admin.FileResponse, len(records))
	for i, f := range records {
		files[i] = &admin.FileResponse{
			ID:            f.ID.String(),
			RoomID:        f.RoomID,
			UploaderID:    f.UploaderID,
			FileName:      f.FileName,
			Size:          f.Size,
			MimeType:      f.MimeType,
			Description:   f.Description,
			DownloadCount: f.DownloadCount,
			CreatedAt:     f.CreatedAt,
		}
	}
	return &admin.FileListResponse{InterviewID: interviewID, Files: files, Total: len(files)}
}

// ToRecordingDetailResponse converts a stored RecordingSession to RecordingDetailResponse DTO
func ToRecordingDetailResponse(r *entities.RecordingSession) *admin.RecordingDetailResponse {
	return &admin.RecordingDetailResponse{
		ID:             r.ID.String(),
		RoomID:         r.RoomID,
		InterviewID:    r.InterviewID,
		FileName:       r.FileName,
		Format:         r.Format,
		Quality:        r.Quality,
		Status:         string(r.Status),
		Progress:       r.Progress,
		StartedBy:      r.StartedBy,
		StartedAt:      r.StartedAt,
		EndedAt:        r.EndedAt,
		ParticipantIDs: append([]string{}, r.ParticipantIDs...),
		FileURL:        r.FileURL,
		Error:          r.Error,
	}
}

// ToMetricsResponse converts health snapshots to MetricsResponse
func ToMetricsResponse(since time.Time, snapshots []*entities.MetricsSnapshot) *admin.MetricsResponse {
	items := make([]*admin.MetricsSnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		items[i] = &admin.MetricsSnapshotResponse{
			ActiveRooms:  s.ActiveRooms,
			Participants: s.Participants,
			RecordedAt:   s.RecordedAt,
		}
	}
	return &admin.MetricsResponse{Since: since, Snapshots: items, Total: len(items)}
}
