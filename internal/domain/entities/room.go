package entities

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Room is a live, in-memory interview room. It only exists while it has participants.
type Room struct {
	ID           string
	InterviewID  string
	Participants map[string]*Participant
	CreatedAt    time.Time
	Recording    *RecordingSession
	Messages     []ChatMessage
	Files        []FileShareRecord

	lastMessageAt time.Time
}

// RoomSnapshot is the read-only projection of a room handed to clients and admins
type RoomSnapshot struct {
	ID               string            `json:"id"`
	InterviewID      string            `json:"interview_id"`
	Participants     []Participant     `json:"participants"`
	ParticipantCount int               `json:"participant_count"`
	CreatedAt        time.Time         `json:"created_at"`
	Recording        *RecordingSession `json:"recording,omitempty"`
	MessageCount     int               `json:"message_count"`
	FileCount        int               `json:"file_count"`
}

// NewRoom creates an empty room bound to an interview
func NewRoom(id, interviewID string, now time.Time) *Room {
	return &Room{
		ID:           id,
		InterviewID:  interviewID,
		Participants: make(map[string]*Participant),
		CreatedAt:    now,
		Messages:     make([]ChatMessage, 0),
		Files:        make([]FileShareRecord, 0),
	}
}

// AddParticipant inserts or replaces the participant keyed by user id
func (r *Room) AddParticipant(p *Participant) {
	r.Participants[p.UserID] = p
}

// RemoveParticipant deletes the participant and returns it, or nil if absent
func (r *Room) RemoveParticipant(userID string) *Participant {
	p, ok := r.Participants[userID]
	if !ok {
		return nil
	}
	delete(r.Participants, userID)
	return p
}

// Participant returns the participant for userID, or nil
func (r *Room) Participant(userID string) *Participant {
	return r.Participants[userID]
}

// IsEmpty reports whether the room has no participants left
func (r *Room) IsEmpty() bool {
	return len(r.Participants) == 0
}

// HasActiveRecording reports whether a recording is running
func (r *Room) HasActiveRecording() bool {
	return r.Recording != nil && r.Recording.Status == RecordingStatusRecording
}

// NextMessageTime returns a creation time strictly after the previous message
func (r *Room) NextMessageTime(now time.Time) time.Time {
	if !now.After(r.lastMessageAt) {
		now = r.lastMessageAt.Add(time.Microsecond)
	}
	r.lastMessageAt = now
	return now
}

// AppendMessage appends msg and trims the history to limit entries
func (r *Room) AppendMessage(msg ChatMessage, limit int) {
	r.Messages = append(r.Messages, msg)
	if limit > 0 && len(r.Messages) > limit {
		trimmed := make([]ChatMessage, limit)
		copy(trimmed, r.Messages[len(r.Messages)-limit:])
		r.Messages = trimmed
	}
}

// RecentMessages returns copies of the last n messages in order
func (r *Room) RecentMessages(n int) []ChatMessage {
	start := 0
	if n >= 0 && len(r.Messages) > n {
		start = len(r.Messages) - n
	}
	out := make([]ChatMessage, 0, len(r.Messages)-start)
	for _, m := range r.Messages[start:] {
		out = append(out, m.Clone())
	}
	return out
}

// FindMessage returns a pointer into the live history, or nil
func (r *Room) FindMessage(id uuid.UUID) *ChatMessage {
	for i := range r.Messages {
		if r.Messages[i].ID == id {
			return &r.Messages[i]
		}
	}
	return nil
}

// AddFile records shared file metadata
func (r *Room) AddFile(rec FileShareRecord) {
	r.Files = append(r.Files, rec)
}

// FindFile returns a pointer into the file list, or nil
func (r *Room) FindFile(id uuid.UUID) *FileShareRecord {
	for i := range r.Files {
		if r.Files[i].ID == id {
			return &r.Files[i]
		}
	}
	return nil
}

// FileList returns a copy of the file metadata
func (r *Room) FileList() []FileShareRecord {
	out := make([]FileShareRecord, len(r.Files))
	copy(out, r.Files)
	return out
}

// Snapshot copies the room so callers outside the hub cannot mutate it
func (r *Room) Snapshot() RoomSnapshot {
	participants := make([]Participant, 0, len(r.Participants))
	for _, p := range r.Participants {
		participants = append(participants, *p)
	}
	sort.Slice(participants, func(i, j int) bool {
		if participants[i].JoinedAt.Equal(participants[j].JoinedAt) {
			return participants[i].UserID < participants[j].UserID
		}
		return participants[i].JoinedAt.Before(participants[j].JoinedAt)
	})

	var rec *RecordingSession
	if r.Recording != nil {
		c := r.Recording.Clone()
		rec = &c
	}

	return RoomSnapshot{
		ID:               r.ID,
		InterviewID:      r.InterviewID,
		Participants:     participants,
		ParticipantCount: len(participants),
		CreatedAt:        r.CreatedAt,
		Recording:        rec,
		MessageCount:     len(r.Messages),
		FileCount:        len(r.Files),
	}
}
