package entities

import (
	"time"
)

// ConnectionStatus represents the transport state of a participant
type ConnectionStatus string

const (
	ConnectionStatusConnecting   ConnectionStatus = "connecting"
	ConnectionStatusConnected    ConnectionStatus = "connected"
	ConnectionStatusDisconnected ConnectionStatus = "disconnected"
	ConnectionStatusReconnecting ConnectionStatus = "reconnecting"
	ConnectionStatusFailed       ConnectionStatus = "failed"
)

// UserInfo is the display snapshot a client sends when joining
type UserInfo struct {
	Name      string `json:"name" validate:"required,max=255"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Role      string `json:"role,omitempty" validate:"omitempty,max=50"`
}

// MediaState is the participant's published media
type MediaState struct {
	AudioEnabled  bool `json:"audio_enabled"`
	VideoEnabled  bool `json:"video_enabled"`
	ScreenSharing bool `json:"screen_sharing"`
}

// DefaultMediaState returns the media state assumed on join
func DefaultMediaState() MediaState {
	return MediaState{
		AudioEnabled: true,
		VideoEnabled: true,
	}
}

// Participant represents a connected user's presence in a live room
type Participant struct {
	HandleID    string           `json:"connection_id"`
	UserID      string           `json:"user_id"`
	UserInfo    UserInfo         `json:"user_info"`
	JoinedAt    time.Time        `json:"joined_at"`
	Status      ConnectionStatus `json:"status"`
	Permissions Permissions      `json:"permissions"`
	Media       MediaState       `json:"media_state"`
	Quality     QualityMetrics   `json:"connection_quality"`
}

// NewParticipant builds a connected participant with explicit defaults
func NewParticipant(handleID, userID string, info UserInfo, perms Permissions, now time.Time) *Participant {
	return &Participant{
		HandleID:    handleID,
		UserID:      userID,
		UserInfo:    info,
		JoinedAt:    now,
		Status:      ConnectionStatusConnected,
		Permissions: perms,
		Media:       DefaultMediaState(),
	}
}

// Duration returns how long the participant has been in the room
func (p *Participant) Duration(now time.Time) time.Duration {
	if now.Before(p.JoinedAt) {
		return 0
	}
	return now.Sub(p.JoinedAt)
}

// DisplayName falls back to the user id when no name was provided
func (p *Participant) DisplayName() string {
	if p.UserInfo.Name != "" {
		return p.UserInfo.Name
	}
	return p.UserID
}

// MarkDisconnected flags the participant as gone
func (p *Participant) MarkDisconnected() {
	p.Status = ConnectionStatusDisconnected
	p.Media.ScreenSharing = false
}
