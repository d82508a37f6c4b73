package entities

// Permission names used in error details and logs
const (
	PermissionControlRecording = "can_control_recording"
	PermissionShareScreen      = "can_share_screen"
	PermissionShareFiles       = "can_share_files"
)

// Permissions is the capability set granted to a participant for one interview
type Permissions struct {
	CanControlRecording bool `json:"can_control_recording"`
	CanShareScreen      bool `json:"can_share_screen"`
	CanShareFiles       bool `json:"can_share_files"`
}

// DefaultPermissions is what a plain interview member gets
func DefaultPermissions() Permissions {
	return Permissions{
		CanShareScreen: true,
		CanShareFiles:  true,
	}
}

// Has checks a permission by name
func (p Permissions) Has(name string) bool {
	switch name {
	case PermissionControlRecording:
		return p.CanControlRecording
	case PermissionShareScreen:
		return p.CanShareScreen
	case PermissionShareFiles:
		return p.CanShareFiles
	default:
		return false
	}
}
