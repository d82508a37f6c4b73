package session

// Registry maps users to their live connection handle and back.
// It is owned by the hub loop and never locked.
type Registry struct {
	byUser   map[string]Handle
	byHandle map[string]Handle
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byUser:   make(map[string]Handle),
		byHandle: make(map[string]Handle),
	}
}

// Register binds the handle to its user, replacing any earlier handle for that user
func (r *Registry) Register(h Handle) {
	r.byUser[h.UserID()] = h
	r.byHandle[h.ID()] = h
}

// LookupHandle returns the current handle of a user
func (r *Registry) LookupHandle(userID string) (Handle, bool) {
	h, ok := r.byUser[userID]
	return h, ok
}

// LookupUser returns the user a handle belongs to
func (r *Registry) LookupUser(handleID string) (string, bool) {
	h, ok := r.byHandle[handleID]
	if !ok {
		return "", false
	}
	return h.UserID(), true
}

// Handle returns a handle by id, even if it is no longer the user's current one
func (r *Registry) Handle(handleID string) (Handle, bool) {
	h, ok := r.byHandle[handleID]
	return h, ok
}

// IsCurrent reports whether handleID is the live handle of its user
func (r *Registry) IsCurrent(handleID string) bool {
	h, ok := r.byHandle[handleID]
	if !ok {
		return false
	}
	cur, ok := r.byUser[h.UserID()]
	return ok && cur.ID() == handleID
}

// Remove forgets the handle. The user mapping is only cleared if it still points at it.
func (r *Registry) Remove(handleID string) (Handle, bool) {
	h, ok := r.byHandle[handleID]
	if !ok {
		return nil, false
	}
	delete(r.byHandle, handleID)
	if cur, ok := r.byUser[h.UserID()]; ok && cur.ID() == handleID {
		delete(r.byUser, h.UserID())
	}
	return h, true
}

// Len returns the number of live handles
func (r *Registry) Len() int {
	return len(r.byHandle)
}

// Users returns the number of users with a current handle
func (r *Registry) Users() int {
	return len(r.byUser)
}
