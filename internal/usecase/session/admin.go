package session

import "context"

// BroadcastToRoom sends an arbitrary event to every member of a room.
// It returns how many handles accepted it.
func (h *Hub) BroadcastToRoom(ctx context.Context, roomID, event string, data interface{}) (int, error) {
	delivered := 0
	err := h.exec(ctx, "broadcast", func() error {
		room, ok := h.rooms[roomID]
		if !ok {
			return roomNotFound(roomID)
		}
		delivered = h.broadcast(room, "", event, data)
		return nil
	})
	return delivered, err
}

// SendToUser sends an arbitrary event to the user's live handle
func (h *Hub) SendToUser(ctx context.Context, userID, event string, data interface{}) error {
	return h.exec(ctx, "send-to-user", func() error {
		handle, ok := h.registry.LookupHandle(userID)
		if !ok || !h.deliver(handle, event, data) {
			return targetUnavailable(userID)
		}
		return nil
	})
}
