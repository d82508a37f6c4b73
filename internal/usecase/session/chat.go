package session

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/interview-realtime/internal/usecase/errors"
)

// SendMessageInput is a validated send-message request
type SendMessageInput struct {
	RoomID  string
	Content string
	Type    entities.MessageType
	ReplyTo *uuid.UUID
}

// SendMessage appends a message to the room history and broadcasts it to every
// member, sender included, so all observers share one order.
func (h *Hub) SendMessage(ctx context.Context, senderID string, in SendMessageInput) (entities.ChatMessage, error) {
	if in.Type == "" {
		in.Type = entities.MessageTypeText
	}
	if !in.Type.Valid() {
		return entities.ChatMessage{}, apperrors.ErrInvalidArgument("Invalid message type").
			WithCause(entities.ErrInvalidMessageType)
	}
	if strings.TrimSpace(in.Content) == "" {
		return entities.ChatMessage{}, apperrors.ErrInvalidArgument("Message content is empty").
			WithCause(entities.ErrEmptyContent)
	}

	var sent entities.ChatMessage
	err := h.exec(ctx, "send-message", func() error {
		room, sender, err := h.member(in.RoomID, senderID, "send-message")
		if err != nil {
			return err
		}

		msg := entities.ChatMessage{
			ID:          uuid.New(),
			RoomID:      room.ID,
			InterviewID: room.InterviewID,
			SenderID:    senderID,
			SenderName:  sender.DisplayName(),
			Type:        in.Type,
			Content:     in.Content,
			ReplyTo:     in.ReplyTo,
			CreatedAt:   room.NextMessageTime(h.now()),
			Reactions:   []entities.Reaction{},
			ReadBy:      []string{},
		}
		room.AppendMessage(msg, h.opts.ChatHistoryLimit)
		sent = msg.Clone()

		h.store.SaveChatMessage(msg.Clone())
		delivered := h.broadcast(room, "", EventNewMessage, MessageEvent{RoomID: room.ID, Message: sent})
		h.logger.Debug("💬 Message sent",
			zap.String("room_id", room.ID),
			zap.String("message_id", msg.ID.String()),
			zap.String("sender_id", senderID),
			zap.Int("delivered", delivered),
		)
		return nil
	})
	return sent, err
}

// EditMessage replaces the content of one of the sender's own messages
func (h *Hub) EditMessage(ctx context.Context, userID, roomID string, messageID uuid.UUID, content string) (entities.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return entities.ChatMessage{}, apperrors.ErrInvalidArgument("Message content is empty").
			WithCause(entities.ErrEmptyContent)
	}

	var edited entities.ChatMessage
	err := h.exec(ctx, "edit-message", func() error {
		room, _, err := h.member(roomID, userID, "edit-message")
		if err != nil {
			return err
		}
		msg, err := findMessage(room, messageID)
		if err != nil {
			return err
		}
		if msg.SenderID != userID {
			return apperrors.ErrPermissionDenied("edit-message").WithCause(usecaseErrors.ErrNotMessageSender)
		}

		msg.Edit(content, h.now())
		edited = msg.Clone()
		h.store.SaveChatMessage(msg.Clone())
		h.broadcast(room, "", EventMessageEdited, MessageEvent{RoomID: room.ID, Message: edited})
		return nil
	})
	return edited, err
}

// ReactToMessage toggles the user's emoji on a message
func (h *Hub) ReactToMessage(ctx context.Context, userID, roomID string, messageID uuid.UUID, emoji string) error {
	return h.exec(ctx, "react-message", func() error {
		room, _, err := h.member(roomID, userID, "react-message")
		if err != nil {
			return err
		}
		msg, err := findMessage(room, messageID)
		if err != nil {
			return err
		}

		added := msg.ToggleReaction(userID, emoji, h.now())
		h.store.SaveChatMessage(msg.Clone())
		h.broadcast(room, "", EventMessageReaction, MessageReactionEvent{
			RoomID:    room.ID,
			MessageID: msg.ID,
			UserID:    userID,
			Emoji:     emoji,
			Added:     added,
			Reactions: append([]entities.Reaction{}, msg.Reactions...),
		})
		return nil
	})
}

// MarkRead records that the user has read a message. Repeats are ignored.
func (h *Hub) MarkRead(ctx context.Context, userID, roomID string, messageID uuid.UUID) error {
	return h.exec(ctx, "mark-read", func() error {
		room, _, err := h.member(roomID, userID, "mark-read")
		if err != nil {
			return err
		}
		msg, err := findMessage(room, messageID)
		if err != nil {
			return err
		}
		if !msg.MarkReadBy(userID) {
			return nil
		}

		h.store.SaveChatMessage(msg.Clone())
		h.broadcast(room, "", EventMessageRead, MessageReadEvent{
			RoomID:    room.ID,
			MessageID: msg.ID,
			UserID:    userID,
		})
		return nil
	})
}

// SetTyping broadcasts a typing indicator to everyone but the typist. Never persisted.
func (h *Hub) SetTyping(ctx context.Context, userID, roomID string, typing bool) error {
	action := "typing-stop"
	if typing {
		action = "typing-start"
	}
	return h.exec(ctx, action, func() error {
		room, p, err := h.member(roomID, userID, action)
		if err != nil {
			return err
		}
		h.broadcast(room, userID, EventUserTyping, UserTypingEvent{
			RoomID:   room.ID,
			UserID:   userID,
			UserName: p.DisplayName(),
			IsTyping: typing,
		})
		return nil
	})
}

func findMessage(room *entities.Room, id uuid.UUID) (*entities.ChatMessage, error) {
	msg := room.FindMessage(id)
	if msg == nil {
		return nil, apperrors.ErrNotFound("Message").
			WithDetail("message_id", id.String()).
			WithCause(usecaseErrors.ErrMessageNotFound)
	}
	return msg, nil
}
