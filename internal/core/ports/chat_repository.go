package ports

import (
	"context"

	"freelance/internal/core/domain/model/chat"
	"freelance/internal/core/domain/model/kernel"
)

// ChatRepository persists chats together with their messages.
type ChatRepository interface {
	Add(ctx context.Context, aggregate *chat.Chat) error
	Update(ctx context.Context, aggregate *chat.Chat) error
	Get(ctx context.Context, id kernel.ID) (*chat.Chat, error)

	// FindByRoom looks a chat up by its exact room name and both parties.
	FindByRoom(ctx context.Context, roomName chat.RoomName, customerID, performerID kernel.ID) (*chat.Chat, error)

	AddMessage(ctx context.Context, message *chat.Message) error

	// Messages returns the chat history oldest first.
	Messages(ctx context.Context, chatID kernel.ID) ([]*chat.Message, error)
}
