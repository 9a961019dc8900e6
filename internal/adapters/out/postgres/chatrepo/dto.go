// Package chatrepo persists chats and their messages.
package chatrepo

import (
	"time"

	"freelance/internal/core/domain/model/chat"
	"freelance/internal/core/domain/model/kernel"
)

type ChatDTO struct {
	ID                       int64  `gorm:"primaryKey;autoIncrement"`
	CustomerID               int64  `gorm:"not null;index:idx_chat_room,priority:2"`
	PerformerID              int64  `gorm:"not null;index:idx_chat_room,priority:3"`
	RoomName                 string `gorm:"size:320;not null;index:idx_chat_room,priority:1"`
	LastMessageAt            *time.Time
	CheckedByCustomer        bool `gorm:"not null;default:false"`
	CheckedByPerformer       bool `gorm:"not null;default:false"`
	LastCheckedByCustomerAt  *time.Time
	LastCheckedByPerformerAt *time.Time
	DeletedByCustomer        bool `gorm:"not null;default:false"`
	DeletedByPerformer       bool `gorm:"not null;default:false"`
}

func (ChatDTO) TableName() string {
	return "chats"
}

type MessageDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ChatID     int64     `gorm:"not null;index:idx_message_chat_created,priority:1"`
	Text       string    `gorm:"type:text;not null"`
	SenderID   int64     `gorm:"not null"`
	SenderType int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"index:idx_message_chat_created,priority:2"`
}

func (MessageDTO) TableName() string {
	return "messages"
}

func fromDomain(c *chat.Chat) ChatDTO {
	s := c.State()
	return ChatDTO{
		ID:                       c.ID().Int64(),
		CustomerID:               c.CustomerID().Int64(),
		PerformerID:              c.PerformerID().Int64(),
		RoomName:                 c.RoomName().String(),
		LastMessageAt:            s.LastMessageAt,
		CheckedByCustomer:        s.Customer.Checked,
		CheckedByPerformer:       s.Performer.Checked,
		LastCheckedByCustomerAt:  s.Customer.LastCheckedAt,
		LastCheckedByPerformerAt: s.Performer.LastCheckedAt,
		DeletedByCustomer:        s.DeletedByCustomer,
		DeletedByPerformer:       s.DeletedByPerformer,
	}
}

func toDomain(dto ChatDTO) (*chat.Chat, error) {
	return chat.RestoreChat(
		kernel.ID(dto.ID),
		kernel.ID(dto.CustomerID),
		kernel.ID(dto.PerformerID),
		chat.RoomName(dto.RoomName),
		chat.State{
			LastMessageAt:      dto.LastMessageAt,
			Customer:           chat.ReadMark{Checked: dto.CheckedByCustomer, LastCheckedAt: dto.LastCheckedByCustomerAt},
			Performer:          chat.ReadMark{Checked: dto.CheckedByPerformer, LastCheckedAt: dto.LastCheckedByPerformerAt},
			DeletedByCustomer:  dto.DeletedByCustomer,
			DeletedByPerformer: dto.DeletedByPerformer,
		},
	)
}

func messageFromDomain(m *chat.Message) MessageDTO {
	return MessageDTO{
		ID:         m.ID().Int64(),
		ChatID:     m.ChatID().Int64(),
		Text:       m.Text(),
		SenderID:   m.SenderID().Int64(),
		SenderType: int(m.SenderType()),
		CreatedAt:  m.CreatedAt(),
	}
}

func messageToDomain(dto MessageDTO) (*chat.Message, error) {
	return chat.RestoreMessage(
		kernel.ID(dto.ID),
		kernel.ID(dto.ChatID),
		dto.Text,
		kernel.ID(dto.SenderID),
		kernel.Role(dto.SenderType),
		dto.CreatedAt,
	)
}
