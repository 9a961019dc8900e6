package chat

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/errs"
)

const MaxMessageLength = 4000

var ErrMessageIsNotConstructed = errors.New("Message must be created via Chat.PostMessage or RestoreMessage")

// Message is immutable once created. senderID is the sender's account id.
type Message struct {
	id         kernel.ID
	chatID     kernel.ID
	text       string
	senderID   kernel.ID
	senderType kernel.Role
	createdAt  time.Time

	isConstructed bool
}

func RestoreMessage(
	id, chatID kernel.ID, text string, senderID kernel.ID, senderType kernel.Role, createdAt time.Time,
) (*Message, error) {
	if err := errors.Join(id.Validate(), chatID.Validate(), senderType.Validate()); err != nil {
		return nil, err
	}
	return &Message{
		id:            id,
		chatID:        chatID,
		text:          text,
		senderID:      senderID,
		senderType:    senderType,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func validateText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errs.NewValueIsRequiredError("text")
	}
	if n := utf8.RuneCountInString(text); n > MaxMessageLength {
		return "", errs.NewValueIsOutOfRangeError("text", n, 1, MaxMessageLength)
	}
	return text, nil
}

func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

func (m *Message) ID() kernel.ID           { return m.id }
func (m *Message) ChatID() kernel.ID       { return m.chatID }
func (m *Message) Text() string            { return m.text }
func (m *Message) SenderID() kernel.ID     { return m.senderID }
func (m *Message) SenderType() kernel.Role { return m.senderType }
func (m *Message) CreatedAt() time.Time    { return m.createdAt }

func (m *Message) IdentifyAs(id kernel.ID) {
	if m.id.IsZero() {
		m.id = id
	}
}

// IsUnreadFor reports whether the message counts as unread for side, given
// the time side last checked the chat. Never checked means every message of
// the other party is unread.
func (m *Message) IsUnreadFor(side kernel.Role, lastChecked *time.Time) bool {
	if m.senderType == side {
		return false
	}
	return lastChecked == nil || m.createdAt.After(*lastChecked)
}
