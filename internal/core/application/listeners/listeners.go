// Package listeners reacts to the lifecycle events published after a unit of
// work commits: it stores notifications, sends emails and pushes realtime
// updates. A listener failure is logged by the event bus and never reaches
// the operation that produced the event.
package listeners

import (
	"context"
	"fmt"
	"time"

	"freelance/internal/core/domain/model/chat"
	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"
	"freelance/internal/core/domain/model/reply"
	"freelance/internal/core/ports"
	"freelance/internal/pkg/eventbus"
)

// Subscriber is the registration side of the event bus.
type Subscriber interface {
	Subscribe(eventName string, listener eventbus.Listener[kernel.Event])
}

// ChatTopic is the realtime topic carrying the messages of a chat.
func ChatTopic(chatID kernel.ID) string {
	return fmt.Sprintf("chat.%d", chatID)
}

// NotificationsTopic is the realtime topic carrying an account's notifications.
func NotificationsTopic(accountID kernel.ID) string {
	return fmt.Sprintf("notifications.%d", accountID)
}

// participantsOf extracts the order participants from the lifecycle events
// that carry them.
func participantsOf(e kernel.Event) (order.Participants, bool) {
	switch ev := e.(type) {
	case reply.ReplyCreated:
		return ev.Participants, true
	case order.PerformerAssigned:
		return ev.Participants, true
	case order.PerformerRefused:
		return ev.Participants, true
	case order.WorkSubmitted:
		return ev.Participants, true
	case order.OrderCompleted:
		return ev.Participants, true
	case order.CorrectionRequested:
		return ev.Participants, true
	default:
		return order.Participants{}, false
	}
}

// counterparty is the side that did not act.
func counterparty(actor kernel.Role) kernel.Role {
	if actor == kernel.Customer {
		return kernel.Performer
	}
	return kernel.Customer
}

// contact is the address book entry of one side of an order.
type contact struct {
	accountID kernel.ID
	email     string
	name      string
}

func lookup(ctx context.Context, parties ports.PartyRepository, side kernel.Role, p order.Participants) (contact, error) {
	if side == kernel.Customer {
		c, err := parties.GetCustomer(ctx, p.CustomerID)
		if err != nil {
			return contact{}, err
		}
		return contact{accountID: c.AccountID(), email: c.Email(), name: c.Name()}, nil
	}
	pf, err := parties.GetPerformer(ctx, p.PerformerID)
	if err != nil {
		return contact{}, err
	}
	return contact{accountID: pf.AccountID(), email: pf.Email(), name: pf.Name()}, nil
}

// RealtimeListener pushes chat messages to the chat topic.
type RealtimeListener struct {
	realtime ports.RealtimePublisher
}

func NewRealtimeListener(realtime ports.RealtimePublisher) *RealtimeListener {
	return &RealtimeListener{realtime: realtime}
}

func (l *RealtimeListener) Register(bus Subscriber) {
	bus.Subscribe(chat.EventMessagePosted, l.Handle)
}

// MessagePayload is the realtime representation of a chat message.
type MessagePayload struct {
	EventID    string `json:"eventId"`
	ChatID     int64  `json:"chatId"`
	SenderID   int64  `json:"senderId"`
	SenderType string `json:"senderType"`
	Text       string `json:"text"`
	SentAt     string `json:"sentAt"`
}

func (l *RealtimeListener) Handle(ctx context.Context, e kernel.Event) error {
	posted, ok := e.(chat.MessagePosted)
	if !ok {
		return nil
	}
	return l.realtime.Publish(ctx, ChatTopic(posted.ChatID), MessagePayload{
		EventID:    posted.EventID().String(),
		ChatID:     posted.ChatID.Int64(),
		SenderID:   posted.SenderID.Int64(),
		SenderType: posted.SenderType.String(),
		Text:       posted.Text,
		SentAt:     posted.OccurredAt().UTC().Format(time.RFC3339),
	})
}
