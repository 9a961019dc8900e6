package chat

import (
	"errors"
	"time"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"
	"freelance/internal/pkg/errs"
)

var ErrChatIsNotConstructed = errors.New("Chat must be created via NewChat constructor")

const EventMessagePosted = "chat.message_posted"

// MessagePosted is recorded for every new message; the realtime listener
// fans it out on topic chat.<chatID>.
type MessagePosted struct {
	kernel.EventHeader
	ChatID     kernel.ID
	SenderID   kernel.ID
	SenderType kernel.Role
	Text       string
}

// ReadMark is one side's read state.
type ReadMark struct {
	Checked       bool
	LastCheckedAt *time.Time
}

// State groups the mutable per-side fields for restoration.
type State struct {
	LastMessageAt      *time.Time
	Customer           ReadMark
	Performer          ReadMark
	DeletedByCustomer  bool
	DeletedByPerformer bool
}

type Chat struct {
	kernel.EventRecorder

	id          kernel.ID
	customerID  kernel.ID
	performerID kernel.ID
	roomName    RoomName
	state       State

	isConstructed bool
}

// NewChat opens the chat about target between its customer and performerID.
func NewChat(target *order.Order, performerID kernel.ID) (*Chat, error) {
	if err := errors.Join(target.Validate(), performerID.Validate()); err != nil {
		return nil, err
	}
	return &Chat{
		customerID:    target.CustomerID(),
		performerID:   performerID,
		roomName:      NewRoomName(target.ID(), target.Title()),
		isConstructed: true,
	}, nil
}

func RestoreChat(id, customerID, performerID kernel.ID, roomName RoomName, state State) (*Chat, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), performerID.Validate()); err != nil {
		return nil, err
	}
	return &Chat{
		id:            id,
		customerID:    customerID,
		performerID:   performerID,
		roomName:      roomName,
		state:         state,
		isConstructed: true,
	}, nil
}

func (c *Chat) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrChatIsNotConstructed
	}
	return nil
}

func (c *Chat) ID() kernel.ID          { return c.id }
func (c *Chat) CustomerID() kernel.ID  { return c.customerID }
func (c *Chat) PerformerID() kernel.ID { return c.performerID }
func (c *Chat) RoomName() RoomName     { return c.roomName }
func (c *Chat) State() State           { return c.state }

func (c *Chat) IdentifyAs(id kernel.ID) {
	if c.id.IsZero() {
		c.id = id
	}
}

func (c *Chat) mark(side kernel.Role) (*ReadMark, error) {
	switch side {
	case kernel.Customer:
		return &c.state.Customer, nil
	case kernel.Performer:
		return &c.state.Performer, nil
	default:
		return nil, errs.NewAccessDeniedError("chat")
	}
}

// LastCheckedBy returns when side last read the chat, nil if never.
func (c *Chat) LastCheckedBy(side kernel.Role) *time.Time {
	m, err := c.mark(side)
	if err != nil {
		return nil
	}
	return m.LastCheckedAt
}

// IsCheckedBy reports whether side has read everything posted so far.
func (c *Chat) IsCheckedBy(side kernel.Role) bool {
	m, err := c.mark(side)
	return err == nil && m.Checked
}

// MarkChecked records that side has read the chat at now.
func (c *Chat) MarkChecked(side kernel.Role, now time.Time) error {
	m, err := c.mark(side)
	if err != nil {
		return err
	}
	m.Checked = true
	m.LastCheckedAt = &now
	return nil
}

// PostMessage appends a message from side. The sender's own read mark is left
// untouched; the other side becomes unchecked.
func (c *Chat) PostMessage(side kernel.Role, senderAccountID kernel.ID, text string, now time.Time) (*Message, error) {
	if _, err := c.mark(side); err != nil {
		return nil, err
	}
	text, err := validateText(text)
	if err != nil {
		return nil, err
	}

	other := kernel.Customer
	if side == kernel.Customer {
		other = kernel.Performer
	}
	otherMark, _ := c.mark(other)
	otherMark.Checked = false
	c.state.LastMessageAt = &now

	c.Record(MessagePosted{
		EventHeader: kernel.NewEventHeader(EventMessagePosted, now),
		ChatID:      c.id,
		SenderID:    senderAccountID,
		SenderType:  side,
		Text:        text,
	})

	return &Message{
		chatID:        c.id,
		text:          text,
		senderID:      senderAccountID,
		senderType:    side,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// IsDeletedBy reports whether side has hidden the chat.
func (c *Chat) IsDeletedBy(side kernel.Role) bool {
	switch side {
	case kernel.Customer:
		return c.state.DeletedByCustomer
	case kernel.Performer:
		return c.state.DeletedByPerformer
	default:
		return false
	}
}

// SoftDelete hides the chat for side. Allowed only when the order the chat is
// about is done or has no performer working on it.
func (c *Chat) SoftDelete(side kernel.Role, target *order.Order) error {
	orderID, err := c.roomName.OrderID()
	if err != nil {
		return err
	}
	if err = target.Validate(); err != nil {
		return err
	}
	if target.ID() != orderID {
		return errs.NewInvalidStateError("chat", c.roomName.String(), "resolve order of")
	}
	if target.Status() != order.Done && target.HasPerformer() {
		return errs.NewInvalidStateError("chat", target.Status().String(), "delete while work is in progress in")
	}

	switch side {
	case kernel.Customer:
		c.state.DeletedByCustomer = true
	case kernel.Performer:
		c.state.DeletedByPerformer = true
	default:
		return errs.NewAccessDeniedError("chat")
	}
	return nil
}

// Reopen makes the chat visible to both sides again when new work starts in
// it. It reports whether anything changed.
func (c *Chat) Reopen() bool {
	if !c.state.DeletedByCustomer && !c.state.DeletedByPerformer {
		return false
	}
	c.state.DeletedByCustomer = false
	c.state.DeletedByPerformer = false
	return true
}
