// Package notification provides the Notification entity: a message to one
// account created as a side effect of a lifecycle transition. Only the read
// flag ever changes after creation.
package notification

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/errs"
)

var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification")

type Type int

const (
	UnknownType Type = iota
	Reply
	Assigned
	Completed
	Correction
	Refused
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		UnknownType: "UNKNOWN",
		Reply:       "REPLY",
		Assigned:    "ASSIGNED",
		Completed:   "COMPLETED",
		Correction:  "CORRECTION",
		Refused:     "REFUSED",
	}
}

func ParseType(s string) (Type, error) {
	for t, name := range getTypeStrings() {
		if t != UnknownType && name == s {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a notification type", s))
}

func (t Type) String() string {
	if s, ok := getTypeStrings()[t]; ok {
		return s
	}
	return "UNKNOWN"
}

func (t Type) Validate() error {
	if t <= UnknownType || t > Refused {
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%d is not a notification type", t))
	}
	return nil
}

// Related points at the entities a notification is about. Any may be nil.
type Related struct {
	OrderID     *kernel.ID
	PerformerID *kernel.ID
	CustomerID  *kernel.ID
}

// Content is the recipient-facing text.
type Content struct {
	Title   string
	Message string
}

type Notification struct {
	id        kernel.ID
	accountID kernel.ID
	userRole  kernel.Role
	kind      Type
	content   Content
	isRead    bool
	createdAt time.Time
	related   Related

	isConstructed bool
}

func NewNotification(
	accountID kernel.ID, role kernel.Role, kind Type, content Content, related Related, now time.Time,
) (*Notification, error) {
	var titleErr error
	content.Title = strings.TrimSpace(content.Title)
	if content.Title == "" {
		titleErr = errs.NewValueIsRequiredError("title")
	}
	if err := errors.Join(accountID.Validate(), role.Validate(), kind.Validate(), titleErr); err != nil {
		return nil, err
	}

	return &Notification{
		accountID:     accountID,
		userRole:      role,
		kind:          kind,
		content:       content,
		createdAt:     now,
		related:       related,
		isConstructed: true,
	}, nil
}

func RestoreNotification(
	id, accountID kernel.ID, role kernel.Role, kind Type, content Content, related Related, isRead bool, createdAt time.Time,
) (*Notification, error) {
	n, err := NewNotification(accountID, role, kind, content, related, createdAt)
	if err != nil {
		return nil, err
	}
	if err = id.Validate(); err != nil {
		return nil, err
	}
	n.id = id
	n.isRead = isRead
	return n, nil
}

func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.ID         { return n.id }
func (n *Notification) AccountID() kernel.ID  { return n.accountID }
func (n *Notification) UserRole() kernel.Role { return n.userRole }
func (n *Notification) Type() Type            { return n.kind }
func (n *Notification) Content() Content      { return n.content }
func (n *Notification) IsRead() bool          { return n.isRead }
func (n *Notification) CreatedAt() time.Time  { return n.createdAt }
func (n *Notification) Related() Related      { return n.related }

// OwnerAccountID is the recipient; only the recipient may mark it read.
func (n *Notification) OwnerAccountID() kernel.ID {
	return n.accountID
}

func (n *Notification) IdentifyAs(id kernel.ID) {
	if n.id.IsZero() {
		n.id = id
	}
}

// MarkRead is idempotent.
func (n *Notification) MarkRead() {
	n.isRead = true
}

// IsAbout reports whether the notification of kind concerns orderID. Used to
// keep one COMPLETED notification per order and recipient.
func (n *Notification) IsAbout(kind Type, orderID kernel.ID) bool {
	return n.kind == kind && n.related.OrderID != nil && *n.related.OrderID == orderID
}
