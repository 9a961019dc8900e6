package queries

import (
	"errors"
	"time"

	"freelance/internal/core/domain/model/chat"
	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/guard"
)

var (
	ErrCountUnreadQueryIsNotConstructed = errors.New(
		"CountUnreadQuery must be created via NewCountUnreadQuery constructor",
	)
	ErrListChatsQueryIsNotConstructed = errors.New(
		"ListChatsQuery must be created via NewListChatsQuery constructor",
	)
)

// CountUnreadQuery counts the messages of the other party the caller has not
// seen yet. Only the two participants may ask.
type CountUnreadQuery struct {
	caller kernel.Caller
	chatID kernel.ID
	guard  guard.ConstructorGuard
}

func NewCountUnreadQuery(caller kernel.Caller, chatID kernel.ID) (CountUnreadQuery, error) {
	if err := errors.Join(caller.Validate(), chatID.Validate()); err != nil {
		return CountUnreadQuery{}, err
	}
	return CountUnreadQuery{caller: caller, chatID: chatID, guard: guard.NewConstructorGuard()}, nil
}

func (q CountUnreadQuery) Validate() error {
	return q.guard.Validate(ErrCountUnreadQueryIsNotConstructed)
}

// ListChatsQuery lists the chats of the caller that the caller has not hidden.
type ListChatsQuery struct {
	caller kernel.Caller
	guard  guard.ConstructorGuard
}

func NewListChatsQuery(caller kernel.Caller) (ListChatsQuery, error) {
	if err := caller.Validate(); err != nil {
		return ListChatsQuery{}, err
	}
	return ListChatsQuery{caller: caller, guard: guard.NewConstructorGuard()}, nil
}

func (q ListChatsQuery) Validate() error {
	return q.guard.Validate(ErrListChatsQueryIsNotConstructed)
}

// ChatView is one entry of the chat list as seen by Side.
type ChatView struct {
	ID            kernel.ID
	RoomName      chat.RoomName
	CustomerID    kernel.ID
	PerformerID   kernel.ID
	Side          kernel.Role
	LastMessageAt *time.Time
	Unread        int64
}
