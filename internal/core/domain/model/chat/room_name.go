package chat

import (
	"fmt"
	"regexp"
	"strings"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/errs"
)

var roomNamePattern = regexp.MustCompile(`^Order #(\d+):`)

// RoomName is the display name and lookup key of a chat.
type RoomName string

// NewRoomName derives the room name of the chat about orderID.
func NewRoomName(orderID kernel.ID, title string) RoomName {
	return RoomName(fmt.Sprintf("Order #%d: %s", orderID, strings.TrimSpace(title)))
}

// OrderID parses the order id back out of the room name. A malformed name is
// an invalid state, never a silent zero.
func (n RoomName) OrderID() (kernel.ID, error) {
	m := roomNamePattern.FindStringSubmatch(string(n))
	if m == nil {
		return 0, errs.NewInvalidStateError("chat", string(n), "resolve order of")
	}
	id, err := kernel.ParseID(m[1])
	if err != nil {
		return 0, errs.NewInvalidStateErrorWithCause("chat", string(n), "resolve order of", err)
	}
	return id, nil
}

func (n RoomName) String() string {
	return string(n)
}
