package commands

import (
	"errors"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/errs"
	"freelance/internal/pkg/guard"
)

var (
	ErrGetMessagesCommandIsNotConstructed = errors.New(
		"GetMessagesCommand must be created via NewGetMessagesCommand constructor",
	)
	ErrSendMessageCommandIsNotConstructed = errors.New(
		"SendMessageCommand must be created via NewSendMessageCommand constructor",
	)
	ErrSoftDeleteChatCommandIsNotConstructed = errors.New(
		"SoftDeleteChatCommand must be created via NewSoftDeleteChatCommand constructor",
	)
)

// GetMessagesCommand reads a chat history. Reading marks the caller's side
// checked, which is why it is a command.
type GetMessagesCommand struct { //nolint:recvcheck //using for validation
	caller kernel.Caller
	chatID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetMessagesCommand(caller kernel.Caller, chatID kernel.ID) (GetMessagesCommand, error) {
	if err := errors.Join(caller.Validate(), chatID.Validate()); err != nil {
		return GetMessagesCommand{}, err
	}
	return GetMessagesCommand{caller: caller, chatID: chatID, guard: guard.NewConstructorGuard()}, nil
}

func (c GetMessagesCommand) Validate() error {
	return c.guard.Validate(ErrGetMessagesCommandIsNotConstructed)
}

func (c GetMessagesCommand) Caller() kernel.Caller { return c.caller }
func (c GetMessagesCommand) ChatID() kernel.ID     { return c.chatID }

type SendMessageCommand struct { //nolint:recvcheck //using for validation
	caller kernel.Caller
	chatID kernel.ID
	text   string

	guard guard.ConstructorGuard
}

func NewSendMessageCommand(caller kernel.Caller, chatID kernel.ID, text string) (SendMessageCommand, error) {
	if err := errors.Join(caller.Validate(), chatID.Validate()); err != nil {
		return SendMessageCommand{}, err
	}
	if text == "" {
		return SendMessageCommand{}, errs.NewValueIsRequiredError("text")
	}
	return SendMessageCommand{caller: caller, chatID: chatID, text: text, guard: guard.NewConstructorGuard()}, nil
}

func (c SendMessageCommand) Validate() error {
	return c.guard.Validate(ErrSendMessageCommandIsNotConstructed)
}

func (c SendMessageCommand) Caller() kernel.Caller { return c.caller }
func (c SendMessageCommand) ChatID() kernel.ID     { return c.chatID }
func (c SendMessageCommand) Text() string          { return c.text }

type SoftDeleteChatCommand struct { //nolint:recvcheck //using for validation
	caller kernel.Caller
	chatID kernel.ID

	guard guard.ConstructorGuard
}

func NewSoftDeleteChatCommand(caller kernel.Caller, chatID kernel.ID) (SoftDeleteChatCommand, error) {
	if err := errors.Join(caller.Validate(), chatID.Validate()); err != nil {
		return SoftDeleteChatCommand{}, err
	}
	return SoftDeleteChatCommand{caller: caller, chatID: chatID, guard: guard.NewConstructorGuard()}, nil
}

func (c SoftDeleteChatCommand) Validate() error {
	return c.guard.Validate(ErrSoftDeleteChatCommandIsNotConstructed)
}

func (c SoftDeleteChatCommand) Caller() kernel.Caller { return c.caller }
func (c SoftDeleteChatCommand) ChatID() kernel.ID     { return c.chatID }
