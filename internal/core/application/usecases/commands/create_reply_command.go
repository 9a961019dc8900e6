package commands

import (
	"errors"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/guard"
)

var ErrCreateReplyCommandIsNotConstructed = errors.New(
	"CreateReplyCommand must be created via NewCreateReplyCommand constructor",
)

// CreateReplyCommand represents a performer applying for an order.
type CreateReplyCommand struct { //nolint:recvcheck //using for validation
	caller  kernel.Caller
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewCreateReplyCommand(caller kernel.Caller, orderID kernel.ID) (CreateReplyCommand, error) {
	if err := errors.Join(caller.Validate(), orderID.Validate()); err != nil {
		return CreateReplyCommand{}, err
	}
	return CreateReplyCommand{caller: caller, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateReplyCommand) Validate() error {
	return c.guard.Validate(ErrCreateReplyCommandIsNotConstructed)
}

func (c CreateReplyCommand) Caller() kernel.Caller { return c.caller }
func (c CreateReplyCommand) OrderID() kernel.ID    { return c.orderID }
