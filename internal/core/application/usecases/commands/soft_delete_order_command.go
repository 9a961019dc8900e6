package commands

import (
	"errors"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/guard"
)

var ErrSoftDeleteOrderCommandIsNotConstructed = errors.New(
	"SoftDeleteOrderCommand must be created via NewSoftDeleteOrderCommand constructor",
)

type SoftDeleteOrderCommand struct { //nolint:recvcheck //using for validation
	caller  kernel.Caller
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewSoftDeleteOrderCommand(caller kernel.Caller, orderID kernel.ID) (SoftDeleteOrderCommand, error) {
	if err := errors.Join(caller.Validate(), orderID.Validate()); err != nil {
		return SoftDeleteOrderCommand{}, err
	}
	return SoftDeleteOrderCommand{caller: caller, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c SoftDeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrSoftDeleteOrderCommandIsNotConstructed)
}

func (c SoftDeleteOrderCommand) Caller() kernel.Caller { return c.caller }
func (c SoftDeleteOrderCommand) OrderID() kernel.ID    { return c.orderID }
