package commands

import (
	"errors"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/guard"
)

var ErrOrderActivityCommandIsNotConstructed = errors.New(
	"OrderActivityCommand must be created via NewDeactivateOrderCommand or NewActivateOrderCommand",
)

// OrderActivityCommand takes an order off the public listing or puts it back.
type OrderActivityCommand struct { //nolint:recvcheck //using for validation
	caller  kernel.Caller
	orderID kernel.ID
	active  bool

	guard guard.ConstructorGuard
}

// NewDeactivateOrderCommand hides an unassigned order without deleting it.
func NewDeactivateOrderCommand(caller kernel.Caller, orderID kernel.ID) (OrderActivityCommand, error) {
	return newOrderActivityCommand(caller, orderID, false)
}

// NewActivateOrderCommand publishes a deactivated order again.
func NewActivateOrderCommand(caller kernel.Caller, orderID kernel.ID) (OrderActivityCommand, error) {
	return newOrderActivityCommand(caller, orderID, true)
}

func newOrderActivityCommand(caller kernel.Caller, orderID kernel.ID, active bool) (OrderActivityCommand, error) {
	if err := errors.Join(caller.Validate(), orderID.Validate()); err != nil {
		return OrderActivityCommand{}, err
	}
	return OrderActivityCommand{
		caller:  caller,
		orderID: orderID,
		active:  active,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c OrderActivityCommand) Validate() error {
	return c.guard.Validate(ErrOrderActivityCommandIsNotConstructed)
}

func (c OrderActivityCommand) Caller() kernel.Caller { return c.caller }
func (c OrderActivityCommand) OrderID() kernel.ID    { return c.orderID }
func (c OrderActivityCommand) Active() bool          { return c.active }
