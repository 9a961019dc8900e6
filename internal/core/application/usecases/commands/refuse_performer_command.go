package commands

import (
	"errors"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/guard"
)

var ErrRefusePerformerCommandIsNotConstructed = errors.New(
	"RefusePerformerCommand must be created via NewRefusePerformerByCustomerCommand or NewRefuseOrderByPerformerCommand",
)

// RefusePerformerCommand breaks off an assignment. The two constructors are
// the customer's and the performer's side of the same operation.
type RefusePerformerCommand struct { //nolint:recvcheck //using for validation
	caller  kernel.Caller
	orderID kernel.ID
	by      kernel.Role

	guard guard.ConstructorGuard
}

// NewRefusePerformerByCustomerCommand releases the performer of an order the caller owns.
func NewRefusePerformerByCustomerCommand(caller kernel.Caller, orderID kernel.ID) (RefusePerformerCommand, error) {
	return newRefusePerformerCommand(caller, orderID, kernel.Customer)
}

// NewRefuseOrderByPerformerCommand lets the assigned performer walk away from an order.
func NewRefuseOrderByPerformerCommand(caller kernel.Caller, orderID kernel.ID) (RefusePerformerCommand, error) {
	return newRefusePerformerCommand(caller, orderID, kernel.Performer)
}

func newRefusePerformerCommand(caller kernel.Caller, orderID kernel.ID, by kernel.Role) (RefusePerformerCommand, error) {
	if err := errors.Join(caller.Validate(), orderID.Validate()); err != nil {
		return RefusePerformerCommand{}, err
	}
	return RefusePerformerCommand{caller: caller, orderID: orderID, by: by, guard: guard.NewConstructorGuard()}, nil
}

func (c RefusePerformerCommand) Validate() error {
	return c.guard.Validate(ErrRefusePerformerCommandIsNotConstructed)
}

func (c RefusePerformerCommand) Caller() kernel.Caller { return c.caller }
func (c RefusePerformerCommand) OrderID() kernel.ID    { return c.orderID }

// By is the side breaking off the assignment.
func (c RefusePerformerCommand) By() kernel.Role { return c.by }
