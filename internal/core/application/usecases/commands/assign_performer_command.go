package commands

import (
	"errors"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/guard"
)

var ErrAssignPerformerCommandIsNotConstructed = errors.New(
	"AssignPerformerCommand must be created via NewAssignPerformerCommand constructor",
)

// AssignPerformerCommand represents the customer choosing one of the
// performers who replied to an order.
type AssignPerformerCommand struct { //nolint:recvcheck //using for validation
	caller      kernel.Caller
	orderID     kernel.ID
	performerID kernel.ID

	guard guard.ConstructorGuard
}

func NewAssignPerformerCommand(caller kernel.Caller, orderID, performerID kernel.ID) (AssignPerformerCommand, error) {
	if err := errors.Join(caller.Validate(), orderID.Validate(), performerID.Validate()); err != nil {
		return AssignPerformerCommand{}, err
	}

	return AssignPerformerCommand{
		caller:      caller,
		orderID:     orderID,
		performerID: performerID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AssignPerformerCommand) Validate() error {
	return c.guard.Validate(ErrAssignPerformerCommandIsNotConstructed)
}

func (c AssignPerformerCommand) Caller() kernel.Caller  { return c.caller }
func (c AssignPerformerCommand) OrderID() kernel.ID     { return c.orderID }
func (c AssignPerformerCommand) PerformerID() kernel.ID { return c.performerID }
