package commands

import (
	"errors"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/guard"
)

var ErrRequestCorrectionCommandIsNotConstructed = errors.New(
	"RequestCorrectionCommand must be created via NewRequestCorrectionCommand constructor",
)

// RequestCorrectionCommand represents the customer sending checked work back.
type RequestCorrectionCommand struct { //nolint:recvcheck //using for validation
	caller      kernel.Caller
	orderID     kernel.ID
	performerID kernel.ID

	guard guard.ConstructorGuard
}

func NewRequestCorrectionCommand(
	caller kernel.Caller, orderID, performerID kernel.ID,
) (RequestCorrectionCommand, error) {
	if err := errors.Join(caller.Validate(), orderID.Validate(), performerID.Validate()); err != nil {
		return RequestCorrectionCommand{}, err
	}
	return RequestCorrectionCommand{
		caller:      caller,
		orderID:     orderID,
		performerID: performerID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RequestCorrectionCommand) Validate() error {
	return c.guard.Validate(ErrRequestCorrectionCommandIsNotConstructed)
}

func (c RequestCorrectionCommand) Caller() kernel.Caller  { return c.caller }
func (c RequestCorrectionCommand) OrderID() kernel.ID     { return c.orderID }
func (c RequestCorrectionCommand) PerformerID() kernel.ID { return c.performerID }
