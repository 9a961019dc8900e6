package commands

import (
	"errors"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"
	"freelance/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a customer publishing a new order.
//
// Example:
//
//	details, _ := order.NewDetails("Telegram bot", "Reminders bot", "2 weeks", "Go", 50000)
//	cmd, err := NewCreateOrderCommand(caller, details)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	id, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	caller  kernel.Caller
	details order.Details

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the caller and the order details.
func NewCreateOrderCommand(caller kernel.Caller, details order.Details) (CreateOrderCommand, error) {
	if err := errors.Join(caller.Validate(), details.Validate()); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		caller:  caller,
		details: details,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Caller() kernel.Caller {
	return c.caller
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}
