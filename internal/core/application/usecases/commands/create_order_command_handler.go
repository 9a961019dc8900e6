package commands

import (
	"context"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"
)

// CreateOrderCommandHandler publishes a new Active order for the calling
// customer. It has no side effects beyond persistence.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns the identity assigned to the new order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.ID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customer, err := uow.PartyRepository().CustomerByAccount(ctx, cmd.Caller().AccountID())
	if err != nil {
		return 0, err
	}

	o, err := order.NewOrder(customer.ID(), cmd.Details(), h.clock.Now())
	if err != nil {
		return 0, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return o.ID(), nil
}
