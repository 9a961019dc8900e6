package commands

import "context"

// OrderActivityCommandHandler deactivates or re-activates an order owned by
// the caller. Deactivation fails with InvalidState once a performer is assigned.
type OrderActivityCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewOrderActivityCommandHandler(uowFactory OrderUoWFactory) OrderActivityCommandHandler {
	return OrderActivityCommandHandler{uowFactory: uowFactory}
}

func (h OrderActivityCommandHandler) Handle(ctx context.Context, cmd OrderActivityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := loadOwnedOrder(ctx, orders, uow.PartyRepository(), cmd.Caller(), cmd.OrderID())
	if err != nil {
		return err
	}

	if cmd.Active() {
		err = o.Activate()
	} else {
		err = o.Deactivate()
	}
	if err != nil {
		return err
	}

	if err = orders.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
