package commands

import "context"

// SoftDeleteOrderCommandHandler hides an order from its customer regardless
// of status. An order nobody works on can no longer be assigned from the
// customer's side, so its pending replies are removed in the same transaction.
type SoftDeleteOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewSoftDeleteOrderCommandHandler(uowFactory UoWFactory) SoftDeleteOrderCommandHandler {
	return SoftDeleteOrderCommandHandler{uowFactory: uowFactory}
}

func (h SoftDeleteOrderCommandHandler) Handle(ctx context.Context, cmd SoftDeleteOrderCommand) error {
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

	o.SoftDeleteByCustomer()
	if err = orders.Update(ctx, o); err != nil {
		return err
	}

	if !o.HasPerformer() {
		removed, deleteErr := uow.ReplyRepository().DeleteByOrder(ctx, o.ID())
		if deleteErr != nil {
			return deleteErr
		}
		if err = orders.AdjustReplyBind(ctx, o.ID(), -removed); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
