package commands

import (
	"context"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/services"
	"freelance/internal/pkg/errs"
)

// ConfirmOrderDoneCommandHandler either completes an order, making the
// performer's reply terminal, or moves it between in process and on check
// without any side effects.
type ConfirmOrderDoneCommandHandler struct {
	uowFactory  UoWFactory
	publisher   EventPublisher
	clock       kernel.Clock
	coordinator services.LifecycleCoordinator
}

func NewConfirmOrderDoneCommandHandler(
	uowFactory UoWFactory, publisher EventPublisher, clock kernel.Clock,
) ConfirmOrderDoneCommandHandler {
	return ConfirmOrderDoneCommandHandler{
		uowFactory:  uowFactory,
		publisher:   publisher,
		clock:       clock,
		coordinator: services.NewLifecycleCoordinator(),
	}
}

func (h ConfirmOrderDoneCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderDoneCommand) error {
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

	if !cmd.Done() {
		if err = o.SetOnCheck(cmd.OnCheck()); err != nil {
			return err
		}
		if err = orders.Update(ctx, o); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	if !o.HasPerformer() {
		return errs.NewInvalidStateError("order", o.Status().String(), "complete unassigned")
	}

	replies := uow.ReplyRepository()
	r, err := replies.FindByOrderAndPerformer(ctx, o.ID(), *o.Performer())
	if err != nil {
		return err
	}

	if err = h.coordinator.Confirm(o, r, h.clock.Now()); err != nil {
		return err
	}

	if err = orders.Update(ctx, o); err != nil {
		return err
	}

	if err = replies.Update(ctx, r); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, uow.CollectEvents()...)
	return nil
}
