package commands

import (
	"context"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/services"
	"freelance/internal/pkg/errs"
)

// RequestCorrectionCommandHandler returns work on check to the assigned
// performer, who gets a correction email and a CORRECTION notification.
type RequestCorrectionCommandHandler struct {
	uowFactory  UoWFactory
	publisher   EventPublisher
	clock       kernel.Clock
	coordinator services.LifecycleCoordinator
}

func NewRequestCorrectionCommandHandler(
	uowFactory UoWFactory, publisher EventPublisher, clock kernel.Clock,
) RequestCorrectionCommandHandler {
	return RequestCorrectionCommandHandler{
		uowFactory:  uowFactory,
		publisher:   publisher,
		clock:       clock,
		coordinator: services.NewLifecycleCoordinator(),
	}
}

func (h RequestCorrectionCommandHandler) Handle(ctx context.Context, cmd RequestCorrectionCommand) error {
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
	replies := uow.ReplyRepository()

	o, err := loadOwnedOrder(ctx, orders, uow.PartyRepository(), cmd.Caller(), cmd.OrderID())
	if err != nil {
		return err
	}

	if !o.IsAssignedTo(cmd.PerformerID()) {
		return errs.NewInvalidStateError("order", o.Status().String(), "request correction from unassigned performer for")
	}

	r, err := replies.FindByOrderAndPerformer(ctx, o.ID(), cmd.PerformerID())
	if err != nil {
		return err
	}

	if err = h.coordinator.ReturnForCorrection(o, r, h.clock.Now()); err != nil {
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
