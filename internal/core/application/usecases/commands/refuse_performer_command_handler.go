package commands

import (
	"context"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"
	"freelance/internal/core/domain/services"
	"freelance/internal/pkg/errs"
)

// RefusePerformerCommandHandler returns an assigned order to Active and
// deletes the released performer's reply only; replies of other performers
// survive. The counterparty gets a REFUSED notification and a refusal email.
type RefusePerformerCommandHandler struct {
	uowFactory  UoWFactory
	publisher   EventPublisher
	clock       kernel.Clock
	coordinator services.LifecycleCoordinator
}

func NewRefusePerformerCommandHandler(
	uowFactory UoWFactory, publisher EventPublisher, clock kernel.Clock,
) RefusePerformerCommandHandler {
	return RefusePerformerCommandHandler{
		uowFactory:  uowFactory,
		publisher:   publisher,
		clock:       clock,
		coordinator: services.NewLifecycleCoordinator(),
	}
}

func (h RefusePerformerCommandHandler) Handle(ctx context.Context, cmd RefusePerformerCommand) error {
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

	var (
		o   *order.Order
		err error
	)
	if cmd.By() == kernel.Performer {
		o, err = h.loadAssignedOrder(ctx, uow, cmd)
	} else {
		o, err = loadOwnedOrder(ctx, orders, uow.PartyRepository(), cmd.Caller(), cmd.OrderID())
	}
	if err != nil {
		return err
	}

	released, err := h.coordinator.Refuse(o, cmd.By(), h.clock.Now())
	if err != nil {
		return err
	}

	if err = orders.Update(ctx, o); err != nil {
		return err
	}

	removed, err := uow.ReplyRepository().DeleteByOrderAndPerformer(ctx, o.ID(), released)
	if err != nil {
		return err
	}

	if err = orders.AdjustReplyBind(ctx, o.ID(), -removed); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, uow.CollectEvents()...)
	return nil
}

// loadAssignedOrder checks the caller is the performer currently working on
// the order. An order without performer fails before the access check.
func (h RefusePerformerCommandHandler) loadAssignedOrder(
	ctx context.Context, uow UoW, cmd RefusePerformerCommand,
) (*order.Order, error) {
	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if !o.HasPerformer() {
		return nil, errs.NewInvalidStateError("order", o.Status().String(), "refuse unassigned")
	}

	performer, err := uow.PartyRepository().GetPerformer(ctx, *o.Performer())
	if err != nil {
		return nil, err
	}
	if err = services.NewAccessGuard().AssertOwnership("order", performer, cmd.Caller()); err != nil {
		return nil, err
	}
	return o, nil
}
