package commands

import (
	"context"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/services"
)

// MarkTaskDoneCommandHandler puts an order in process on check once its
// performer claims the work is done. The customer is told by email and by a
// COMPLETED notification.
type MarkTaskDoneCommandHandler struct {
	uowFactory  UoWFactory
	publisher   EventPublisher
	clock       kernel.Clock
	coordinator services.LifecycleCoordinator
}

func NewMarkTaskDoneCommandHandler(
	uowFactory UoWFactory, publisher EventPublisher, clock kernel.Clock,
) MarkTaskDoneCommandHandler {
	return MarkTaskDoneCommandHandler{
		uowFactory:  uowFactory,
		publisher:   publisher,
		clock:       clock,
		coordinator: services.NewLifecycleCoordinator(),
	}
}

func (h MarkTaskDoneCommandHandler) Handle(ctx context.Context, cmd MarkTaskDoneCommand) error {
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

	replies := uow.ReplyRepository()
	orders := uow.OrderRepository()

	r, err := loadOwnedReply(ctx, replies, uow.PartyRepository(), cmd.Caller(), cmd.ReplyID())
	if err != nil {
		return err
	}

	o, err := orders.Get(ctx, r.OrderID())
	if err != nil {
		return err
	}

	if err = h.coordinator.SubmitWork(o, r, h.clock.Now()); err != nil {
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
