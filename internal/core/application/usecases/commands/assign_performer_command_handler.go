package commands

import (
	"context"
	"errors"

	"freelance/internal/core/domain/model/chat"
	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"
	"freelance/internal/core/domain/services"
	"freelance/internal/core/ports"
	"freelance/internal/pkg/errs"
)

// AssignPerformerCommandHandler takes an order into work with a performer who
// replied to it. The reply is synced, the chat between both parties is
// ensured, and the performer is notified once the transaction commits.
//
// Example:
//
//	cmd, _ := NewAssignPerformerCommand(caller, orderID, performerID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // order or performer missing
//	case errors.Is(err, errs.ErrAccessDenied):
//	    // caller does not own the order
//	case errors.Is(err, errs.ErrInvalidState):
//	    // performer did not reply, or the order is not Active
//	}
type AssignPerformerCommandHandler struct {
	uowFactory  UoWFactory
	publisher   EventPublisher
	clock       kernel.Clock
	coordinator services.LifecycleCoordinator
}

func NewAssignPerformerCommandHandler(
	uowFactory UoWFactory, publisher EventPublisher, clock kernel.Clock,
) AssignPerformerCommandHandler {
	return AssignPerformerCommandHandler{
		uowFactory:  uowFactory,
		publisher:   publisher,
		clock:       clock,
		coordinator: services.NewLifecycleCoordinator(),
	}
}

func (h AssignPerformerCommandHandler) Handle(ctx context.Context, cmd AssignPerformerCommand) error {
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
	parties := uow.PartyRepository()

	o, err := loadOwnedOrder(ctx, orders, parties, cmd.Caller(), cmd.OrderID())
	if err != nil {
		return err
	}

	performer, err := parties.GetPerformer(ctx, cmd.PerformerID())
	if err != nil {
		return err
	}

	r, err := replies.FindByOrderAndPerformer(ctx, o.ID(), performer.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewInvalidStateErrorWithCause("order", o.Status().String(), "assign performer without reply to", err)
	}
	if err != nil {
		return err
	}

	now := h.clock.Now()
	if err = h.coordinator.Assign(o, r, now); err != nil {
		return err
	}

	if err = orders.Update(ctx, o); err != nil {
		return err
	}

	if err = replies.Update(ctx, r); err != nil {
		return err
	}

	if _, err = ensureChatExists(ctx, uow.ChatRepository(), o, performer.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, uow.CollectEvents()...)
	return nil
}

// ensureChatExists returns the chat about o between its customer and
// performerID, creating it when no chat with that room name and parties exists.
// A reused chat hidden by either side is reopened for the new work.
func ensureChatExists(
	ctx context.Context, chats ports.ChatRepository, o *order.Order, performerID kernel.ID,
) (*chat.Chat, error) {
	roomName := chat.NewRoomName(o.ID(), o.Title())

	existing, err := chats.FindByRoom(ctx, roomName, o.CustomerID(), performerID)
	if err == nil {
		if existing.Reopen() {
			if err = chats.Update(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	c, err := chat.NewChat(o, performerID)
	if err != nil {
		return nil, err
	}
	if err = chats.Add(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
