package commands

import (
	"context"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/reply"
	"freelance/internal/pkg/errs"
)

// CreateReplyCommandHandler records a performer's reply to an Active order
// and notifies the customer. A second reply by the same performer yields
// ObjectAlreadyExists, whether caught by the check or by the unique index.
type CreateReplyCommandHandler struct {
	uowFactory UoWFactory
	publisher  EventPublisher
	clock      kernel.Clock
}

func NewCreateReplyCommandHandler(
	uowFactory UoWFactory, publisher EventPublisher, clock kernel.Clock,
) CreateReplyCommandHandler {
	return CreateReplyCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle returns the identity assigned to the new reply.
func (h CreateReplyCommandHandler) Handle(ctx context.Context, cmd CreateReplyCommand) (kernel.ID, error) {
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

	orders := uow.OrderRepository()
	replies := uow.ReplyRepository()

	performer, err := uow.PartyRepository().PerformerByAccount(ctx, cmd.Caller().AccountID())
	if err != nil {
		return 0, err
	}

	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return 0, err
	}

	exists, err := replies.Exists(ctx, o.ID(), performer.ID())
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, errs.NewObjectAlreadyExistsError("reply", o.ID())
	}

	r, err := reply.NewReply(o, performer.ID(), h.clock.Now())
	if err != nil {
		return 0, err
	}

	if err = replies.Add(ctx, r); err != nil {
		return 0, err
	}

	if err = orders.AdjustReplyBind(ctx, o.ID(), 1); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.publisher.Publish(ctx, uow.CollectEvents()...)
	return r.ID(), nil
}
