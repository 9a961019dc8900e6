package commands

import (
	"context"
	"errors"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/review"
	"freelance/internal/pkg/guard"
)

var ErrCreateReviewCommandIsNotConstructed = errors.New(
	"CreateReviewCommand must be created via NewCreateReviewCommand constructor",
)

// CreateReviewCommand represents a performer describing a finished order in
// their portfolio.
type CreateReviewCommand struct { //nolint:recvcheck //using for validation
	caller  kernel.Caller
	orderID kernel.ID
	body    review.Body

	guard guard.ConstructorGuard
}

func NewCreateReviewCommand(caller kernel.Caller, orderID kernel.ID, body review.Body) (CreateReviewCommand, error) {
	if err := errors.Join(caller.Validate(), orderID.Validate()); err != nil {
		return CreateReviewCommand{}, err
	}
	return CreateReviewCommand{caller: caller, orderID: orderID, body: body, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateReviewCommand) Validate() error {
	return c.guard.Validate(ErrCreateReviewCommandIsNotConstructed)
}

func (c CreateReviewCommand) Caller() kernel.Caller { return c.caller }
func (c CreateReviewCommand) OrderID() kernel.ID    { return c.orderID }
func (c CreateReviewCommand) Body() review.Body     { return c.body }

type CreateReviewCommandHandler struct {
	uowFactory ReviewUoWFactory
	clock      kernel.Clock
}

func NewCreateReviewCommandHandler(uowFactory ReviewUoWFactory, clock kernel.Clock) CreateReviewCommandHandler {
	return CreateReviewCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns the identity assigned to the new review.
func (h CreateReviewCommandHandler) Handle(ctx context.Context, cmd CreateReviewCommand) (kernel.ID, error) {
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

	performer, err := uow.PartyRepository().PerformerByAccount(ctx, cmd.Caller().AccountID())
	if err != nil {
		return 0, err
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return 0, err
	}

	w, err := review.NewWorkExperience(o, performer.ID(), cmd.Body(), h.clock.Now())
	if err != nil {
		return 0, err
	}

	if err = uow.ReviewRepository().Add(ctx, w); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return w.ID(), nil
}
