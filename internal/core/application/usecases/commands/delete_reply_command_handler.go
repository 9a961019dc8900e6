package commands

import (
	"context"
)

// DeleteReplyCommandHandler removes a reply its performer no longer stands
// by. The reply of the performer working on the order can only go through a
// refusal.
type DeleteReplyCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteReplyCommandHandler(uowFactory UoWFactory) DeleteReplyCommandHandler {
	return DeleteReplyCommandHandler{uowFactory: uowFactory}
}

func (h DeleteReplyCommandHandler) Handle(ctx context.Context, cmd DeleteReplyCommand) error {
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

	if cmd.CompletedOnly() {
		err = r.EnsureDonned()
	} else {
		o, getErr := orders.Get(ctx, r.OrderID())
		if getErr != nil {
			return getErr
		}
		err = r.EnsureWithdrawable(o)
	}
	if err != nil {
		return err
	}

	if err = replies.Delete(ctx, r); err != nil {
		return err
	}

	if err = orders.AdjustReplyBind(ctx, r.OrderID(), -1); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
