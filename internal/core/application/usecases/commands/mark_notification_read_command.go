package commands

import (
	"context"
	"errors"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/services"
	"freelance/internal/pkg/guard"
)

var ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
	"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
)

type MarkNotificationReadCommand struct { //nolint:recvcheck //using for validation
	caller         kernel.Caller
	notificationID kernel.ID

	guard guard.ConstructorGuard
}

func NewMarkNotificationReadCommand(caller kernel.Caller, notificationID kernel.ID) (MarkNotificationReadCommand, error) {
	if err := errors.Join(caller.Validate(), notificationID.Validate()); err != nil {
		return MarkNotificationReadCommand{}, err
	}
	return MarkNotificationReadCommand{
		caller:         caller,
		notificationID: notificationID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

func (c MarkNotificationReadCommand) Caller() kernel.Caller     { return c.caller }
func (c MarkNotificationReadCommand) NotificationID() kernel.ID { return c.notificationID }

type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{uowFactory: uowFactory}
}

func (h MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
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

	notifications := uow.NotificationRepository()

	n, err := notifications.Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}

	if err = services.NewAccessGuard().AssertOwnership("notification", n, cmd.Caller()); err != nil {
		return err
	}

	if n.IsRead() {
		return uow.Commit(ctx)
	}

	n.MarkRead()
	if err = notifications.Update(ctx, n); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
