package commands

import (
	"context"
	"errors"
	"time"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/errs"
	"freelance/internal/pkg/guard"
)

var ErrPurgeReadNotificationsCommandIsNotConstructed = errors.New(
	"PurgeReadNotificationsCommand must be created via NewPurgeReadNotificationsCommand constructor",
)

// PurgeReadNotificationsCommand removes read notifications older than the
// retention period. Unread notifications are kept regardless of age.
type PurgeReadNotificationsCommand struct { //nolint:recvcheck //using for validation
	retention time.Duration

	guard guard.ConstructorGuard
}

func NewPurgeReadNotificationsCommand(retention time.Duration) (PurgeReadNotificationsCommand, error) {
	if retention <= 0 {
		return PurgeReadNotificationsCommand{}, errs.NewValueIsInvalidError("retention")
	}
	return PurgeReadNotificationsCommand{retention: retention, guard: guard.NewConstructorGuard()}, nil
}

func (c PurgeReadNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeReadNotificationsCommandIsNotConstructed)
}

func (c PurgeReadNotificationsCommand) Retention() time.Duration { return c.retention }

type PurgeReadNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	clock      kernel.Clock
}

func NewPurgeReadNotificationsCommandHandler(
	uowFactory NotificationUoWFactory, clock kernel.Clock,
) PurgeReadNotificationsCommandHandler {
	return PurgeReadNotificationsCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns how many notifications were removed.
func (h PurgeReadNotificationsCommandHandler) Handle(ctx context.Context, cmd PurgeReadNotificationsCommand) (int64, error) {
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

	removed, err := uow.NotificationRepository().DeleteReadBefore(ctx, h.clock.Now().Add(-cmd.retention))
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return removed, nil
}
