package ports

import (
	"context"
	"time"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/notification"
)

type NotificationRepository interface {
	Add(ctx context.Context, n *notification.Notification) error
	Update(ctx context.Context, n *notification.Notification) error
	Get(ctx context.Context, id kernel.ID) (*notification.Notification, error)

	// ExistsAbout reports whether accountID already has a notification of
	// kind about orderID.
	ExistsAbout(ctx context.Context, accountID kernel.ID, kind notification.Type, orderID kernel.ID) (bool, error)

	// DeleteReadBefore removes read notifications older than before.
	DeleteReadBefore(ctx context.Context, before time.Time) (int64, error)
}
