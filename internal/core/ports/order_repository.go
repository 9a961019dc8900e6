// Package ports defines the contracts between the lifecycle engine and its
// infrastructure: repositories per aggregate, the unit of work, and the
// outbound email, realtime and verification code adapters.
package ports

import (
	"context"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order and assigns its ID.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. The update is conditional
	// on the version the order was loaded with; a concurrent change yields a
	// VersionIsInvalid error.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier, ObjectNotFound if absent.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// AdjustReplyBind atomically moves the advisory reply counter by delta,
	// never below zero, without touching the version.
	AdjustReplyBind(ctx context.Context, id kernel.ID, delta int) error
}
