package ports

import (
	"context"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/reply"
)

// ReplyRepository defines the persistence contract for replies. Bulk deletes
// run in the caller's transaction and are visible to later reads in it.
type ReplyRepository interface {
	// Add persists a new reply. A second reply for the same order and
	// performer yields ObjectAlreadyExists.
	Add(ctx context.Context, aggregate *reply.Reply) error
	Update(ctx context.Context, aggregate *reply.Reply) error
	Get(ctx context.Context, id kernel.ID) (*reply.Reply, error)

	// FindByOrderAndPerformer returns ObjectNotFound when the performer has
	// not replied to the order.
	FindByOrderAndPerformer(ctx context.Context, orderID, performerID kernel.ID) (*reply.Reply, error)
	Exists(ctx context.Context, orderID, performerID kernel.ID) (bool, error)

	Delete(ctx context.Context, aggregate *reply.Reply) error
	DeleteByOrder(ctx context.Context, orderID kernel.ID) (int, error)
	DeleteByOrderAndPerformer(ctx context.Context, orderID, performerID kernel.ID) (int, error)
}
