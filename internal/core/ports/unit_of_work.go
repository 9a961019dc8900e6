package ports

import (
	"context"

	"freelance/internal/core/domain/model/kernel"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Repositories
// obtained from it share the transaction started by Begin and register every
// aggregate they persist, so the events those aggregates recorded can be
// collected once the transaction commits.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// CollectEvents drains the events of the aggregates persisted in this
	// unit of work, in the order they were recorded.
	CollectEvents() []kernel.Event

	OrderRepository() OrderRepository
	ReplyRepository() ReplyRepository
	ChatRepository() ChatRepository
	PartyRepository() PartyRepository
	NotificationRepository() NotificationRepository
	ReviewRepository() ReviewRepository
}
