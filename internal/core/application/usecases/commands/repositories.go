// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every handler validates its command, loads the aggregates it mutates fresh
// inside one unit of work, commits, and only then publishes the events the
// persisted aggregates recorded.
package commands

import (
	"context"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// EventCollector drains the events of the aggregates persisted in a unit of work.
	EventCollector interface {
		CollectEvents() []kernel.Event
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ReplyRepoFactory interface {
		ReplyRepository() ports.ReplyRepository
	}

	ChatRepoFactory interface {
		ChatRepository() ports.ChatRepository
	}

	PartyRepoFactory interface {
		PartyRepository() ports.PartyRepository
	}

	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	ReviewRepoFactory interface {
		ReviewRepository() ports.ReviewRepository
	}

	// OrderUoW serves operations touching only the order itself.
	OrderUoW interface {
		TxManager
		EventCollector
		OrderRepoFactory
		PartyRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW serves the lifecycle operations that move orders, replies and chats
	// together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, id)
	//   r, err := uow.ReplyRepository().FindByOrderAndPerformer(ctx, id, performerID)
	//   // ... mutate, Update both
	//
	//   err = uow.Commit(ctx)
	//   publisher.Publish(ctx, uow.CollectEvents()...)
	UoW interface {
		TxManager
		EventCollector
		OrderRepoFactory
		ReplyRepoFactory
		ChatRepoFactory
		PartyRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}

	ReviewUoW interface {
		TxManager
		OrderRepoFactory
		PartyRepoFactory
		ReviewRepoFactory
	}

	ReviewUoWFactory interface {
		Create() ReviewUoW
	}

	// EventPublisher receives the events collected after a commit.
	EventPublisher interface {
		Publish(ctx context.Context, events ...kernel.Event)
	}
)

// Function adapters let a single ports.UnitOfWorkFactory serve every
// narrower factory above.
type (
	OrderUoWFactoryFunc        func() OrderUoW
	UoWFactoryFunc             func() UoW
	NotificationUoWFactoryFunc func() NotificationUoW
	ReviewUoWFactoryFunc       func() ReviewUoW
)

func (f OrderUoWFactoryFunc) Create() OrderUoW               { return f() }
func (f UoWFactoryFunc) Create() UoW                         { return f() }
func (f NotificationUoWFactoryFunc) Create() NotificationUoW { return f() }
func (f ReviewUoWFactoryFunc) Create() ReviewUoW             { return f() }
