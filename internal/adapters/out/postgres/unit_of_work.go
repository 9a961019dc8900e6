// Package postgres provides the GORM-based Unit of Work. Repositories handed
// out by a unit of work share its transaction and register every aggregate
// they persist, so the events recorded by those aggregates can be collected
// once the transaction commits.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.ReplyRepository().Update(ctx, r); err != nil {
//	    return err
//	}
//
//	if err := uow.Commit(ctx); err != nil {
//	    return err
//	}
//	bus.Publish(ctx, uow.CollectEvents()...)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Orders and replies carry a version column; a lost update surfaces as
//     VersionIsInvalid instead of silently overwriting
package postgres

import (
	"context"

	"freelance/internal/adapters/out/postgres/chatrepo"
	"freelance/internal/adapters/out/postgres/notificationrepo"
	"freelance/internal/adapters/out/postgres/orderrepo"
	"freelance/internal/adapters/out/postgres/partyrepo"
	"freelance/internal/adapters/out/postgres/replyrepo"
	"freelance/internal/adapters/out/postgres/reviewrepo"
	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Each business operation gets a fresh unit of work with its own transaction
// and tracking state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// Open db with gorm.Config{TranslateError: true} so unique violations map to
// ObjectAlreadyExists.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.New()
}

// New is Create with the concrete type, for adapters that need the narrower
// unit of work shapes of the application layer.
func (f *GormUnitOfWorkFactory) New() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]any, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate changes
// for business operations.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []any
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns error if no active transaction exists or if the commit operation fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction and the
// events of the aggregates tracked so far. Calling it after Commit returns
// gorm.ErrInvalidTransaction and changes nothing, which makes it safe to defer.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// CollectEvents drains the events recorded by every tracked aggregate, in
// tracking order. Aggregates tracked more than once emit their events once.
func (uow *GormUnitOfWork) CollectEvents() []kernel.Event {
	var events []kernel.Event
	for _, aggregate := range uow.trackedAggregates {
		if source, ok := aggregate.(kernel.EventSource); ok {
			events = append(events, source.PullEvents()...)
		}
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return events
}

// TrackAggregate registers a domain aggregate as modified within this unit of work.
// Repository implementations call it after a successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, aggregate)
}

// conn returns the transaction when one is active, otherwise the main
// connection for immediate execution.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ReplyRepository() ports.ReplyRepository {
	return replyrepo.NewGormReplyRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ChatRepository() ports.ChatRepository {
	return chatrepo.NewGormChatRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PartyRepository() ports.PartyRepository {
	return partyrepo.NewGormPartyRepository(uow.conn())
}

func (uow *GormUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewGormNotificationRepository(uow.conn())
}

func (uow *GormUnitOfWork) ReviewRepository() ports.ReviewRepository {
	return reviewrepo.NewGormReviewRepository(uow.conn())
}
