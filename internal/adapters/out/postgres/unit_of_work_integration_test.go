package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "freelance/internal/adapters/out/postgres"
	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"
	"freelance/internal/core/domain/model/reply"
	"freelance/internal/core/ports"
	"freelance/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var now = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work against a
// real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest truncates every table so tests do not see each other's rows.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, replies, chats, messages, customers, performers, " +
		"notifications, work_experiences RESTART IDENTITY").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	details, err := order.NewDetails("Сделать сайт", "landing", "small", "Go", 5000)
	suite.Require().NoError(err)
	o, err := order.NewOrder(1, details, now)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.ReplyRepository())
	suite.NotNil(uow2.ChatRepository())
	suite.NotNil(uow2.NotificationRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction, "Rollback after finish is a no-op")
	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsAndCollectsEvents() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	r, err := reply.NewReply(o, 7, now)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.ReplyRepository().Add(ctx, r))
	suite.Require().NoError(uow.OrderRepository().AdjustReplyBind(ctx, o.ID(), 1))

	suite.Require().NoError(o.AssignPerformer(7, now))
	r.ApproveByCustomer()
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.ReplyRepository().Update(ctx, r))
	suite.Require().NoError(uow.Commit(ctx))
	_ = uow.Rollback(ctx)

	events := uow.CollectEvents()
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.Name())
	}
	suite.ElementsMatch([]string{order.EventPerformerAssigned, reply.EventReplyCreated}, names)
	suite.Empty(uow.CollectEvents(), "Events are drained once")

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InProcess, stored.Status())
	suite.Equal(1, stored.ReplyBind())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChangesAndEvents() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Empty(uow.CollectEvents())
	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentUpdateLosesVersionRace() {
	ctx := context.Background()
	setup := suite.factory.Create()
	o := suite.newOrder()
	suite.Require().NoError(setup.OrderRepository().Add(ctx, o))

	first := suite.factory.Create()
	second := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(second.Begin(ctx))
	defer func() { _ = second.Rollback(ctx) }()

	a, err := first.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	b, err := second.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(a.Deactivate())
	suite.Require().NoError(first.OrderRepository().Update(ctx, a))
	suite.Require().NoError(first.Commit(ctx))

	suite.Require().NoError(b.AssignPerformer(7, now))
	err = second.OrderRepository().Update(ctx, b)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DuplicateReplyIsTranslated() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	r1, err := reply.NewReply(o, 7, now)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.ReplyRepository().Add(ctx, r1))
	r2, err := reply.NewReply(o, 7, now)
	suite.Require().NoError(err)

	err = uow.ReplyRepository().Add(ctx, r2)
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_BulkDeleteVisibleInTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	o := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	for _, performerID := range []kernel.ID{7, 8} {
		r, err := reply.NewReply(o, performerID, now)
		suite.Require().NoError(err)
		suite.Require().NoError(uow.ReplyRepository().Add(ctx, r))
	}

	removed, err := uow.ReplyRepository().DeleteByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(2, removed)

	exists, err := uow.ReplyRepository().Exists(ctx, o.ID(), 7)
	suite.Require().NoError(err)
	suite.False(exists)
}
