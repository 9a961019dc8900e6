package replyrepo_test

import (
	"context"
	"testing"
	"time"

	"freelance/internal/adapters/out/postgres/orderrepo"
	"freelance/internal/adapters/out/postgres/replyrepo"
	"freelance/internal/adapters/out/postgres/sqlitetest"
	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"
	"freelance/internal/core/domain/model/reply"
	"freelance/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var now = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(aggregate any) {
	m.Called(aggregate)
}

type ReplyRepositoryTestSuite struct {
	suite.Suite
	db         *gorm.DB
	orders     *orderrepo.GormOrderRepository
	repository *replyrepo.GormReplyRepository
	order      *order.Order
}

func TestReplyRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ReplyRepositoryTestSuite))
}

func (suite *ReplyRepositoryTestSuite) SetupTest() {
	suite.db = sqlitetest.Open(suite.T())
	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything).Maybe()
	suite.orders = orderrepo.NewGormOrderRepository(suite.db, tracker)
	suite.repository = replyrepo.NewGormReplyRepository(suite.db, tracker)

	details, err := order.NewDetails("Logo", "", "", "", 100)
	suite.Require().NoError(err)
	suite.order, err = order.NewOrder(1, details, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(context.Background(), suite.order))
}

func (suite *ReplyRepositoryTestSuite) addReply(performerID int64) *reply.Reply {
	r, err := reply.NewReply(suite.order, kernel.ID(performerID), now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), r))
	return r
}

func (suite *ReplyRepositoryTestSuite) TestAdd_DuplicatePairIsRejected() {
	ctx := context.Background()
	suite.addReply(7)

	again, err := reply.NewReply(suite.order, 7, now)
	suite.Require().NoError(err)
	err = suite.repository.Add(ctx, again)

	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
	exists, err := suite.repository.Exists(ctx, suite.order.ID(), 7)
	suite.Require().NoError(err)
	suite.True(exists)
}

func (suite *ReplyRepositoryTestSuite) TestUpdate_PersistsFlagsAndVersion() {
	ctx := context.Background()
	r := suite.addReply(7)

	r.ApproveByCustomer()
	suite.Require().NoError(suite.repository.Update(ctx, r))

	stored, err := suite.repository.FindByOrderAndPerformer(ctx, suite.order.ID(), 7)
	suite.Require().NoError(err)
	suite.True(stored.Flags().ApprovedByCustomer)
	suite.True(stored.IsOnCustomer())
	suite.Equal(1, stored.Version())
}

func (suite *ReplyRepositoryTestSuite) TestUpdate_StaleVersionConflicts() {
	ctx := context.Background()
	r := suite.addReply(7)
	stale, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)

	r.ApproveByCustomer()
	suite.Require().NoError(suite.repository.Update(ctx, r))

	stale.ApproveByCustomer()
	suite.Require().ErrorIs(suite.repository.Update(ctx, stale), errs.ErrVersionIsInvalid)
}

func (suite *ReplyRepositoryTestSuite) TestFindByOrderAndPerformer_Missing() {
	_, err := suite.repository.FindByOrderAndPerformer(context.Background(), suite.order.ID(), 99)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ReplyRepositoryTestSuite) TestBulkDeletes() {
	ctx := context.Background()
	suite.addReply(7)
	suite.addReply(8)
	suite.addReply(9)

	removed, err := suite.repository.DeleteByOrderAndPerformer(ctx, suite.order.ID(), 8)
	suite.Require().NoError(err)
	suite.Equal(1, removed)

	exists, err := suite.repository.Exists(ctx, suite.order.ID(), 8)
	suite.Require().NoError(err)
	suite.False(exists)

	removed, err = suite.repository.DeleteByOrder(ctx, suite.order.ID())
	suite.Require().NoError(err)
	suite.Equal(2, removed)
}

func (suite *ReplyRepositoryTestSuite) TestBulkDeleteIsVisibleInsideTransaction() {
	ctx := context.Background()
	suite.addReply(7)

	tx := suite.db.Begin()
	defer tx.Rollback()
	inTx := replyrepo.NewGormReplyRepository(tx, new(MockAggregateTracker))

	removed, err := inTx.DeleteByOrder(ctx, suite.order.ID())
	suite.Require().NoError(err)
	suite.Equal(1, removed)

	exists, err := inTx.Exists(ctx, suite.order.ID(), 7)
	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *ReplyRepositoryTestSuite) TestDelete() {
	ctx := context.Background()
	r := suite.addReply(7)

	suite.Require().NoError(suite.repository.Delete(ctx, r))
	suite.Require().ErrorIs(suite.repository.Delete(ctx, r), errs.ErrObjectNotFound)
}
