package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "freelance/internal/adapters/out/postgres"
	"freelance/internal/adapters/out/postgres/sqlitetest"
	"freelance/internal/core/application/usecases/queries"
	"freelance/internal/core/domain/model/chat"
	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/notification"
	"freelance/internal/core/domain/model/order"
	"freelance/internal/core/domain/model/party"
	"freelance/internal/core/domain/model/review"
	"freelance/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var now = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

const (
	customerAccount   kernel.ID = 100
	performerAccount  kernel.ID = 200
	bystanderAccount  kernel.ID = 300
	administratorAcct kernel.ID = 1
)

func caller(t *testing.T, account kernel.ID, role kernel.Role) kernel.Caller {
	t.Helper()
	c, err := kernel.NewCaller(account, role)
	require.NoError(t, err)
	return c
}

type QueryHandlersTestSuite struct {
	suite.Suite
	db        *gorm.DB
	uow       *postgres_adapter.GormUnitOfWork
	customer  *party.Customer
	performer *party.Performer
	bystander *party.Performer
}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	ctx := context.Background()
	suite.db = sqlitetest.Open(suite.T())
	suite.uow = postgres_adapter.NewGormUnitOfWorkFactory(suite.db).New()

	var err error
	suite.customer, err = party.NewCustomer(customerAccount, "Анна", "anna@example.com")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.uow.PartyRepository().AddCustomer(ctx, suite.customer))
	suite.performer, err = party.NewPerformer(performerAccount, "Boris", "boris@example.com")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.uow.PartyRepository().AddPerformer(ctx, suite.performer))
	suite.bystander, err = party.NewPerformer(bystanderAccount, "Vera", "vera@example.com")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.uow.PartyRepository().AddPerformer(ctx, suite.bystander))
}

func (suite *QueryHandlersTestSuite) addOrder(title string, publishedAt time.Time, mutate func(o *order.Order)) *order.Order {
	ctx := context.Background()
	details, err := order.NewDetails(title, "", "", "", 1000)
	suite.Require().NoError(err)
	o, err := order.NewOrder(suite.customer.ID(), details, publishedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.uow.OrderRepository().Add(ctx, o))
	if mutate != nil {
		mutate(o)
		suite.Require().NoError(suite.uow.OrderRepository().Update(ctx, o))
	}
	return o
}

func (suite *QueryHandlersTestSuite) TestListCustomerOrders_HidesSoftDeleted() {
	first := suite.addOrder("First", now, nil)
	second := suite.addOrder("Second", now.Add(time.Hour), func(o *order.Order) {
		suite.Require().NoError(o.Deactivate())
	})
	suite.addOrder("Hidden", now.Add(2*time.Hour), func(o *order.Order) {
		o.SoftDeleteByCustomer()
	})

	query, err := queries.NewListCustomerOrdersQuery(caller(suite.T(), customerAccount, kernel.Customer))
	suite.Require().NoError(err)
	views, err := queries.NewListCustomerOrdersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.Equal(second.ID(), views[0].ID)
	suite.Equal(order.Inactive, views[0].Status)
	suite.Equal(first.ID(), views[1].ID)
	suite.Nil(views[1].PerformerID)
	suite.Equal(int64(1000), views[1].Budget)
}

func (suite *QueryHandlersTestSuite) TestListCustomerOrders_UnknownAccountIsEmpty() {
	suite.addOrder("First", now, nil)

	query, err := queries.NewListCustomerOrdersQuery(caller(suite.T(), 999, kernel.Customer))
	suite.Require().NoError(err)
	views, err := queries.NewListCustomerOrdersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(views)
	suite.NotNil(views)
}

func (suite *QueryHandlersTestSuite) TestListPerformerOrders_KeepsCompletedHiddenOrders() {
	performerID := suite.performer.ID()
	suite.addOrder("Open", now, nil)
	done := suite.addOrder("Done and hidden", now, func(o *order.Order) {
		suite.Require().NoError(o.AssignPerformer(performerID, now))
		suite.Require().NoError(o.Complete(now.Add(time.Hour)))
		o.SoftDeleteByCustomer()
	})
	other := suite.addOrder("Other performer", now, func(o *order.Order) {
		suite.Require().NoError(o.AssignPerformer(suite.bystander.ID(), now))
	})

	query, err := queries.NewListPerformerOrdersQuery(caller(suite.T(), performerAccount, kernel.Performer))
	suite.Require().NoError(err)
	views, err := queries.NewListPerformerOrdersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(views, 1)
	suite.Equal(done.ID(), views[0].ID)
	suite.Equal(order.Done, views[0].Status)
	suite.Require().NotNil(views[0].PerformerID)
	suite.Equal(performerID, *views[0].PerformerID)
	suite.NotEqual(other.ID(), views[0].ID)
}

func (suite *QueryHandlersTestSuite) openChat(o *order.Order) *chat.Chat {
	c, err := chat.NewChat(o, suite.performer.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.uow.ChatRepository().Add(context.Background(), c))
	return c
}

func (suite *QueryHandlersTestSuite) post(c *chat.Chat, side kernel.Role, at time.Time) {
	ctx := context.Background()
	account := customerAccount
	if side == kernel.Performer {
		account = performerAccount
	}
	m, err := c.PostMessage(side, account, "message", at)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.uow.ChatRepository().AddMessage(ctx, m))
	suite.Require().NoError(suite.uow.ChatRepository().Update(ctx, c))
}

func (suite *QueryHandlersTestSuite) countUnread(account kernel.ID, role kernel.Role, chatID kernel.ID) (int64, error) {
	query, err := queries.NewCountUnreadQuery(caller(suite.T(), account, role), chatID)
	suite.Require().NoError(err)
	return queries.NewCountUnreadQueryHandler(suite.db).Handle(context.Background(), query)
}

func (suite *QueryHandlersTestSuite) TestCountUnread_ReadMarksAndOwnMessages() {
	c := suite.openChat(suite.addOrder("Chat", now, nil))
	suite.post(c, kernel.Customer, now.Add(1*time.Minute))
	suite.post(c, kernel.Customer, now.Add(2*time.Minute))
	suite.post(c, kernel.Performer, now.Add(3*time.Minute))

	unread, err := suite.countUnread(performerAccount, kernel.Performer, c.ID())
	suite.Require().NoError(err)
	suite.EqualValues(2, unread, "never checked: all of the other party's messages")

	unread, err = suite.countUnread(customerAccount, kernel.Customer, c.ID())
	suite.Require().NoError(err)
	suite.EqualValues(1, unread)

	suite.Require().NoError(c.MarkChecked(kernel.Performer, now.Add(90*time.Second)))
	suite.Require().NoError(suite.uow.ChatRepository().Update(context.Background(), c))

	unread, err = suite.countUnread(performerAccount, kernel.Performer, c.ID())
	suite.Require().NoError(err)
	suite.EqualValues(1, unread, "only messages after the last check")
}

func (suite *QueryHandlersTestSuite) TestCountUnread_OnlyParticipants() {
	c := suite.openChat(suite.addOrder("Chat", now, nil))

	_, err := suite.countUnread(bystanderAccount, kernel.Performer, c.ID())
	suite.Require().ErrorIs(err, errs.ErrAccessDenied)

	_, err = suite.countUnread(administratorAcct, kernel.Administrator, c.ID())
	suite.Require().ErrorIs(err, errs.ErrAccessDenied)

	_, err = suite.countUnread(customerAccount, kernel.Customer, 404)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestListChats_HidesChatsDeletedByCaller() {
	open := suite.openChat(suite.addOrder("Open", now, nil))
	suite.post(open, kernel.Customer, now.Add(time.Minute))
	hidden := suite.openChat(suite.addOrder("Hidden", now, nil))
	suite.Require().NoError(hidden.SoftDelete(kernel.Performer, mustOrder(suite, hidden)))
	suite.Require().NoError(suite.uow.ChatRepository().Update(context.Background(), hidden))

	list := func(account kernel.ID, role kernel.Role) []queries.ChatView {
		query, err := queries.NewListChatsQuery(caller(suite.T(), account, role))
		suite.Require().NoError(err)
		views, err := queries.NewListChatsQueryHandler(suite.db).Handle(context.Background(), query)
		suite.Require().NoError(err)
		return views
	}

	performerViews := list(performerAccount, kernel.Performer)
	suite.Require().Len(performerViews, 1)
	suite.Equal(open.ID(), performerViews[0].ID)
	suite.Equal(kernel.Performer, performerViews[0].Side)
	suite.EqualValues(1, performerViews[0].Unread)

	customerViews := list(customerAccount, kernel.Customer)
	suite.Len(customerViews, 2)
	for _, v := range customerViews {
		suite.Equal(kernel.Customer, v.Side)
		suite.Zero(v.Unread)
	}

	suite.Empty(list(bystanderAccount, kernel.Performer))
}

func mustOrder(suite *QueryHandlersTestSuite, c *chat.Chat) *order.Order {
	orderID, err := c.RoomName().OrderID()
	suite.Require().NoError(err)
	o, err := suite.uow.OrderRepository().Get(context.Background(), orderID)
	suite.Require().NoError(err)
	return o
}

func (suite *QueryHandlersTestSuite) TestListNotifications_UnreadOnly() {
	ctx := context.Background()
	repo := suite.uow.NotificationRepository()
	add := func(kind notification.Type, at time.Time, read bool) {
		n, err := notification.NewNotification(customerAccount, kernel.Customer, kind,
			notification.Content{Title: kind.String()}, notification.Related{OrderID: kernel.IDPtr(10)}, at)
		suite.Require().NoError(err)
		suite.Require().NoError(repo.Add(ctx, n))
		if read {
			n.MarkRead()
			suite.Require().NoError(repo.Update(ctx, n))
		}
	}
	add(notification.Reply, now, true)
	add(notification.Completed, now.Add(time.Hour), false)

	list := func(unreadOnly bool) []queries.NotificationView {
		query, err := queries.NewListNotificationsQuery(caller(suite.T(), customerAccount, kernel.Customer), unreadOnly)
		suite.Require().NoError(err)
		views, err := queries.NewListNotificationsQueryHandler(suite.db).Handle(ctx, query)
		suite.Require().NoError(err)
		return views
	}

	all := list(false)
	suite.Require().Len(all, 2)
	suite.Equal(notification.Completed, all[0].Type)
	suite.Equal(notification.Reply, all[1].Type)
	suite.True(all[1].IsRead)
	suite.Require().NotNil(all[0].OrderID)
	suite.EqualValues(10, *all[0].OrderID)

	unread := list(true)
	suite.Require().Len(unread, 1)
	suite.Equal(notification.Completed, unread[0].Type)
}

func (suite *QueryHandlersTestSuite) TestListPerformerReviews() {
	performerID := suite.performer.ID()
	done := suite.addOrder("Done", now, func(o *order.Order) {
		suite.Require().NoError(o.AssignPerformer(performerID, now))
		suite.Require().NoError(o.Complete(now))
	})
	w, err := review.NewWorkExperience(done, performerID, review.Body{Name: "Landing", Rate: 5, Text: "ok"}, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.uow.ReviewRepository().Add(context.Background(), w))

	query, err := queries.NewListPerformerReviewsQuery(performerID)
	suite.Require().NoError(err)
	views, err := queries.NewListPerformerReviewsQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(views, 1)
	suite.Equal("Landing", views[0].Name)
	suite.Equal(5, views[0].Rate)
	suite.Equal(kernel.Performer, views[0].ReviewerType)
	suite.Equal(suite.customer.ID(), views[0].CustomerID)

	query, err = queries.NewListPerformerReviewsQuery(suite.bystander.ID())
	suite.Require().NoError(err)
	views, err = queries.NewListPerformerReviewsQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(views)
}

func TestQueries_RequireConstructor(t *testing.T) {
	ctx := context.Background()

	_, err := queries.ListCustomerOrdersQueryHandler{}.Handle(ctx, queries.ListCustomerOrdersQuery{})
	require.ErrorIs(t, err, queries.ErrListCustomerOrdersQueryIsNotConstructed)
	_, err = queries.ListPerformerOrdersQueryHandler{}.Handle(ctx, queries.ListPerformerOrdersQuery{})
	require.ErrorIs(t, err, queries.ErrListPerformerOrdersQueryIsNotConstructed)
	_, err = queries.CountUnreadQueryHandler{}.Handle(ctx, queries.CountUnreadQuery{})
	require.ErrorIs(t, err, queries.ErrCountUnreadQueryIsNotConstructed)
	_, err = queries.ListChatsQueryHandler{}.Handle(ctx, queries.ListChatsQuery{})
	require.ErrorIs(t, err, queries.ErrListChatsQueryIsNotConstructed)
	_, err = queries.ListNotificationsQueryHandler{}.Handle(ctx, queries.ListNotificationsQuery{})
	require.ErrorIs(t, err, queries.ErrListNotificationsQueryIsNotConstructed)
	_, err = queries.ListPerformerReviewsQueryHandler{}.Handle(ctx, queries.ListPerformerReviewsQuery{})
	require.ErrorIs(t, err, queries.ErrListPerformerReviewsQueryIsNotConstructed)
}

func TestQueries_ConstructorsValidateInput(t *testing.T) {
	_, err := queries.NewListChatsQuery(kernel.Caller{})
	assert.Error(t, err)
	_, err = queries.NewCountUnreadQuery(caller(t, customerAccount, kernel.Customer), 0)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	_, err = queries.NewListPerformerReviewsQuery(0)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
