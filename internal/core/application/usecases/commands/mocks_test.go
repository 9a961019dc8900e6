package commands_test

import (
	"context"
	"testing"
	"time"

	"freelance/internal/core/application/usecases/commands"
	"freelance/internal/core/domain/model/chat"
	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/notification"
	"freelance/internal/core/domain/model/order"
	"freelance/internal/core/domain/model/party"
	"freelance/internal/core/domain/model/reply"
	"freelance/internal/core/domain/model/review"
	"freelance/internal/core/domain/model/verification"
	"freelance/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	now   = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	clock = kernel.ClockFunc(func() time.Time { return now })
)

const (
	customerID       kernel.ID = 1
	customerAccount  kernel.ID = 100
	performerID      kernel.ID = 2
	performerAccount kernel.ID = 200
	orderID          kernel.ID = 10
	replyID          kernel.ID = 20
	chatID           kernel.ID = 30
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AdjustReplyBind(ctx context.Context, id kernel.ID, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

type MockReplyRepository struct{ mock.Mock }

func (m *MockReplyRepository) Add(ctx context.Context, r *reply.Reply) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReplyRepository) Update(ctx context.Context, r *reply.Reply) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReplyRepository) Get(ctx context.Context, id kernel.ID) (*reply.Reply, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reply.Reply), args.Error(1)
}

func (m *MockReplyRepository) FindByOrderAndPerformer(ctx context.Context, orderID, performerID kernel.ID) (*reply.Reply, error) {
	args := m.Called(ctx, orderID, performerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reply.Reply), args.Error(1)
}

func (m *MockReplyRepository) Exists(ctx context.Context, orderID, performerID kernel.ID) (bool, error) {
	args := m.Called(ctx, orderID, performerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReplyRepository) Delete(ctx context.Context, r *reply.Reply) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReplyRepository) DeleteByOrder(ctx context.Context, orderID kernel.ID) (int, error) {
	args := m.Called(ctx, orderID)
	return args.Int(0), args.Error(1)
}

func (m *MockReplyRepository) DeleteByOrderAndPerformer(ctx context.Context, orderID, performerID kernel.ID) (int, error) {
	args := m.Called(ctx, orderID, performerID)
	return args.Int(0), args.Error(1)
}

type MockChatRepository struct{ mock.Mock }

func (m *MockChatRepository) Add(ctx context.Context, c *chat.Chat) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChatRepository) Update(ctx context.Context, c *chat.Chat) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChatRepository) Get(ctx context.Context, id kernel.ID) (*chat.Chat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chat.Chat), args.Error(1)
}

func (m *MockChatRepository) FindByRoom(
	ctx context.Context, roomName chat.RoomName, customerID, performerID kernel.ID,
) (*chat.Chat, error) {
	args := m.Called(ctx, roomName, customerID, performerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chat.Chat), args.Error(1)
}

func (m *MockChatRepository) AddMessage(ctx context.Context, message *chat.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockChatRepository) Messages(ctx context.Context, chatID kernel.ID) ([]*chat.Message, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*chat.Message), args.Error(1)
}

type MockPartyRepository struct{ mock.Mock }

func (m *MockPartyRepository) AddCustomer(ctx context.Context, c *party.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockPartyRepository) AddPerformer(ctx context.Context, p *party.Performer) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartyRepository) GetCustomer(ctx context.Context, id kernel.ID) (*party.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.Customer), args.Error(1)
}

func (m *MockPartyRepository) GetPerformer(ctx context.Context, id kernel.ID) (*party.Performer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.Performer), args.Error(1)
}

func (m *MockPartyRepository) CustomerByAccount(ctx context.Context, accountID kernel.ID) (*party.Customer, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.Customer), args.Error(1)
}

func (m *MockPartyRepository) PerformerByAccount(ctx context.Context, accountID kernel.ID) (*party.Performer, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.Performer), args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.ID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ExistsAbout(
	ctx context.Context, accountID kernel.ID, kind notification.Type, orderID kernel.ID,
) (bool, error) {
	args := m.Called(ctx, accountID, kind, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) DeleteReadBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) Add(ctx context.Context, w *review.WorkExperience) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

// MockUoW satisfies every unit of work shape the handlers depend on. Like
// the real one it drains the events of the aggregates it was told to track.
type MockUoW struct {
	mock.Mock

	tracked []kernel.EventSource
}

func (m *MockUoW) track(sources ...kernel.EventSource) {
	m.tracked = append(m.tracked, sources...)
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) CollectEvents() []kernel.Event {
	m.Called()
	var events []kernel.Event
	for _, s := range m.tracked {
		events = append(events, s.PullEvents()...)
	}
	return events
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ReplyRepository() ports.ReplyRepository {
	args := m.Called()
	return args.Get(0).(ports.ReplyRepository)
}

func (m *MockUoW) ChatRepository() ports.ChatRepository {
	args := m.Called()
	return args.Get(0).(ports.ChatRepository)
}

func (m *MockUoW) PartyRepository() ports.PartyRepository {
	args := m.Called()
	return args.Get(0).(ports.PartyRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

func (m *MockUoW) ReviewRepository() ports.ReviewRepository {
	args := m.Called()
	return args.Get(0).(ports.ReviewRepository)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, events ...kernel.Event) {
	m.Called(ctx, events)
}

type MockCodeStore struct{ mock.Mock }

func (m *MockCodeStore) Put(ctx context.Context, key string, code verification.Code, ttl time.Duration) error {
	args := m.Called(ctx, key, code, ttl)
	return args.Error(0)
}

func (m *MockCodeStore) GetIfNotExpired(ctx context.Context, key string) (verification.Code, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(verification.Code), args.Bool(1), args.Error(2)
}

func (m *MockCodeStore) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCodeStore) SweepExpired(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockEmailSender struct{ mock.Mock }

func (m *MockEmailSender) SendPlain(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func (m *MockEmailSender) SendWithAttachment(ctx context.Context, to, subject, body, filePath string) error {
	args := m.Called(ctx, to, subject, body, filePath)
	return args.Error(0)
}

// fixture wires a MockUoW to one mock per repository. Repository getters may
// be called any number of times; the tests order the repository calls.
type fixture struct {
	uow           *MockUoW
	orders        *MockOrderRepository
	replies       *MockReplyRepository
	chats         *MockChatRepository
	parties       *MockPartyRepository
	notifications *MockNotificationRepository
	reviews       *MockReviewRepository
	publisher     *MockPublisher
}

func newFixture() *fixture {
	f := &fixture{
		uow:           new(MockUoW),
		orders:        new(MockOrderRepository),
		replies:       new(MockReplyRepository),
		chats:         new(MockChatRepository),
		parties:       new(MockPartyRepository),
		notifications: new(MockNotificationRepository),
		reviews:       new(MockReviewRepository),
		publisher:     new(MockPublisher),
	}
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("ReplyRepository").Return(f.replies).Maybe()
	f.uow.On("ChatRepository").Return(f.chats).Maybe()
	f.uow.On("PartyRepository").Return(f.parties).Maybe()
	f.uow.On("NotificationRepository").Return(f.notifications).Maybe()
	f.uow.On("ReviewRepository").Return(f.reviews).Maybe()
	return f
}

func (f *fixture) uowFactory() commands.UoWFactory {
	return commands.UoWFactoryFunc(func() commands.UoW { return f.uow })
}

func (f *fixture) orderUoWFactory() commands.OrderUoWFactory {
	return commands.OrderUoWFactoryFunc(func() commands.OrderUoW { return f.uow })
}

func (f *fixture) notificationUoWFactory() commands.NotificationUoWFactory {
	return commands.NotificationUoWFactoryFunc(func() commands.NotificationUoW { return f.uow })
}

func (f *fixture) reviewUoWFactory() commands.ReviewUoWFactory {
	return commands.ReviewUoWFactoryFunc(func() commands.ReviewUoW { return f.uow })
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.uow.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.replies.AssertExpectations(t)
	f.chats.AssertExpectations(t)
	f.parties.AssertExpectations(t)
	f.notifications.AssertExpectations(t)
	f.reviews.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func customerCaller(t *testing.T) kernel.Caller {
	t.Helper()
	c, err := kernel.NewCaller(customerAccount, kernel.Customer)
	require.NoError(t, err)
	return c
}

func performerCaller(t *testing.T) kernel.Caller {
	t.Helper()
	c, err := kernel.NewCaller(performerAccount, kernel.Performer)
	require.NoError(t, err)
	return c
}

func strangerCaller(t *testing.T) kernel.Caller {
	t.Helper()
	c, err := kernel.NewCaller(999, kernel.Customer)
	require.NoError(t, err)
	return c
}

func adminCaller(t *testing.T) kernel.Caller {
	t.Helper()
	c, err := kernel.NewCaller(1, kernel.Administrator)
	require.NoError(t, err)
	return c
}

func testCustomer(t *testing.T) *party.Customer {
	t.Helper()
	c, err := party.RestoreCustomer(customerID, customerAccount, "Анна", "anna@example.com")
	require.NoError(t, err)
	return c
}

func testPerformer(t *testing.T) *party.Performer {
	t.Helper()
	p, err := party.RestorePerformer(performerID, performerAccount, "Павел", "pavel@example.com")
	require.NoError(t, err)
	return p
}

func testOrder(t *testing.T, status order.Status, performer *kernel.ID) *order.Order {
	t.Helper()
	d, err := order.NewDetails("Telegram bot", "reminders", "2 weeks", "Go", 50000)
	require.NoError(t, err)
	o, err := order.RestoreOrder(orderID, customerID, d, performer, status, false, order.Timeline{PublishedAt: now}, 1, 1)
	require.NoError(t, err)
	return o
}

func testReply(t *testing.T, flags reply.Flags) *reply.Reply {
	t.Helper()
	r, err := reply.RestoreReply(replyID, orderID, performerID, flags, now, 1)
	require.NoError(t, err)
	return r
}

func testChat(t *testing.T, o *order.Order) *chat.Chat {
	t.Helper()
	c, err := chat.RestoreChat(chatID, customerID, performerID, chat.NewRoomName(o.ID(), o.Title()), chat.State{})
	require.NoError(t, err)
	return c
}

// eventNames lets a test match the batch handed to the publisher.
func eventNames(names ...string) any {
	return mock.MatchedBy(func(events []kernel.Event) bool {
		if len(events) != len(names) {
			return false
		}
		for i, e := range events {
			if e.Name() != names[i] {
				return false
			}
		}
		return true
	})
}
