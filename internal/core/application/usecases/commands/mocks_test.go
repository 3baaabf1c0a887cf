package commands_test

import (
	"context"
	"time"

	"ordertracking/internal/core/application/usecases/commands"
	"ordertracking/internal/core/domain/model/order"
	"ordertracking/internal/core/domain/services"
	"ordertracking/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) NextID(ctx context.Context) (order.ID, error) {
	args := m.Called(ctx)
	return args.Get(0).(order.ID), args.Error(1)
}

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockBroadcaster struct{ mock.Mock }

func (m *MockBroadcaster) Broadcast(ctx context.Context, orderID order.ID, payload []byte) int {
	args := m.Called(ctx, orderID, payload)
	return args.Int(0)
}

type MockCustomerNotifier struct{ mock.Mock }

func (m *MockCustomerNotifier) Notify(ctx context.Context, recipient string, orderID order.ID, event services.Event) {
	m.Called(ctx, recipient, orderID, event)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishStatusChanged(ctx context.Context, event order.StatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// restoreOrder builds a stored order in the given status.
func restoreOrder(id order.ID, status order.Status, code order.DeliveryCode) *order.Order {
	item, err := order.NewItem(7, 2, 3990)
	if err != nil {
		panic(err)
	}
	delivery, err := order.NewDelivery(order.Express, "")
	if err != nil {
		panic(err)
	}

	o, err := order.RestoreOrder(order.State{
		ID:              id,
		RestaurantID:    "place-123",
		Recipient:       "ana@example.com",
		Status:          status,
		DeliveryCode:    code,
		Delivery:        delivery,
		Items:           []order.Item{item},
		TotalPriceCents: 8480,
		CreatedAt:       time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		panic(err)
	}
	return o
}

type engineMocks struct {
	repo        *MockOrderRepository
	uow         *MockOrderUoW
	factory     *MockOrderUoWFactory
	broadcaster *MockBroadcaster
	notifier    *MockCustomerNotifier
	publisher   *MockEventPublisher
}

func newEngineMocks() *engineMocks {
	m := &engineMocks{
		repo:        new(MockOrderRepository),
		uow:         new(MockOrderUoW),
		factory:     new(MockOrderUoWFactory),
		broadcaster: new(MockBroadcaster),
		notifier:    new(MockCustomerNotifier),
		publisher:   new(MockEventPublisher),
	}
	m.factory.On("Create").Return(m.uow).Maybe()
	m.uow.On("OrderRepository").Return(m.repo).Maybe()
	m.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return m
}

func (m *engineMocks) assertExpectations(t mock.TestingT) {
	m.repo.AssertExpectations(t)
	m.uow.AssertExpectations(t)
	m.broadcaster.AssertExpectations(t)
	m.notifier.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}

func (m *engineMocks) assertNoSideEffects(t mock.TestingT) {
	m.broadcaster.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything, mock.Anything)
	m.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
}
