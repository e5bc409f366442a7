package mocks

import (
	"context"

	"cafeteria-orders/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MenuRepository is a mock type for the MenuRepository type
type MenuRepository struct {
	mock.Mock
}

func (_m *MenuRepository) ListAvailableMenu(ctx context.Context) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx)

	var r0 []domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func NewMenuRepository(t testingT) *MenuRepository {
	m := &MenuRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// OrderRepository is a mock type for the OrderRepository type
type OrderRepository struct {
	mock.Mock
}

func (_m *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	ret := _m.Called(ctx, order)
	return ret.Error(0)
}

func (_m *OrderRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) ListOrders(ctx context.Context, date string) ([]domain.Order, error) {
	ret := _m.Called(ctx, date)

	var r0 []domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) UpdateStatusIf(ctx context.Context, id string, from domain.OrderStatus, to domain.OrderStatus) (bool, error) {
	ret := _m.Called(ctx, id, from, to)
	return ret.Bool(0), ret.Error(1)
}

func (_m *OrderRepository) DeleteOrder(ctx context.Context, id string) (int64, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *OrderRepository) SaveQRCode(ctx context.Context, id string, qr []byte) error {
	ret := _m.Called(ctx, id, qr)
	return ret.Error(0)
}

func (_m *OrderRepository) GetQRCode(ctx context.Context, id string) ([]byte, error) {
	ret := _m.Called(ctx, id)

	var r0 []byte
	if v := ret.Get(0); v != nil {
		r0 = v.([]byte)
	}
	return r0, ret.Error(1)
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// OrderPublisher is a mock type for the OrderPublisher type
type OrderPublisher struct {
	mock.Mock
}

func (_m *OrderPublisher) PublishOrderPlaced(ctx context.Context, event domain.OrderEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

func NewOrderPublisher(t testingT) *OrderPublisher {
	m := &OrderPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// PopularityStore is a mock type for the PopularityStore type
type PopularityStore struct {
	mock.Mock
}

func (_m *PopularityStore) IncrementItems(ctx context.Context, date string, items []domain.EventItem) error {
	ret := _m.Called(ctx, date, items)
	return ret.Error(0)
}

func (_m *PopularityStore) TopItems(ctx context.Context, date string, limit int) ([]domain.PopularItem, error) {
	ret := _m.Called(ctx, date, limit)

	var r0 []domain.PopularItem
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.PopularItem)
	}
	return r0, ret.Error(1)
}

func (_m *PopularityStore) MarkNotified(ctx context.Context, kind string, orderID string) (bool, error) {
	ret := _m.Called(ctx, kind, orderID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *PopularityStore) ClearNotified(ctx context.Context, kind string, orderID string) error {
	ret := _m.Called(ctx, kind, orderID)
	return ret.Error(0)
}

func NewPopularityStore(t testingT) *PopularityStore {
	m := &PopularityStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
