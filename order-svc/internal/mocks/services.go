package mocks

import (
	"context"

	"cafeteria-orders/order-svc/internal/domain"
	"cafeteria-orders/order-svc/internal/pricing"
	"cafeteria-orders/order-svc/internal/report"
	"cafeteria-orders/order-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

// OrderService is a mock type for the OrderServiceInterface type
type OrderService struct {
	mock.Mock
}

func (_m *OrderService) Place(ctx context.Context, cart pricing.Cart) (*domain.Order, error) {
	ret := _m.Called(ctx, cart)

	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderService) List(ctx context.Context, date string) ([]domain.Order, error) {
	ret := _m.Called(ctx, date)

	var r0 []domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	ret := _m.Called(ctx, id, status)
	return ret.Error(0)
}

func (_m *OrderService) Delete(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *OrderService) QRCode(ctx context.Context, id string) ([]byte, error) {
	ret := _m.Called(ctx, id)

	var r0 []byte
	if v := ret.Get(0); v != nil {
		r0 = v.([]byte)
	}
	return r0, ret.Error(1)
}

func NewOrderService(t testingT) *OrderService {
	m := &OrderService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NotificationService is a mock type for the NotificationServiceInterface type
type NotificationService struct {
	mock.Mock
}

func (_m *NotificationService) SendConfirmation(ctx context.Context, orderID string) (bool, error) {
	ret := _m.Called(ctx, orderID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *NotificationService) SendArrival(ctx context.Context, date string) (*service.ArrivalResult, error) {
	ret := _m.Called(ctx, date)

	var r0 *service.ArrivalResult
	if v := ret.Get(0); v != nil {
		r0 = v.(*service.ArrivalResult)
	}
	return r0, ret.Error(1)
}

func NewNotificationService(t testingT) *NotificationService {
	m := &NotificationService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ReportService is a mock type for the ReportServiceInterface type
type ReportService struct {
	mock.Mock
}

func (_m *ReportService) Download(ctx context.Context, date string, format report.Format) (*report.File, error) {
	ret := _m.Called(ctx, date, format)

	var r0 *report.File
	if v := ret.Get(0); v != nil {
		r0 = v.(*report.File)
	}
	return r0, ret.Error(1)
}

func (_m *ReportService) SendDaily(ctx context.Context) (*service.DailyResult, error) {
	ret := _m.Called(ctx)

	var r0 *service.DailyResult
	if v := ret.Get(0); v != nil {
		r0 = v.(*service.DailyResult)
	}
	return r0, ret.Error(1)
}

func NewReportService(t testingT) *ReportService {
	m := &ReportService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// AnalyticsService is a mock type for the AnalyticsServiceInterface type
type AnalyticsService struct {
	mock.Mock
}

func (_m *AnalyticsService) Popular(ctx context.Context, date string, limit int) ([]domain.PopularItem, error) {
	ret := _m.Called(ctx, date, limit)

	var r0 []domain.PopularItem
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.PopularItem)
	}
	return r0, ret.Error(1)
}

func NewAnalyticsService(t testingT) *AnalyticsService {
	m := &AnalyticsService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
