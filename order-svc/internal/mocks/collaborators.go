package mocks

import (
	"context"

	"cafeteria-orders/order-svc/internal/mailer"
	"cafeteria-orders/order-svc/internal/pricing"
	"cafeteria-orders/order-svc/internal/report"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

// Quoter is a mock type for the Quoter type
type Quoter struct {
	mock.Mock
}

func (_m *Quoter) Quote(ctx context.Context, cart pricing.Cart) (*pricing.Quote, error) {
	ret := _m.Called(ctx, cart)

	var r0 *pricing.Quote
	if v := ret.Get(0); v != nil {
		r0 = v.(*pricing.Quote)
	}
	return r0, ret.Error(1)
}

func NewQuoter(t testingT) *Quoter {
	m := &Quoter{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Mailer is a mock type for the Mailer type
type Mailer struct {
	mock.Mock
}

func (_m *Mailer) Send(ctx context.Context, msg mailer.Message) error {
	ret := _m.Called(ctx, msg)
	return ret.Error(0)
}

func NewMailer(t testingT) *Mailer {
	m := &Mailer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ReportRenderer is a mock type for the ReportRenderer type
type ReportRenderer struct {
	mock.Mock
}

func (_m *ReportRenderer) Render(t report.Table, f report.Format) ([]byte, error) {
	ret := _m.Called(t, f)

	var r0 []byte
	if v := ret.Get(0); v != nil {
		r0 = v.([]byte)
	}
	return r0, ret.Error(1)
}

func NewReportRenderer(t testingT) *ReportRenderer {
	m := &ReportRenderer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// QRGenerator is a mock type for the QRGenerator type
type QRGenerator struct {
	mock.Mock
}

func (_m *QRGenerator) Generate(orderID string) ([]byte, error) {
	ret := _m.Called(orderID)

	var r0 []byte
	if v := ret.Get(0); v != nil {
		r0 = v.([]byte)
	}
	return r0, ret.Error(1)
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MessageReader is a mock type for the MessageReader type
type MessageReader struct {
	mock.Mock
}

func (_m *MessageReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(kafka.Message), ret.Error(1)
}

func NewMessageReader(t testingT) *MessageReader {
	m := &MessageReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Confirmer is a mock type for the Confirmer type
type Confirmer struct {
	mock.Mock
}

func (_m *Confirmer) SendConfirmation(ctx context.Context, orderID string) (bool, error) {
	ret := _m.Called(ctx, orderID)
	return ret.Bool(0), ret.Error(1)
}

func NewConfirmer(t testingT) *Confirmer {
	m := &Confirmer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
