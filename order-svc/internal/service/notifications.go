package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cafeteria-orders/order-svc/internal/domain"
	"cafeteria-orders/order-svc/internal/logging"
	"cafeteria-orders/order-svc/internal/mailer"
	"cafeteria-orders/order-svc/internal/metrics"
)

type ArrivalResult struct {
	Sent             int      `json:"sentCount"`
	Failed           int      `json:"failedCount"`
	Errors           []string `json:"errors,omitempty"`
	SupplierNotified bool     `json:"supplierNotified"`
}

type NotificationService struct {
	orders    OrderReader
	mail      Mailer
	qrEncoder QRGenerator
	suppliers []string
	logger    *slog.Logger
}

func NewNotificationService(orders OrderReader, mail Mailer, qr QRGenerator, suppliers []string) *NotificationService {
	return &NotificationService{
		orders:    orders,
		mail:      mail,
		qrEncoder: qr,
		suppliers: suppliers,
		logger:    logging.New("notifications"),
	}
}

// SendConfirmation emails the order summary with its pickup QR code. It
// reports false without error when the order has no email address.
func (s *NotificationService) SendConfirmation(ctx context.Context, orderID string) (bool, error) {
	if err := checkOrderID(orderID); err != nil {
		return false, err
	}
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return false, notFound(err)
	}
	if order.CustomerEmail == "" {
		s.logger.Info("no email on order, confirmation skipped", "order_id", orderID)
		return false, nil
	}

	var qr []byte
	if s.qrEncoder != nil {
		if qr, err = s.qrEncoder.Generate(order.ID); err != nil {
			s.logger.Warn("qr generation failed, sending without it", "order_id", orderID, "error", err)
		}
	}

	msg, err := mailer.Confirmation(order, qr)
	if err != nil {
		return false, err
	}
	if err := s.send(ctx, "confirmation", msg); err != nil {
		return false, err
	}
	s.logger.Info("confirmation sent", "order_id", orderID, "to", order.CustomerEmail)
	return true, nil
}

// SendArrival tells every customer of date that their order arrived. With
// no such customers the supplier list is told instead.
func (s *NotificationService) SendArrival(ctx context.Context, date string) (*ArrivalResult, error) {
	if date == "" {
		return nil, ErrInvalidDate
	}
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	if wd := day.Weekday(); wd == time.Friday || wd == time.Saturday {
		return nil, ErrWeekendDelivery
	}

	orders, err := s.orders.ListOrders(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	result := &ArrivalResult{}
	var recipients []domain.Order
	for _, o := range orders {
		if o.CustomerEmail != "" {
			recipients = append(recipients, o)
		}
	}

	if len(recipients) == 0 {
		if len(s.suppliers) == 0 {
			return result, nil
		}
		msg, err := mailer.SupplierNoOrders(s.suppliers, date)
		if err != nil {
			return nil, err
		}
		if err := s.send(ctx, "supplier_no_orders", msg); err != nil {
			if errors.Is(err, mailer.ErrDisabled) {
				return nil, err
			}
			s.logger.Error("supplier notice failed", "date", date, "error", err)
			return result, nil
		}
		result.SupplierNotified = true
		return result, nil
	}

	for i := range recipients {
		order := &recipients[i]
		msg, err := mailer.Arrival(order)
		if err == nil {
			err = s.send(ctx, "arrival", msg)
		}
		if errors.Is(err, mailer.ErrDisabled) {
			return nil, err
		}
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", order.CustomerEmail, err))
			continue
		}
		result.Sent++
	}
	s.logger.Info("arrival notifications done", "date", date, "sent", result.Sent, "failed", result.Failed)
	return result, nil
}

func (s *NotificationService) send(ctx context.Context, kind string, msg mailer.Message) error {
	err := s.mail.Send(ctx, msg)
	result := "ok"
	switch {
	case errors.Is(err, mailer.ErrDisabled):
		result = "disabled"
	case err != nil:
		result = "error"
	}
	metrics.EmailsSent.WithLabelValues(kind, result).Inc()
	return err
}
