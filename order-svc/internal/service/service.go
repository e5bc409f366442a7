package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cafeteria-orders/order-svc/internal/domain"
	"cafeteria-orders/order-svc/internal/logging"
	"cafeteria-orders/order-svc/internal/metrics"
	"cafeteria-orders/order-svc/internal/pricing"

	"github.com/google/uuid"
)

type MenuService struct {
	repo   MenuRepository
	logger *slog.Logger
}

func NewMenuService(repo MenuRepository) *MenuService {
	return &MenuService{repo: repo, logger: logging.New("menu")}
}

// List never fails: storage errors and an empty table both yield the
// built-in menu.
func (s *MenuService) List(ctx context.Context) []domain.MenuItem {
	if s.repo == nil {
		return domain.DefaultMenu()
	}
	items, err := s.repo.ListAvailableMenu(ctx)
	if err != nil {
		s.logger.Error("menu query failed, serving default menu", "error", err)
		return domain.DefaultMenu()
	}
	if len(items) == 0 {
		s.logger.Info("menu table empty, serving default menu")
		return domain.DefaultMenu()
	}
	return items
}

type OrderService struct {
	quoter    Quoter
	repo      OrderRepository
	publisher OrderPublisher
	qrEncoder QRGenerator
	loc       *time.Location

	// Now is the clock used for order dates.
	Now func() time.Time
}

func NewOrderService(quoter Quoter, repo OrderRepository, publisher OrderPublisher, qr QRGenerator, loc *time.Location) *OrderService {
	if loc == nil {
		loc = time.UTC
	}
	return &OrderService{
		quoter:    quoter,
		repo:      repo,
		publisher: publisher,
		qrEncoder: qr,
		loc:       loc,
		Now:       time.Now,
	}
}

// Place prices the cart and persists it. Nothing is written unless the
// quote is accepted.
func (s *OrderService) Place(ctx context.Context, cart pricing.Cart) (*domain.Order, error) {
	quote, err := s.quoter.Quote(ctx, cart)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrBelowMinimum):
			metrics.OrdersRejected.WithLabelValues("below_minimum").Inc()
		case errors.Is(err, pricing.ErrInvalidInput):
			metrics.OrdersRejected.WithLabelValues("invalid_input").Inc()
		}
		return nil, err
	}

	now := s.Now().In(s.loc)
	order := &domain.Order{
		ID:            uuid.NewString(),
		CustomerName:  quote.CustomerName,
		CustomerEmail: quote.CustomerEmail,
		CustomerPhone: quote.CustomerPhone,
		TotalAmount:   quote.Total,
		Status:        domain.StatusPending,
		OrderDate:     now.Format(dateLayout),
		CreatedAt:     now,
		Items:         make([]domain.OrderItem, 0, len(quote.Lines)),
	}
	for _, line := range quote.Lines {
		order.Items = append(order.Items, domain.OrderItem{
			MenuItemID:          line.ItemID,
			Name:                line.Name,
			Quantity:            line.Quantity,
			Price:               line.Price,
			SelectedAddons:      line.SelectedAddons,
			SelectedVariation:   line.SelectedVariation,
			SpecialInstructions: line.SpecialInstructions,
		})
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	metrics.OrdersPlaced.Inc()
	logging.FromCtx(ctx).Info("order placed",
		"order_id", order.ID, "total", order.TotalAmount.String(), "lines", len(order.Items))

	s.publish(ctx, order)
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	event := domain.OrderEvent{
		Type:          domain.EventOrderPlaced,
		OrderID:       order.ID,
		CustomerEmail: order.CustomerEmail,
		OrderDate:     order.OrderDate,
		Total:         order.TotalAmount,
		Timestamp:     s.Now(),
	}
	for _, item := range order.Items {
		event.Items = append(event.Items, domain.EventItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
		})
	}
	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		logging.FromCtx(ctx).Error("publish order_placed failed", "order_id", order.ID, "error", err)
	}
}

func (s *OrderService) List(ctx context.Context, date string) ([]domain.Order, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}
	return s.repo.ListOrders(ctx, date)
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	if err := checkOrderID(id); err != nil {
		return nil, err
	}
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return order, nil
}

// UpdateStatus applies pending -> completed|cancelled. Setting the current
// status again is a no-op.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	order, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if order.Status == status {
		return nil
	}
	if !order.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", ErrStatusTransition, order.Status, status)
	}

	ok, err := s.repo.UpdateStatusIf(ctx, id, order.Status, status)
	if err != nil {
		return err
	}
	if !ok {
		// Changed concurrently.
		return fmt.Errorf("%w: %s is no longer %s", ErrStatusTransition, id, order.Status)
	}
	logging.FromCtx(ctx).Info("order status changed", "order_id", id, "from", order.Status, "to", status)
	return nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := checkOrderID(id); err != nil {
		return err
	}
	n, err := s.repo.DeleteOrder(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// QRCode returns the stored pickup code, generating and storing it on first
// use.
func (s *OrderService) QRCode(ctx context.Context, id string) ([]byte, error) {
	if err := checkOrderID(id); err != nil {
		return nil, err
	}
	qr, err := s.repo.GetQRCode(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if len(qr) > 0 || s.qrEncoder == nil {
		return qr, nil
	}

	qr, err = s.qrEncoder.Generate(id)
	if err != nil {
		return nil, fmt.Errorf("generate qr: %w", err)
	}
	if err := s.repo.SaveQRCode(ctx, id, qr); err != nil {
		logging.FromCtx(ctx).Warn("store qr code failed", "order_id", id, "error", err)
	}
	return qr, nil
}
