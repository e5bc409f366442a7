package service

import (
	"context"

	"cafeteria-orders/order-svc/internal/domain"
	"cafeteria-orders/order-svc/internal/mailer"
	"cafeteria-orders/order-svc/internal/pricing"
	"cafeteria-orders/order-svc/internal/report"
	"cafeteria-orders/order-svc/internal/storage"
)

type MenuRepository interface {
	ListAvailableMenu(ctx context.Context) ([]domain.MenuItem, error)
}

type OrderReader interface {
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, date string) ([]domain.Order, error)
}

type OrderRepository interface {
	OrderReader
	CreateOrder(ctx context.Context, order *domain.Order) error
	UpdateStatusIf(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error)
	DeleteOrder(ctx context.Context, id string) (int64, error)
	SaveQRCode(ctx context.Context, id string, qr []byte) error
	GetQRCode(ctx context.Context, id string) ([]byte, error)
}

type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, event domain.OrderEvent) error
}

type Quoter interface {
	Quote(ctx context.Context, cart pricing.Cart) (*pricing.Quote, error)
}

type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

type ReportRenderer interface {
	Render(t report.Table, f report.Format) ([]byte, error)
}

type PopularityStore interface {
	IncrementItems(ctx context.Context, date string, items []domain.EventItem) error
	TopItems(ctx context.Context, date string, limit int) ([]domain.PopularItem, error)
	MarkNotified(ctx context.Context, kind, orderID string) (bool, error)
	ClearNotified(ctx context.Context, kind, orderID string) error
}

type MenuServiceInterface interface {
	List(ctx context.Context) []domain.MenuItem
}

type OrderServiceInterface interface {
	Place(ctx context.Context, cart pricing.Cart) (*domain.Order, error)
	List(ctx context.Context, date string) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	Delete(ctx context.Context, id string) error
	QRCode(ctx context.Context, id string) ([]byte, error)
}

type NotificationServiceInterface interface {
	SendConfirmation(ctx context.Context, orderID string) (bool, error)
	SendArrival(ctx context.Context, date string) (*ArrivalResult, error)
}

type ReportServiceInterface interface {
	Download(ctx context.Context, date string, format report.Format) (*report.File, error)
	SendDaily(ctx context.Context) (*DailyResult, error)
}

type AnalyticsServiceInterface interface {
	Popular(ctx context.Context, date string, limit int) ([]domain.PopularItem, error)
}

var (
	_ MenuRepository  = (*storage.PostgresRepository)(nil)
	_ OrderRepository = (*storage.PostgresRepository)(nil)
	_ OrderPublisher  = (*storage.KafkaPublisher)(nil)
	_ PopularityStore = (*storage.RedisStats)(nil)
	_ Quoter          = (*pricing.Pricer)(nil)
	_ Mailer          = (*mailer.SMTPMailer)(nil)
	_ ReportRenderer  = (*report.Renderer)(nil)

	_ MenuServiceInterface         = (*MenuService)(nil)
	_ OrderServiceInterface        = (*OrderService)(nil)
	_ NotificationServiceInterface = (*NotificationService)(nil)
	_ ReportServiceInterface       = (*ReportService)(nil)
	_ AnalyticsServiceInterface    = (*AnalyticsService)(nil)
)
