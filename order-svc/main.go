package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "cafeteria-orders/order-svc/internal/api/http"
	"cafeteria-orders/order-svc/internal/config"
	"cafeteria-orders/order-svc/internal/logging"
	"cafeteria-orders/order-svc/internal/mailer"
	"cafeteria-orders/order-svc/internal/pricing"
	"cafeteria-orders/order-svc/internal/report"
	"cafeteria-orders/order-svc/internal/scheduler"
	"cafeteria-orders/order-svc/internal/service"
	"cafeteria-orders/order-svc/internal/storage"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const reportJobTimeout = 2 * time.Minute

type app struct {
	handler       http.Handler
	notifications *service.NotificationService
	reports       *service.ReportService
	stats         *storage.RedisStats
}

// wire builds the service graph on top of already opened connections.
// publisher may be nil, in which case placed orders are not announced.
func wire(cfg config.Config, db *sql.DB, rdb *redis.Client, publisher service.OrderPublisher) (*app, error) {
	policy, err := cfg.Policy.Build()
	if err != nil {
		return nil, err
	}
	loc := cfg.Location()

	repo := storage.NewPostgresRepository(db)
	catalog := storage.NewCatalogCache(rdb, cfg.Redis.CatalogTTL, repo)
	stats := storage.NewRedisStats(rdb)
	qr := service.PickupQRGenerator{BaseURL: cfg.App.PublicURL}
	mail := mailer.NewSMTPMailer(cfg.SMTP)
	if !mail.Enabled() {
		logging.Base().Warn("smtp not configured, email features disabled")
	}

	pricer := pricing.NewPricer(catalog, policy, nil)
	orders := service.NewOrderService(pricer, repo, publisher, qr, loc)
	notifications := service.NewNotificationService(repo, mail, qr, cfg.SMTP.SupplierEmails)
	reports := service.NewReportService(repo, report.NewRenderer(cfg.App.PDFFont), mail, cfg.SMTP.SupplierEmails, loc)
	analytics := service.NewAnalyticsService(stats, loc)

	handler := httpapi.NewHandler(
		service.NewMenuService(repo),
		orders,
		notifications,
		reports,
		analytics,
		httpapi.Secrets{Admin: cfg.Admin.Secret, Cron: cfg.Cron.Secret},
	)

	return &app{
		handler:       httpapi.NewRouter(handler),
		notifications: notifications,
		reports:       reports,
		stats:         stats,
	}, nil
}

func run(ctx context.Context, cfg config.Config) error {
	db, err := config.InitPostgres(cfg.Postgres)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.NewPostgresRepository(db).EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	rdb, err := config.InitRedis(cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	writer := config.NewKafkaWriter(cfg.Kafka)
	defer writer.Close()

	a, err := wire(cfg, db, rdb, storage.NewKafkaPublisher(writer))
	if err != nil {
		return err
	}

	reader := config.NewKafkaReader(cfg.Kafka)
	defer reader.Close()
	consumer := service.NewConsumer(reader, a.stats, a.notifications)
	go consumer.Start(ctx)

	jobs := scheduler.New(cfg.Location(), reportJobTimeout)
	if err := jobs.Add("daily-report", cfg.Cron.DailyReportSchedule, func(ctx context.Context) error {
		_, err := a.reports.SendDaily(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("schedule daily report: %w", err)
	}
	jobs.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), reportJobTimeout)
		defer cancel()
		jobs.Stop(stopCtx)
	}()

	return httpapi.Serve(ctx, cfg.App.HTTPAddr, a.handler)
}

func main() {
	// Prices go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load(os.Getenv("CAFE_CONFIG_DIR"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	logger := logging.Init("order-svc", cfg.App.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("order service stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("order service stopped")
}
