package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cafeteria-orders/order-svc/internal/pricing"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const envPrefix = "CAFE_"

type Config struct {
	App      AppConfig      `koanf:"app"`
	Postgres PostgresConfig `koanf:"postgres"`
	Redis    RedisConfig    `koanf:"redis"`
	Kafka    KafkaConfig    `koanf:"kafka"`
	SMTP     SMTPConfig     `koanf:"smtp"`
	Policy   PolicyConfig   `koanf:"policy"`
	Cron     CronConfig     `koanf:"cron"`
	Admin    AdminConfig    `koanf:"admin"`
}

type AppConfig struct {
	HTTPAddr  string `koanf:"http_addr"`
	LogFile   string `koanf:"log_file"`
	Timezone  string `koanf:"timezone"`
	PublicURL string `koanf:"public_url"`
	// PDFFont is an optional UTF-8 TTF used for PDF reports.
	PDFFont string `koanf:"pdf_font"`
}

type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"dbname"`
	SSLMode  string `koanf:"sslmode"`
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

type RedisConfig struct {
	Addr       string        `koanf:"addr"`
	Password   string        `koanf:"password"`
	CatalogTTL time.Duration `koanf:"catalog_ttl"`
}

type KafkaConfig struct {
	Brokers []string `koanf:"brokers"`
	Topic   string   `koanf:"topic"`
	GroupID string   `koanf:"group_id"`
}

type SMTPConfig struct {
	Host           string   `koanf:"host"`
	Port           int      `koanf:"port"`
	User           string   `koanf:"user"`
	Password       string   `koanf:"password"`
	From           string   `koanf:"from"`
	FromName       string   `koanf:"from_name"`
	SupplierEmails []string `koanf:"supplier_emails"`

	// InsecureSkipVerify accepts self-signed relay certificates.
	InsecureSkipVerify bool `koanf:"insecure_skip_verify"`
}

// PolicyConfig keeps money as strings so no float ever touches a price.
type PolicyConfig struct {
	MinOrderAmount  string `koanf:"min_order_amount"`
	MaxOrderAmount  string `koanf:"max_order_amount"`
	MaxLineQuantity int64  `koanf:"max_line_quantity"`
	Currency        string `koanf:"currency"`
	RequireEmail    bool   `koanf:"require_email"`
	RequirePhone    bool   `koanf:"require_phone"`
	BakeryCategory  string `koanf:"bakery_category"`
	SmallVariation  string `koanf:"small_variation"`
	SmallPrice      string `koanf:"small_price"`
	LargePrice      string `koanf:"large_price"`
}

type CronConfig struct {
	Secret              string `koanf:"secret"`
	DailyReportSchedule string `koanf:"daily_report_schedule"`
}

type AdminConfig struct {
	Secret string `koanf:"secret"`
}

func Default() Config {
	return Config{
		App: AppConfig{
			HTTPAddr: ":8080",
			Timezone: "Asia/Jerusalem",
		},
		Postgres: PostgresConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			DBName:  "cafeteria",
			SSLMode: "disable",
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			CatalogTTL: 5 * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers: []string{"localhost:9092"},
			Topic:   "orders",
			GroupID: "order-notifier",
		},
		SMTP: SMTPConfig{
			Port:     587,
			FromName: "Cafeteria",
		},
		Policy: PolicyConfig{
			MinOrderAmount:  fmt.Sprint(pricing.DefaultMinOrderAmount),
			MaxOrderAmount:  fmt.Sprint(pricing.DefaultMaxOrderAmount),
			MaxLineQuantity: pricing.DefaultMaxLineQuantity,
			Currency:        pricing.DefaultCurrency,
			RequireEmail:    true,
			RequirePhone:    true,
			BakeryCategory:  pricing.DefaultBakeryCategory,
			SmallVariation:  pricing.DefaultSmallVariation,
			SmallPrice:      "4.50",
			LargePrice:      "8.30",
		},
		Cron: CronConfig{
			DailyReportSchedule: "0 7 * * 0-4",
		},
	}
}

// Load reads <dir>/config.yaml when present and then CAFE_* environment
// variables on top of the defaults. Nested keys use a double underscore:
// CAFE_POLICY__MIN_ORDER_AMOUNT=24.
func Load(dir string) (Config, error) {
	k := koanf.New(".")

	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.App.HTTPAddr == "" {
		errs = append(errs, errors.New("app.http_addr is required"))
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("app.timezone: %w", err))
	}
	if c.Admin.Secret == "" {
		errs = append(errs, errors.New("admin.secret is required"))
	}
	if _, err := c.Policy.Build(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Build converts the policy section into the pricer's policy.
func (p PolicyConfig) Build() (pricing.Policy, error) {
	policy := pricing.DefaultPolicy()

	amounts := []struct {
		key string
		raw string
		dst *decimal.Decimal
	}{
		{"policy.min_order_amount", p.MinOrderAmount, &policy.MinOrderAmount},
		{"policy.max_order_amount", p.MaxOrderAmount, &policy.MaxOrderAmount},
		{"policy.small_price", p.SmallPrice, &policy.SmallPrice},
		{"policy.large_price", p.LargePrice, &policy.LargePrice},
	}
	for _, a := range amounts {
		if strings.TrimSpace(a.raw) == "" {
			continue
		}
		d, err := decimal.NewFromString(strings.TrimSpace(a.raw))
		if err != nil {
			return pricing.Policy{}, fmt.Errorf("%s: %w", a.key, err)
		}
		if d.IsNegative() {
			return pricing.Policy{}, fmt.Errorf("%s must not be negative", a.key)
		}
		*a.dst = d
	}

	if p.MaxLineQuantity < 0 || p.MaxLineQuantity > math.MaxInt32 {
		return pricing.Policy{}, fmt.Errorf("policy.max_line_quantity must be between 0 and %d", math.MaxInt32)
	}
	if p.MaxLineQuantity > 0 {
		policy.MaxLineQuantity = p.MaxLineQuantity
	}
	if p.Currency != "" {
		policy.Currency = p.Currency
	}
	policy.RequireEmail = p.RequireEmail
	policy.RequirePhone = p.RequirePhone
	policy.BakeryCategory = p.BakeryCategory
	if p.SmallVariation != "" {
		policy.SmallVariation = p.SmallVariation
	}
	return policy, nil
}

func InitPostgres(cfg PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func InitRedis(cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

func NewKafkaReader(cfg KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
	})
}

func NewKafkaWriter(cfg KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}
