package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cafeteria-orders/order-svc/internal/logging"
	"cafeteria-orders/order-svc/internal/mailer"
	"cafeteria-orders/order-svc/internal/report"

	"github.com/shopspring/decimal"
)

type DailyResult struct {
	Date        string   `json:"date"`
	Orders      int      `json:"orders"`
	Sent        bool     `json:"success"`
	Attachments []string `json:"attachments,omitempty"`
	Message     string   `json:"message"`
}

type ReportService struct {
	orders    OrderReader
	renderer  ReportRenderer
	mail      Mailer
	suppliers []string
	loc       *time.Location
	logger    *slog.Logger

	Now func() time.Time
}

func NewReportService(orders OrderReader, renderer ReportRenderer, mail Mailer, suppliers []string, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		orders:    orders,
		renderer:  renderer,
		mail:      mail,
		suppliers: suppliers,
		loc:       loc,
		logger:    logging.New("reports"),
		Now:       time.Now,
	}
}

func (s *ReportService) today() string {
	return s.Now().In(s.loc).Format(dateLayout)
}

// Download renders the orders of date (or the latest orders when date is
// empty) in the requested format.
func (s *ReportService) Download(ctx context.Context, date string, format report.Format) (*report.File, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}
	orders, err := s.orders.ListOrders(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, ErrNoOrders
	}

	title := "Orders report"
	if date != "" {
		title += " " + date
	}
	data, err := s.renderer.Render(report.BuildOrderTable(title, orders), format)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return &report.File{
		Filename:    report.Filename(date, s.today(), format),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

// SendDaily mails today's orders to the supplier list as Excel, Word and
// PDF. A failed PDF is left out; the other formats are required.
func (s *ReportService) SendDaily(ctx context.Context) (*DailyResult, error) {
	today := s.today()
	result := &DailyResult{Date: today}

	orders, err := s.orders.ListOrders(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	result.Orders = len(orders)
	if len(orders) == 0 {
		result.Message = "No orders for today"
		return result, nil
	}
	if len(s.suppliers) == 0 {
		return nil, ErrNoSupplierAddress
	}

	table := report.BuildOrderTable("Daily orders report "+today, orders)
	var files []mailer.Attachment
	for _, f := range []report.Format{report.FormatExcel, report.FormatWord, report.FormatPDF} {
		data, err := s.renderer.Render(table, f)
		if err != nil {
			if f == report.FormatPDF {
				s.logger.Warn("pdf report failed, sending without it", "date", today, "error", err)
				continue
			}
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		files = append(files, mailer.Attachment{
			Filename:    report.Filename(today, today, f),
			ContentType: f.ContentType(),
			Data:        data,
		})
		result.Attachments = append(result.Attachments, string(f))
	}

	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.TotalAmount)
	}
	msg, err := mailer.DailyReport(s.suppliers, mailer.DailySummary{Date: today, Count: len(orders), Total: total}, files)
	if err != nil {
		return nil, err
	}

	err = s.mail.Send(ctx, msg)
	switch {
	case errors.Is(err, mailer.ErrDisabled):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("send daily report: %w", err)
	}

	result.Sent = true
	result.Message = fmt.Sprintf("Daily report sent with %d orders", len(orders))
	s.logger.Info("daily report sent", "date", today, "orders", len(orders), "attachments", result.Attachments)
	return result, nil
}
