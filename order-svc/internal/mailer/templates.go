package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"cafeteria-orders/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const currencySign = "₪"

var templates = template.Must(template.New("mail").Funcs(template.FuncMap{
	"money": money,
	"short": ShortID,
	"join":  strings.Join,
}).Parse(`
{{define "confirmation"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1e40af; text-align: center;">Your order was received</h2>
  <p>Hello {{.CustomerName}},</p>
  <p>Thank you for your order. Details:</p>
  <div style="background-color: #f3f4f6; padding: 15px; border-radius: 8px; margin: 20px 0;">
    <p><strong>Order number:</strong> {{short .ID}}</p>
    <p><strong>Date:</strong> {{.OrderDate}}</p>
    <ul style="list-style-type: none;">
    {{range .Items}}<li>{{.Quantity}}x {{.Name}} - {{money .Price}}{{if .SelectedVariation}} ({{.SelectedVariation}}){{end}}{{if .SelectedAddons}} [add-ons: {{join .SelectedAddons ", "}}]{{end}}{{if .SpecialInstructions}} [notes: {{.SpecialInstructions}}]{{end}}</li>
    {{end}}</ul>
    <p style="font-size: 18px; font-weight: bold;">Total: {{money .TotalAmount}}</p>
  </div>
  <p>The QR code for pickup is attached.</p>
</div>{{end}}

{{define "arrival"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #059669; text-align: center;">Your order has arrived</h2>
  <p>Hello {{.CustomerName}},</p>
  <p>Order {{short .ID}} is waiting for you at the cafeteria.</p>
  <p><strong>Total:</strong> {{money .TotalAmount}}</p>
</div>{{end}}

{{define "supplier_empty"}}<div style="font-family: Arial, sans-serif;">
  <p>No orders were placed for {{.}}.</p>
</div>{{end}}

{{define "daily_report"}}<div style="font-family: Arial, sans-serif;">
  <h2>Orders for {{.Date}}</h2>
  <p>{{.Count}} orders, total {{money .Total}}.</p>
  <p>The report files are attached.</p>
</div>{{end}}
`))

func money(v decimal.Decimal) string {
	return v.StringFixed(2) + " " + currencySign
}

// ShortID is the first eight characters of an order id, used in subjects.
func ShortID(id string) string {
	return domain.ShortID(id)
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func Confirmation(order *domain.Order, qr []byte) (Message, error) {
	html, err := render("confirmation", order)
	if err != nil {
		return Message{}, err
	}
	msg := Message{
		To:      []string{order.CustomerEmail},
		Subject: "Order received - " + ShortID(order.ID),
		HTML:    html,
		Text: fmt.Sprintf("Your order was received. Order number: %s. Total: %s",
			ShortID(order.ID), money(order.TotalAmount)),
	}
	if len(qr) > 0 {
		msg.Attachments = append(msg.Attachments, Attachment{
			Filename:    "order-" + ShortID(order.ID) + ".png",
			ContentType: "image/png",
			Data:        qr,
		})
	}
	return msg, nil
}

func Arrival(order *domain.Order) (Message, error) {
	html, err := render("arrival", order)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      []string{order.CustomerEmail},
		Subject: "Your order has arrived - " + ShortID(order.ID),
		HTML:    html,
		Text:    fmt.Sprintf("Order %s is waiting for you at the cafeteria.", ShortID(order.ID)),
	}, nil
}

func SupplierNoOrders(to []string, date string) (Message, error) {
	html, err := render("supplier_empty", date)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: "No orders for " + date,
		HTML:    html,
		Text:    "No orders were placed for " + date + ".",
	}, nil
}

type DailySummary struct {
	Date  string
	Count int
	Total decimal.Decimal
}

func DailyReport(to []string, summary DailySummary, files []Attachment) (Message, error) {
	html, err := render("daily_report", summary)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:          to,
		Subject:     "Daily orders report - " + summary.Date,
		HTML:        html,
		Text:        fmt.Sprintf("%d orders for %s, total %s.", summary.Count, summary.Date, money(summary.Total)),
		Attachments: files,
	}, nil
}
