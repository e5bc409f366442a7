package mailer

import (
	"bytes"
	"context"
	"testing"

	"cafeteria-orders/order-svc/internal/config"
	"cafeteria-orders/order-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() *domain.Order {
	return &domain.Order{
		ID:            "7f1c2a9e-3a55-4a9e-9c1c-0a4b2b8e1d10",
		CustomerName:  "Dana <script>",
		CustomerEmail: "dana@example.com",
		TotalAmount:   decimal.RequireFromString("37"),
		OrderDate:     "2026-10-15",
		Items: []domain.OrderItem{
			{Name: "Pizza", Quantity: 1, Price: decimal.RequireFromString("20.5"), SelectedAddons: []string{"olives", "corn"}},
			{Name: "Croissant", Quantity: 2, Price: decimal.RequireFromString("4.5"), SelectedVariation: "small"},
		},
	}
}

func TestSMTPMailer_DisabledWithoutHost(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{})

	assert.False(t, m.Enabled())
	assert.ErrorIs(t, m.Send(context.Background(), Message{To: []string{"a@b.c"}}), ErrDisabled)
}

func TestSMTPMailer_Build(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{Host: "smtp.example.com", Port: 465, From: "cafe@example.com", FromName: "Cafeteria"})
	require.True(t, m.Enabled())
	assert.True(t, m.dialer.SSL)

	msg, err := Confirmation(testOrder(), []byte("png-bytes"))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.build(msg).WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "Subject: Order received - 7f1c2a9e")
	assert.Contains(t, raw, "cafe@example.com")
	assert.Contains(t, raw, "To: dana@example.com")
	assert.Contains(t, raw, `filename="order-7f1c2a9e.png"`)
	assert.Contains(t, raw, "text/html")
}

func TestSMTPMailer_TLSVerification(t *testing.T) {
	tests := []struct {
		name       string
		insecure   bool
		wantVerify bool
	}{
		{name: "verifies by default", insecure: false, wantVerify: true},
		{name: "opt-in for self-signed relays", insecure: true, wantVerify: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			m := NewSMTPMailer(config.SMTPConfig{
				Host:               "smtp.example.com",
				Port:               587,
				From:               "cafe@example.com",
				InsecureSkipVerify: testCase.insecure,
			})
			require.NotNil(t, m.dialer.TLSConfig)
			assert.Equal(t, "smtp.example.com", m.dialer.TLSConfig.ServerName)
			assert.Equal(t, testCase.wantVerify, !m.dialer.TLSConfig.InsecureSkipVerify)
		})
	}
}

func TestConfirmation_Body(t *testing.T) {
	msg, err := Confirmation(testOrder(), nil)
	require.NoError(t, err)

	assert.Empty(t, msg.Attachments)
	assert.Contains(t, msg.HTML, "1x Pizza - 20.50 ₪")
	assert.Contains(t, msg.HTML, "[add-ons: olives, corn]")
	assert.Contains(t, msg.HTML, "(small)")
	assert.Contains(t, msg.HTML, "Total: 37.00 ₪")
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.Text, "7f1c2a9e")
}

func TestDailyReport(t *testing.T) {
	files := []Attachment{{Filename: "orders.xlsx"}, {Filename: "orders.docx"}}
	msg, err := DailyReport([]string{"kitchen@example.com"}, DailySummary{
		Date: "2026-10-15", Count: 3, Total: decimal.RequireFromString("99.9"),
	}, files)
	require.NoError(t, err)

	assert.Equal(t, "Daily orders report - 2026-10-15", msg.Subject)
	assert.Len(t, msg.Attachments, 2)
	assert.Contains(t, msg.Text, "3 orders for 2026-10-15, total 99.90 ₪.")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", ShortID("abc"))
	assert.Equal(t, "12345678", ShortID("123456789"))
}
