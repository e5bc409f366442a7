package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"

	"cafeteria-orders/order-svc/internal/config"

	"gopkg.in/gomail.v2"
)

// ErrDisabled is returned when no SMTP host is configured.
var ErrDisabled = errors.New("smtp not configured")

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Message struct {
	To          []string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

type SMTPMailer struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	m := &SMTPMailer{cfg: cfg}
	if cfg.Host == "" {
		return m
	}

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	if cfg.User == "" {
		d.Auth = nil
	}
	// Verification is only relaxed for relays with self-signed certificates.
	d.TLSConfig = &tls.Config{ServerName: cfg.Host, InsecureSkipVerify: cfg.InsecureSkipVerify}
	d.SSL = cfg.Port == 465
	m.dialer = d
	return m
}

func (m *SMTPMailer) Enabled() bool {
	return m.dialer != nil
}

// Send delivers msg in one SMTP session. gomail has no context support, so
// ctx is only checked before dialing.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if m.dialer == nil {
		return ErrDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return errors.New("message has no recipients")
	}
	if err := m.dialer.DialAndSend(m.build(msg)); err != nil {
		return fmt.Errorf("send %q: %w", msg.Subject, err)
	}
	return nil
}

func (m *SMTPMailer) from() string {
	if m.cfg.From != "" {
		return m.cfg.From
	}
	return m.cfg.User
}

func (m *SMTPMailer) build(msg Message) *gomail.Message {
	gm := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	gm.SetAddressHeader("From", m.from(), m.cfg.FromName)
	gm.SetHeader("To", msg.To...)
	gm.SetHeader("Subject", msg.Subject)

	switch {
	case msg.Text != "" && msg.HTML != "":
		gm.SetBody("text/plain", msg.Text)
		gm.AddAlternative("text/html", msg.HTML)
	case msg.HTML != "":
		gm.SetBody("text/html", msg.HTML)
	default:
		gm.SetBody("text/plain", msg.Text)
	}

	for _, a := range msg.Attachments {
		data := a.Data
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		}
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {a.ContentType},
			}))
		}
		gm.Attach(a.Filename, settings...)
	}
	return gm
}
