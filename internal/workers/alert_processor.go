// internal/workers/alert_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/ammerola/frontdesk-be/internal/pkg/config"
)

// Mailer sends a plain text mail
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer delivers mail through an SMTP relay
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPMailer builds a mailer from the notification settings. Auth is only
// used when a username is present.
func NewSMTPMailer(cfg config.NotificationConfig) *SMTPMailer {
	m := &SMTPMailer{
		addr: net.JoinHostPort(cfg.SMTPHost, cfg.SMTPPort),
		from: cfg.From,
	}
	if cfg.SMTPUsername != "" {
		m.auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return m
}

// headerBreaks folds line breaks out of header values
var headerBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Send delivers one message. smtp.SendMail does not take a context.
func (m *SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		headerBreaks.Replace(m.from), headerBreaks.Replace(to), headerBreaks.Replace(subject), body,
	))
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// AlertProcessor handles low-stock alerts
type AlertProcessor struct {
	mailer    Mailer
	recipient string
	logger    *slog.Logger
}

// NewAlertProcessor creates an alert processor. A nil mailer or an empty
// recipient means alerts are only logged.
func NewAlertProcessor(mailer Mailer, recipient string, logger *slog.Logger) *AlertProcessor {
	return &AlertProcessor{
		mailer:    mailer,
		recipient: recipient,
		logger:    logger.With(slog.String("processor", "alert")),
	}
}

// ProcessLowStockAlert logs the alert and mails it when a recipient is configured
func (p *AlertProcessor) ProcessLowStockAlert(ctx context.Context, t *asynq.Task) error {
	var payload LowStockAlertPayload
	if err := decodePayload(t, &payload); err != nil {
		return err
	}

	p.logger.WarnContext(ctx, "low stock",
		slog.String("item_name", payload.ItemName),
		slog.Int("current_stock", payload.CurrentStock),
		slog.Int("threshold", payload.Threshold))

	if p.mailer == nil || p.recipient == "" {
		return nil
	}

	subject := fmt.Sprintf("Low stock: %s", payload.ItemName)
	body := fmt.Sprintf("%s is down to %d in stock (threshold %d).",
		payload.ItemName, payload.CurrentStock, payload.Threshold)

	if err := p.mailer.Send(ctx, p.recipient, subject, body); err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "low stock alert mailed", slog.String("to", p.recipient))
	return nil
}
