// internal/workers/notifications_processor.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
)

// Mailer delivers a plain text message
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends mail through an SMTP relay
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPMailer creates a mailer for addr (host:port). Empty credentials
// send unauthenticated, which suits a local relay.
func NewSMTPMailer(addr, from, username, password string) *SMTPMailer {
	m := &SMTPMailer{addr: addr, from: from}
	if username != "" {
		host := addr
		if i := strings.LastIndex(addr, ":"); i >= 0 {
			host = addr[:i]
		}
		m.auth = smtp.PlainAuth("", username, password, host)
	}
	return m
}

// Send implements Mailer
func (m *SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// LogMailer writes messages to the log instead of sending them
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a mailer for development
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger.With(slog.String("mailer", "log"))}
}

// Send implements Mailer
func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.logger.InfoContext(ctx, "email would be sent",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body))
	return nil
}

// NotificationProcessor turns stock alerts into emails
type NotificationProcessor struct {
	products ports.ProductService
	mailer   Mailer
	to       string
	logger   *slog.Logger
}

// NewNotificationProcessor creates a new notification processor
func NewNotificationProcessor(products ports.ProductService, mailer Mailer, to string, logger *slog.Logger) *NotificationProcessor {
	return &NotificationProcessor{
		products: products,
		mailer:   mailer,
		to:       to,
		logger:   logger.With(slog.String("processor", "notification")),
	}
}

// SendLowStockAlert handles TypeLowStockAlert
func (p *NotificationProcessor) SendLowStockAlert(ctx context.Context, t *asynq.Task) error {
	var alert domain.LowStockAlert
	if err := json.Unmarshal(t.Payload(), &alert); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	product, err := p.products.GetByID(ctx, alert.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			p.logger.WarnContext(ctx, "alerted product no longer exists",
				slog.Int64("product_id", alert.ProductID))
			return nil
		}
		return err
	}

	subject, body := lowStockMessage(product, alert)

	if p.to == "" {
		p.logger.WarnContext(ctx, "low stock",
			slog.Int64("product_id", alert.ProductID),
			slog.Int("stock", product.Stock),
			slog.Int("threshold", alert.Threshold))
		return nil
	}

	if err := p.mailer.Send(ctx, p.to, subject, body); err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "low stock alert sent",
		slog.Int64("product_id", alert.ProductID),
		slog.String("to", p.to))
	return nil
}

// lowStockMessage reports the current stock, which may have moved since the sale
func lowStockMessage(product *domain.Product, alert domain.LowStockAlert) (string, string) {
	name := strings.TrimSpace(product.Description + " " + product.Size)
	subject := fmt.Sprintf("Low stock: %s", name)

	var b strings.Builder
	fmt.Fprintf(&b, "Product #%d (%s) is below the alert threshold.\r\n\r\n", product.ID, name)
	fmt.Fprintf(&b, "Current stock: %d\r\n", product.Stock)
	fmt.Fprintf(&b, "Threshold: %d\r\n", alert.Threshold)
	if alert.InvoiceID > 0 {
		fmt.Fprintf(&b, "Triggered by sales invoice #%d\r\n", alert.InvoiceID)
	}
	return subject, b.String()
}
