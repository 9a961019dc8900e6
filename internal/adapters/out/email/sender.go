// Package email delivers transactional mail over SMTP with gomail.
package email

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// Config holds the SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Dialer is the part of *gomail.Dialer the sender needs.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// GomailSender implements ports.EmailSender. Every message opens its own
// SMTP session.
type GomailSender struct {
	dialer Dialer
	from   string
}

func NewGomailSender(cfg Config) *GomailSender {
	return NewGomailSenderWithDialer(gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), cfg.From)
}

func NewGomailSenderWithDialer(dialer Dialer, from string) *GomailSender {
	return &GomailSender{dialer: dialer, from: from}
}

func (s *GomailSender) message(to, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return m
}

func (s *GomailSender) send(ctx context.Context, m *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}

func (s *GomailSender) SendPlain(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, s.message(to, subject, body))
}

func (s *GomailSender) SendWithAttachment(ctx context.Context, to, subject, body, filePath string) error {
	m := s.message(to, subject, body)
	m.Attach(filePath)
	return s.send(ctx, m)
}

// LogSender writes mail to the log instead of sending it. Used when no SMTP
// host is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger.With("component", "log_email_sender")}
}

func (s *LogSender) SendPlain(ctx context.Context, to, subject, body string) error {
	s.logger.InfoContext(ctx, "email", "to", to, "subject", subject, "body", body)
	return nil
}

func (s *LogSender) SendWithAttachment(ctx context.Context, to, subject, body, filePath string) error {
	s.logger.InfoContext(ctx, "email", "to", to, "subject", subject, "body", body, "attachment", filePath)
	return nil
}
