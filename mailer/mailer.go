// Package mailer delivers outbound account notifications. Development and
// test profiles log messages to the console; production talks SMTP.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/goliatone/go-accounts/config"
)

// Mailer sends a single message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// FromConfig selects the transport declared by the environment profile.
func FromConfig(cfg config.MailConfig) Mailer {
	if cfg.Backend == "smtp" {
		return &SMTP{cfg: cfg}
	}
	return &Console{From: cfg.From}
}

// Console writes messages to stdout. Nothing leaves the process.
type Console struct {
	From string
}

func (c *Console) Send(_ context.Context, to, subject, body string) error {
	fmt.Printf("---- MAIL ----\nFrom: %s\nTo: %s\nSubject: %s\n\n%s\n--------------\n",
		c.From, to, subject, body)
	return nil
}

// SMTP delivers through the configured relay using PLAIN auth over
// STARTTLS when enabled.
type SMTP struct {
	cfg config.MailConfig
}

func (s *SMTP) Send(ctx context.Context, to, subject, body string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}

	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
	}, "\r\n")

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}
