package notification

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// SMTPConfig configures the SMTP relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier renders notices and relays them through an SMTP server.
type SMTPNotifier struct {
	cfg      SMTPConfig
	renderer *Renderer
	sendMail sendMailFunc
}

// NewSMTPNotifier creates an SMTPNotifier.
func NewSMTPNotifier(cfg SMTPConfig, renderer *Renderer) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, renderer: renderer, sendMail: smtp.SendMail}
}

// Send renders the notice and hands it to the relay. net/smtp has no context
// support, so a cancelled context is only checked before dialing.
func (s *SMTPNotifier) Send(ctx context.Context, notice Notice) error {
	if err := notice.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, body, err := s.renderer.Render(notice)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	msg := buildMessage(s.cfg.From, notice.Recipients, subject, body, time.Now())
	if err := s.sendMail(addr, auth, s.cfg.From, notice.Recipients, msg); err != nil {
		return fmt.Errorf("failed to send %s notice: %w", notice.Kind, err)
	}
	return nil
}

func buildMessage(from string, to []string, subject, body string, date time.Time) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("Date: " + date.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
