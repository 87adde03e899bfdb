package notify

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/config"
)

// EmailSender SMTP delivery
type EmailSender struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailSender creates an EmailSender
func NewEmailSender(cfg config.SMTPConfig, logger *zap.Logger) *EmailSender {
	return &EmailSender{cfg: cfg, logger: logger, send: smtp.SendMail}
}

func (s *EmailSender) Channel() string { return "email" }

func (s *EmailSender) Send(ctx context.Context, to Recipient, msg Message) error {
	if to.Email == "" {
		return ErrNoAddress
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := s.send(addr, auth, from, []string{to.Email}, buildMIME(from, to.Email, msg)); err != nil {
		s.logger.Warn("email delivery failed", zap.String("to", to.Email), zap.Error(err))
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func buildMIME(from, to string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}
