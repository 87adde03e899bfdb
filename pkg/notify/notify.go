package notify

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/config"
)

// ErrNoAddress the recipient has no address on this channel
var ErrNoAddress = errors.New("recipient has no address for channel")

// Recipient a person to notify
type Recipient struct {
	Name     string
	Email    string
	Telegram string
}

// Message content sent on every channel
type Message struct {
	Subject string
	HTML    string
}

// Sender delivers a message over one channel
type Sender interface {
	Channel() string
	Send(ctx context.Context, to Recipient, msg Message) error
}

// FromConfig builds the senders that are configured.
// With nothing configured a log-only sender is returned so callers always have one.
func FromConfig(cfg *config.NotifyConfig, logger *zap.Logger) []Sender {
	var senders []Sender
	if cfg.SMTP.Host != "" {
		senders = append(senders, NewEmailSender(cfg.SMTP, logger))
	}
	if cfg.Telegram.BotToken != "" {
		senders = append(senders, NewTelegramSender(cfg.Telegram, logger))
	}
	if len(senders) == 0 {
		senders = append(senders, NewLogSender(logger))
	}
	return senders
}

// LogSender writes messages to the log instead of delivering them
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a LogSender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Channel() string { return "log" }

func (s *LogSender) Send(_ context.Context, to Recipient, msg Message) error {
	s.logger.Info("notification (delivery not configured)",
		zap.String("to", to.Name),
		zap.String("email", to.Email),
		zap.String("subject", msg.Subject),
	)
	return nil
}
