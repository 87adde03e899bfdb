package notify

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/config"
)

// TelegramSender delivers through the Bot API sendMessage method
type TelegramSender struct {
	http   *resty.Client
	token  string
	logger *zap.Logger
}

type telegramResult struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// NewTelegramSender creates a TelegramSender
func NewTelegramSender(cfg config.TelegramConfig, logger *zap.Logger) *TelegramSender {
	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(10*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Content-Type", "application/json")
	return &TelegramSender{http: rc, token: cfg.BotToken, logger: logger}
}

func (s *TelegramSender) Channel() string { return "telegram" }

func (s *TelegramSender) Send(ctx context.Context, to Recipient, msg Message) error {
	if to.Telegram == "" {
		return ErrNoAddress
	}

	var result telegramResult
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"chat_id":    to.Telegram,
			"text":       toTelegramHTML(msg),
			"parse_mode": "HTML",
		}).
		SetResult(&result).
		SetError(&result).
		Post("/bot" + s.token + "/sendMessage")
	if err != nil {
		return fmt.Errorf("telegram request: %w", err)
	}
	if !result.OK {
		s.logger.Warn("telegram delivery failed",
			zap.String("chat", to.Telegram),
			zap.Int("status", resp.StatusCode()),
			zap.String("description", result.Description),
		)
		return fmt.Errorf("telegram: %s", result.Description)
	}
	return nil
}

var unsupportedTags = regexp.MustCompile(`</?(h[1-6]|p|ul|ol|div|br|html|body)[^>]*>`)

// Telegram HTML allows only inline tags; block tags become line breaks
func toTelegramHTML(msg Message) string {
	body := strings.ReplaceAll(msg.HTML, "<li>", "• ")
	body = strings.ReplaceAll(body, "</li>", "\n")
	body = unsupportedTags.ReplaceAllString(body, "\n")
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines)+1)
	out = append(out, "<b>"+msg.Subject+"</b>")
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
