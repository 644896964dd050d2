package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aleister1102/slotwatch/internal/config"
	"github.com/aleister1102/slotwatch/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// TelegramNotifier sends messages through the Telegram Bot API sendMessage method.
type TelegramNotifier struct {
	client    *resty.Client
	token     string
	chatID    string
	parseMode string
	logger    zerolog.Logger
}

// NewTelegramNotifier creates a new TelegramNotifier.
func NewTelegramNotifier(cfg config.NotificationConfig, logger zerolog.Logger) *TelegramNotifier {
	baseURL := cfg.TelegramAPIBaseURL
	if baseURL == "" {
		baseURL = config.DefaultTelegramAPIBaseURL
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultNotificationTimeoutSecs) * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout)

	return &TelegramNotifier{
		client:    client,
		token:     cfg.TelegramBotToken,
		chatID:    cfg.TelegramChatID,
		parseMode: cfg.TelegramParseMode,
		logger:    logger.With().Str("component", "TelegramNotifier").Logger(),
	}
}

func (tn *TelegramNotifier) Name() string {
	return ChannelTelegram
}

// Send implements Notifier.
func (tn *TelegramNotifier) Send(ctx context.Context, n models.Notification) error {
	msg := models.TelegramMessage{
		ChatID:    tn.chatID,
		Text:      FormatTelegramMessage(n),
		ParseMode: tn.parseMode,
	}
	if err := tn.sendMessage(ctx, msg); err != nil {
		return &NotificationError{Channel: ChannelTelegram, Err: err}
	}
	tn.logger.Info().Str("kind", string(n.Kind)).Msg("Telegram notification sent")
	return nil
}

func (tn *TelegramNotifier) sendMessage(ctx context.Context, msg models.TelegramMessage) error {
	form := map[string]string{
		"chat_id": msg.ChatID,
		"text":    msg.Text,
	}
	if msg.ParseMode != "" {
		form["parse_mode"] = msg.ParseMode
	}

	var result models.TelegramResponse
	// The token is part of the path; never log the request URL.
	resp, err := tn.client.R().
		SetContext(ctx).
		SetPathParam("token", tn.token).
		SetFormData(form).
		SetResult(&result).
		SetError(&result).
		Post("/bot{token}/sendMessage")
	if err != nil {
		return fmt.Errorf("sendMessage request failed: %w", redactToken(err, tn.token))
	}

	if resp.IsError() || !result.OK {
		description := result.Description
		if description == "" {
			description = strings.TrimSpace(resp.String())
		}
		return fmt.Errorf("sendMessage returned status %d: %s", resp.StatusCode(), description)
	}
	return nil
}

// redactToken strips the bot token from transport errors, which embed the URL.
func redactToken(err error, token string) error {
	if token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(err.Error(), token, "<redacted>"))
}
