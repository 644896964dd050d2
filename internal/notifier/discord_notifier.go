package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/aleister1102/slotwatch/internal/config"
	"github.com/aleister1102/slotwatch/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// DiscordNotifier handles sending notifications to a Discord webhook.
type DiscordNotifier struct {
	client     *resty.Client
	webhookURL string
	username   string
	logger     zerolog.Logger
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(cfg config.NotificationConfig, logger zerolog.Logger) *DiscordNotifier {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultNotificationTimeoutSecs) * time.Second
	}
	return &DiscordNotifier{
		client:     resty.New().SetTimeout(timeout),
		webhookURL: cfg.DiscordWebhookURL,
		username:   config.DefaultNotificationDiscordAuthor,
		logger:     logger.With().Str("component", "DiscordNotifier").Logger(),
	}
}

func (dn *DiscordNotifier) Name() string {
	return ChannelDiscord
}

// Send implements Notifier.
func (dn *DiscordNotifier) Send(ctx context.Context, n models.Notification) error {
	payload := FormatDiscordPayload(n, dn.username)

	resp, err := dn.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(dn.webhookURL)
	if err != nil {
		return &NotificationError{Channel: ChannelDiscord, Err: fmt.Errorf("webhook request failed: %w", err)}
	}

	if resp.IsError() {
		dn.logger.Error().Int("status_code", resp.StatusCode()).Str("response_body", resp.String()).Msg("Discord notification failed")
		return &NotificationError{
			Channel: ChannelDiscord,
			Err:     fmt.Errorf("webhook returned status %d: %s", resp.StatusCode(), resp.String()),
		}
	}

	dn.logger.Info().Int("status_code", resp.StatusCode()).Str("kind", string(n.Kind)).Msg("Discord notification sent")
	return nil
}
