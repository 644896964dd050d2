// Package notifier delivers operator messages to Telegram and Discord.
package notifier

import (
	"context"
	"fmt"

	"github.com/aleister1102/slotwatch/internal/common"
	"github.com/aleister1102/slotwatch/internal/config"
	"github.com/aleister1102/slotwatch/internal/models"
	"github.com/rs/zerolog"
)

// Notifier delivers one notification to one or more channels.
type Notifier interface {
	Name() string
	Send(ctx context.Context, n models.Notification) error
}

// NotificationError reports a delivery failure on one channel.
type NotificationError struct {
	Channel string
	Err     error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("%s notification failed: %v", e.Channel, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

// New builds a notifier from the configured channels. Without any channel it
// returns a DisabledNotifier and logs a warning; this is not an error.
func New(cfg config.NotificationConfig, logger zerolog.Logger) Notifier {
	var channels []Notifier

	if cfg.TelegramEnabled() {
		channels = append(channels, NewTelegramNotifier(cfg, logger))
	}
	if cfg.DiscordEnabled() {
		channels = append(channels, NewDiscordNotifier(cfg, logger))
	}

	switch len(channels) {
	case 0:
		logger.Warn().Msg("Notifications not configured (set TG_TOKEN and TG_CHAT_ID or DISCORD_WEBHOOK_URL); changes will only be logged")
		return NewDisabledNotifier(logger)
	case 1:
		return channels[0]
	default:
		return NewMultiNotifier(logger, channels...)
	}
}

// DisabledNotifier logs notifications instead of sending them.
type DisabledNotifier struct {
	logger zerolog.Logger
}

// NewDisabledNotifier creates a new DisabledNotifier.
func NewDisabledNotifier(logger zerolog.Logger) *DisabledNotifier {
	return &DisabledNotifier{logger: logger.With().Str("component", "DisabledNotifier").Logger()}
}

func (d *DisabledNotifier) Name() string {
	return "disabled"
}

// Send implements Notifier.
func (d *DisabledNotifier) Send(_ context.Context, n models.Notification) error {
	d.logger.Info().
		Str("kind", string(n.Kind)).
		Str("target", n.Target).
		Int("added", len(n.Added)).
		Int("removed", len(n.Removed)).
		Msg("Notification skipped, no channel configured")
	return nil
}

// MultiNotifier fans a notification out to every channel. A failing channel
// does not stop the others.
type MultiNotifier struct {
	channels []Notifier
	logger   zerolog.Logger
}

// NewMultiNotifier creates a new MultiNotifier.
func NewMultiNotifier(logger zerolog.Logger, channels ...Notifier) *MultiNotifier {
	return &MultiNotifier{
		channels: channels,
		logger:   logger.With().Str("component", "MultiNotifier").Logger(),
	}
}

func (m *MultiNotifier) Name() string {
	return "multi"
}

// Send implements Notifier.
func (m *MultiNotifier) Send(ctx context.Context, n models.Notification) error {
	collector := &common.ErrorCollector{}
	for _, ch := range m.channels {
		if err := ch.Send(ctx, n); err != nil {
			m.logger.Error().Err(err).Str("channel", ch.Name()).Str("kind", string(n.Kind)).Msg("Channel delivery failed")
			collector.Add(err)
		}
	}
	return collector.Error()
}
