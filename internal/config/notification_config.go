package config

// NotificationConfig defines configuration for notifications.
// A channel without credentials is disabled.
type NotificationConfig struct {
	TelegramBotToken   string `json:"telegram_bot_token,omitempty" yaml:"telegram_bot_token,omitempty" env:"TG_TOKEN"`
	TelegramChatID     string `json:"telegram_chat_id,omitempty" yaml:"telegram_chat_id,omitempty" env:"TG_CHAT_ID"`
	TelegramParseMode  string `json:"telegram_parse_mode,omitempty" yaml:"telegram_parse_mode,omitempty"`
	TelegramAPIBaseURL string `json:"telegram_api_base_url,omitempty" yaml:"telegram_api_base_url,omitempty" validate:"omitempty,url"`
	DiscordWebhookURL  string `json:"discord_webhook_url,omitempty" yaml:"discord_webhook_url,omitempty" env:"DISCORD_WEBHOOK_URL" validate:"omitempty,url"`
	TimeoutSeconds     int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		TelegramParseMode:  DefaultTelegramParseMode,
		TelegramAPIBaseURL: DefaultTelegramAPIBaseURL,
		TimeoutSeconds:     DefaultNotificationTimeoutSecs,
	}
}

// TelegramEnabled reports whether both Telegram credentials are present.
func (c NotificationConfig) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}

// DiscordEnabled reports whether a Discord webhook is configured.
func (c NotificationConfig) DiscordEnabled() bool {
	return c.DiscordWebhookURL != ""
}
