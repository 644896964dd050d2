package notifier

// Discord formatting constants
const (
	DefaultEmbedColor   = 0x2B2D31 // Discord dark theme color
	SuccessEmbedColor   = 0x5CB85C // Bootstrap success green
	ErrorEmbedColor     = 0xD9534F // Bootstrap danger red
	MonitorEmbedColor   = 0x6F42C1 // Purple for monitoring
	InterruptEmbedColor = 0xFD7E14 // Orange for removals
)

// Channel limits
const (
	TelegramMaxMessageLength  = 4096
	DiscordMaxDescriptionLen  = 4096
	DiscordMaxFieldValueLen   = 1024
	MaxItemTextLength         = 500
	truncationMarker          = "…"
	truncatedListMarkerFormat = "… and %d more"
)

// Channel names used in logs and NotificationError.
const (
	ChannelTelegram = "telegram"
	ChannelDiscord  = "discord"
)
