package models

import "time"

// NotificationKind identifies what a notification reports.
type NotificationKind string

const (
	NotificationStartup   NotificationKind = "startup"
	NotificationChanges   NotificationKind = "changes"
	NotificationOutage    NotificationKind = "outage"
	NotificationRecovered NotificationKind = "recovered"
)

// Notification is the channel-independent content of one operator message.
// Each notifier renders it in its own format.
type Notification struct {
	Kind       NotificationKind
	OccurredAt time.Time

	// Startup
	Text string

	// Changes
	Target  string
	URL     string
	Added   []string
	Removed []string

	// Outage / recovery
	UnreachableTargets []string
	DownFor            time.Duration
}

// TelegramMessage is the form body of a Telegram Bot API sendMessage call.
type TelegramMessage struct {
	ChatID    string
	Text      string
	ParseMode string
}

// TelegramResponse is the envelope returned by the Telegram Bot API.
type TelegramResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// DiscordMessagePayload represents the JSON payload sent to a Discord webhook.
type DiscordMessagePayload struct {
	Content   string         `json:"content,omitempty"`    // Message content (text)
	Username  string         `json:"username,omitempty"`   // Override the default webhook username
	AvatarURL string         `json:"avatar_url,omitempty"` // Override the default webhook avatar
	Embeds    []DiscordEmbed `json:"embeds,omitempty"`     // Array of embed objects
}

// DiscordEmbed represents a Discord embed object.
type DiscordEmbed struct {
	Title       string              `json:"title,omitempty"`       // Title of embed
	Description string              `json:"description,omitempty"` // Description of embed
	URL         string              `json:"url,omitempty"`         // URL of embed
	Timestamp   string              `json:"timestamp,omitempty"`   // ISO8601 timestamp
	Color       int                 `json:"color,omitempty"`       // Color code of the embed
	Footer      *DiscordEmbedFooter `json:"footer,omitempty"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"` // Array of embed field objects
}

// DiscordEmbedFooter represents the footer of an embed.
type DiscordEmbedFooter struct {
	Text    string `json:"text"`               // Footer text
	IconURL string `json:"icon_url,omitempty"` // URL of footer icon
}

// DiscordEmbedField represents a field in an embed.
type DiscordEmbedField struct {
	Name   string `json:"name"`             // Name of the field
	Value  string `json:"value"`            // Value of the field
	Inline bool   `json:"inline,omitempty"` // Whether or not this field should display inline
}
