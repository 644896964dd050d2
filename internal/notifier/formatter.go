package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aleister1102/slotwatch/internal/models"
	"github.com/hako/durafmt"
)

// formatTimestamp renders times the same way in every channel.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339)
}

// FormatDuration renders an outage length like "2 hours 5 minutes".
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return "less than a second"
	}
	return durafmt.Parse(d.Truncate(time.Second)).LimitFirstN(2).String()
}

// truncateRunes cuts s to at most max runes, marking the cut.
func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	marker := []rune(truncationMarker)
	if max <= len(marker) {
		return string(runes[:max])
	}
	return string(runes[:max-len(marker)]) + truncationMarker
}

// joinLinesWithin joins lines with "\n", dropping trailing lines that would
// exceed max runes. Whole lines are dropped so escaped entities stay intact.
func joinLinesWithin(lines []string, max int) string {
	total := 0
	for i, line := range lines {
		n := utf8.RuneCountInString(line)
		if i > 0 {
			n++
		}
		if total+n > max {
			if i == 0 {
				return truncateRunes(line, max)
			}
			omitted := len(lines) - i
			suffix := fmt.Sprintf(truncatedListMarkerFormat, omitted)
			kept := lines[:i]
			for len(kept) > 0 && total+1+utf8.RuneCountInString(suffix) > max {
				total -= utf8.RuneCountInString(kept[len(kept)-1]) + 1
				kept = kept[:len(kept)-1]
				omitted++
				suffix = fmt.Sprintf(truncatedListMarkerFormat, omitted)
			}
			return strings.Join(append(append([]string{}, kept...), suffix), "\n")
		}
		total += n
	}
	return strings.Join(lines, "\n")
}

// FormatTelegramMessage renders n as Telegram HTML. Item text is escaped and
// the result never exceeds TelegramMaxMessageLength runes.
func FormatTelegramMessage(n models.Notification) string {
	var lines []string
	esc := html.EscapeString

	switch n.Kind {
	case models.NotificationStartup:
		lines = append(lines, esc(n.Text))

	case models.NotificationChanges:
		header := fmt.Sprintf("Changes detected on %s at %s (UTC)", esc(n.URL), formatTimestamp(n.OccurredAt))
		if n.Target != "" && n.Target != models.DefaultTargetName {
			header = fmt.Sprintf("<b>%s</b>: %s", esc(n.Target), header)
		}
		lines = append(lines, header)
		if len(n.Added) > 0 {
			lines = append(lines, "", "New items:")
			for _, item := range n.Added {
				lines = append(lines, "- "+esc(truncateRunes(item, MaxItemTextLength)))
			}
		}
		if len(n.Removed) > 0 {
			lines = append(lines, "", "Removed items:")
			for _, item := range n.Removed {
				lines = append(lines, "- "+esc(truncateRunes(item, MaxItemTextLength)))
			}
		}

	case models.NotificationOutage:
		lines = append(lines, fmt.Sprintf("⚠️ Site unreachable at %s (UTC)", formatTimestamp(n.OccurredAt)))
		if len(n.UnreachableTargets) > 0 {
			lines = append(lines, "", "Unreachable targets:")
			for _, name := range n.UnreachableTargets {
				lines = append(lines, "- "+esc(name))
			}
		}

	case models.NotificationRecovered:
		lines = append(lines, fmt.Sprintf("✅ Site reachable again at %s (UTC)", formatTimestamp(n.OccurredAt)))
		if n.DownFor > 0 {
			lines = append(lines, "Down for "+FormatDuration(n.DownFor))
		}

	default:
		lines = append(lines, esc(n.Text))
	}

	return joinLinesWithin(lines, TelegramMaxMessageLength)
}

// FormatDiscordPayload renders n as a Discord webhook payload.
func FormatDiscordPayload(n models.Notification, username string) models.DiscordMessagePayload {
	builder := NewDiscordEmbedBuilder().
		WithTimestamp(nonZeroTime(n.OccurredAt)).
		WithFooter(username, "")

	switch n.Kind {
	case models.NotificationStartup:
		builder.WithTitle("👁️ Monitoring started").
			WithDescription(n.Text).
			WithColor(MonitorEmbedColor)

	case models.NotificationChanges:
		title := "🔔 Appointment slots changed"
		if n.Target != "" && n.Target != models.DefaultTargetName {
			title += ": " + n.Target
		}
		color := SuccessEmbedColor
		if len(n.Added) == 0 {
			color = InterruptEmbedColor
		}
		builder.WithTitle(title).
			WithURL(n.URL).
			WithDescription(fmt.Sprintf("Changes detected on %s", n.URL)).
			WithColor(color)
		if len(n.Added) > 0 {
			builder.AddField(fmt.Sprintf("New items (%d)", len(n.Added)), bulletList(n.Added, DiscordMaxFieldValueLen), false)
		}
		if len(n.Removed) > 0 {
			builder.AddField(fmt.Sprintf("Removed items (%d)", len(n.Removed)), bulletList(n.Removed, DiscordMaxFieldValueLen), false)
		}

	case models.NotificationOutage:
		builder.WithTitle("⚠️ Site unreachable").
			WithDescription("The monitored site could not be retrieved.").
			WithColor(ErrorEmbedColor)
		if len(n.UnreachableTargets) > 0 {
			builder.AddField("Unreachable targets", bulletList(n.UnreachableTargets, DiscordMaxFieldValueLen), false)
		}

	case models.NotificationRecovered:
		description := "The monitored site is reachable again."
		if n.DownFor > 0 {
			description += " Down for " + FormatDuration(n.DownFor) + "."
		}
		builder.WithTitle("✅ Site recovered").
			WithDescription(description).
			WithColor(SuccessEmbedColor)

	default:
		builder.WithDescription(n.Text).WithColor(DefaultEmbedColor)
	}

	return models.DiscordMessagePayload{
		Username: username,
		Embeds:   []models.DiscordEmbed{builder.Build()},
	}
}

func bulletList(items []string, max int) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "• "+truncateRunes(item, MaxItemTextLength))
	}
	return joinLinesWithin(lines, max)
}

func nonZeroTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
