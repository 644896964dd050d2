package config

const (
	// Monitor Defaults
	DefaultMonitorCheckIntervalSeconds = 3600
	DefaultMonitorMaxConcurrentChecks  = 1
	DefaultMonitorNotifyPolicy         = NotifyPolicyAddedOrRemoved
	DefaultMonitorStartupMessage       = "✅ Test: the bot is connected and running!"

	// Fetcher Defaults
	// Plain HTTP needs no Chrome install; set fetch mode to browser for
	// JavaScript-rendered portals.
	DefaultFetcherMode               = FetchModeHTTP
	DefaultFetcherUserAgent          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultFetcherHTTPTimeoutSeconds = 30
	DefaultFetcherMaxAttempts        = 3
	DefaultFetcherRetryDelaySeconds  = 10
	DefaultFetcherMaxContentSize     = 10 * 1024 * 1024
	DefaultBrowserPageLoadTimeoutSec = 60
	DefaultBrowserWaitAfterLoadMs    = 2000

	// Extractor Defaults
	DefaultExtractorItemSelector = "div.some-class .term-item"

	// Notification Defaults
	DefaultTelegramAPIBaseURL        = "https://api.telegram.org"
	DefaultTelegramParseMode         = "HTML"
	DefaultNotificationTimeoutSecs   = 10
	DefaultNotificationDiscordAuthor = "slotwatch"

	// Storage Defaults
	DefaultStorageStateFile = "state.json"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)

// DefaultExtractorKeywords are matched case-insensitively by the keyword fallback.
var DefaultExtractorKeywords = []string{"term", "dátum", "lehot"}

const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"

	NotifyPolicyAddedOrRemoved = "added_or_removed"
	NotifyPolicyAddedOnly      = "added_only"
)
