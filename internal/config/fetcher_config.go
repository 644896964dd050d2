package config

import "time"

// FetcherConfig defines how target pages are retrieved
type FetcherConfig struct {
	// Mode is "http" (static HTML) or "browser" (headless Chrome). Portals
	// that render their term list with JavaScript need "browser".
	Mode               string        `json:"mode,omitempty" yaml:"mode,omitempty" env:"FETCH_MODE" validate:"omitempty,fetchmode"`
	UserAgent          string        `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	HTTPTimeoutSeconds int           `json:"http_timeout_seconds,omitempty" yaml:"http_timeout_seconds,omitempty" validate:"omitempty,min=1"`
	MaxAttempts        int           `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty" env:"MAX_FETCH_ATTEMPTS" validate:"omitempty,min=1"`
	RetryDelaySeconds  int           `json:"retry_delay_seconds,omitempty" yaml:"retry_delay_seconds,omitempty" env:"RETRY_DELAY_SEC" validate:"min=0"`
	MaxContentSize     int           `json:"max_content_size,omitempty" yaml:"max_content_size,omitempty" validate:"omitempty,min=1"`
	InsecureSkipVerify bool          `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	Browser            BrowserConfig `json:"browser,omitempty" yaml:"browser,omitempty"`
}

// BrowserConfig configures the headless Chrome used in browser mode
type BrowserConfig struct {
	ChromePath          string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty" env:"CHROME_PATH"`
	PageLoadTimeoutSecs int    `json:"page_load_timeout_secs,omitempty" yaml:"page_load_timeout_secs,omitempty" validate:"omitempty,min=1"`
	WaitAfterLoadMs     int    `json:"wait_after_load_ms,omitempty" yaml:"wait_after_load_ms,omitempty" validate:"min=0"`
}

// NewDefaultFetcherConfig creates default fetcher configuration
func NewDefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		Mode:               DefaultFetcherMode,
		UserAgent:          DefaultFetcherUserAgent,
		HTTPTimeoutSeconds: DefaultFetcherHTTPTimeoutSeconds,
		MaxAttempts:        DefaultFetcherMaxAttempts,
		RetryDelaySeconds:  DefaultFetcherRetryDelaySeconds,
		MaxContentSize:     DefaultFetcherMaxContentSize,
		Browser: BrowserConfig{
			PageLoadTimeoutSecs: DefaultBrowserPageLoadTimeoutSec,
			WaitAfterLoadMs:     DefaultBrowserWaitAfterLoadMs,
		},
	}
}

// HTTPTimeout returns the per-request timeout.
func (c FetcherConfig) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// RetryDelay returns the fixed delay between fetch attempts.
func (c FetcherConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}
