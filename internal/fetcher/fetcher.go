// Package fetcher retrieves target pages over plain HTTP or through a headless
// browser, with a bounded retry policy on top.
package fetcher

import (
	"context"
	"strings"
	"time"

	"github.com/aleister1102/slotwatch/internal/common"
	"github.com/aleister1102/slotwatch/internal/config"
	"github.com/rs/zerolog"
)

// Page is the raw content retrieved for one URL.
type Page struct {
	URL        string
	FinalURL   string
	StatusCode int
	Body       []byte
	FetchedAt  time.Time
}

// Fetcher retrieves the content of a URL in a single attempt.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// Closer is implemented by fetchers that hold external resources.
type Closer interface {
	Close() error
}

// New creates the fetcher selected by cfg.Mode, compared case-insensitively.
func New(cfg config.FetcherConfig, logger zerolog.Logger) (Fetcher, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Mode)) {
	case "", config.FetchModeHTTP:
		return NewHTTPFetcher(cfg, logger), nil
	case config.FetchModeBrowser:
		return NewBrowserFetcher(cfg, logger), nil
	default:
		return nil, common.NewValidationError("fetcher_config.mode", cfg.Mode, "unsupported fetch mode")
	}
}
