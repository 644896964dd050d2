package fetcher

import (
	"context"
	"sync"
	"time"

	"github.com/aleister1102/slotwatch/internal/common"
	"github.com/aleister1102/slotwatch/internal/config"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
)

// BrowserFetcher renders pages in headless Chrome, for portals that build
// their content with JavaScript. The browser is launched on first use and
// reused until Close.
type BrowserFetcher struct {
	cfg    config.FetcherConfig
	logger zerolog.Logger

	mutex    sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewBrowserFetcher creates a new BrowserFetcher. No browser is started yet.
func NewBrowserFetcher(cfg config.FetcherConfig, logger zerolog.Logger) *BrowserFetcher {
	return &BrowserFetcher{
		cfg:    cfg,
		logger: logger.With().Str("component", "BrowserFetcher").Logger(),
	}
}

func (bf *BrowserFetcher) ensureBrowser() (*rod.Browser, error) {
	bf.mutex.Lock()
	defer bf.mutex.Unlock()

	if bf.browser != nil {
		return bf.browser, nil
	}

	l := launcher.New().Headless(true)
	if bf.cfg.Browser.ChromePath != "" {
		l = l.Bin(bf.cfg.Browser.ChromePath)
	}
	l = l.
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-first-run").
		Set("disable-default-apps").
		Set("disable-sync")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, common.WrapError(err, "failed to launch browser")
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, common.WrapError(err, "failed to connect browser")
	}

	bf.launcher = l
	bf.browser = browser
	bf.logger.Info().Str("chrome_path", bf.cfg.Browser.ChromePath).Msg("Headless browser started")
	return browser, nil
}

// Fetch loads url, waits for the load event plus the configured settle time
// and returns the rendered HTML.
func (bf *BrowserFetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := bf.ensureBrowser()
	if err != nil {
		return nil, common.NewNetworkError(url, "browser unavailable", err)
	}

	timeout := time.Duration(bf.cfg.Browser.PageLoadTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultBrowserPageLoadTimeoutSec) * time.Second
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	page, err := browser.Context(timeoutCtx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, common.NewNetworkError(url, "failed to create page", err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			bf.logger.Debug().Err(err).Str("url", url).Msg("Failed to close page")
		}
	}()

	if bf.cfg.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: bf.cfg.UserAgent}); err != nil {
			bf.logger.Warn().Err(err).Msg("Failed to set user agent")
		}
	}

	if err := page.Navigate(url); err != nil {
		return nil, common.NewNetworkError(url, "navigation failed", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, common.NewNetworkError(url, "page load failed", err)
	}

	if wait := time.Duration(bf.cfg.Browser.WaitAfterLoadMs) * time.Millisecond; wait > 0 {
		select {
		case <-timeoutCtx.Done():
			return nil, common.NewNetworkError(url, "page load timed out", timeoutCtx.Err())
		case <-time.After(wait):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return nil, common.NewNetworkError(url, "failed to read page HTML", err)
	}

	finalURL := url
	if info, err := page.Info(); err == nil && info != nil {
		finalURL = info.URL
	}

	bf.logger.Debug().Str("url", url).Str("final_url", finalURL).Int("size", len(html)).Msg("Page rendered")
	return &Page{
		URL:       url,
		FinalURL:  finalURL,
		Body:      []byte(html),
		FetchedAt: time.Now().UTC(),
	}, nil
}

// Close shuts the browser down. It is safe to call when no browser was started.
func (bf *BrowserFetcher) Close() error {
	bf.mutex.Lock()
	defer bf.mutex.Unlock()

	var err error
	if bf.browser != nil {
		err = bf.browser.Close()
		bf.browser = nil
	}
	if bf.launcher != nil {
		bf.launcher.Cleanup()
		bf.launcher = nil
	}
	if err != nil {
		return common.WrapError(err, "failed to close browser")
	}
	bf.logger.Debug().Msg("Headless browser stopped")
	return nil
}
