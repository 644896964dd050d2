package fetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/aleister1102/slotwatch/internal/common"
	"github.com/aleister1102/slotwatch/internal/config"
	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog"
)

// HTTPFetcher retrieves pages with a colly collector. A fresh collector is
// built per call so that each fetch is bound to its own context.
type HTTPFetcher struct {
	cfg       config.FetcherConfig
	transport *http.Transport
	logger    zerolog.Logger
}

// NewHTTPFetcher creates a new HTTPFetcher.
func NewHTTPFetcher(cfg config.FetcherConfig, logger zerolog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		cfg: cfg,
		transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: cfg.InsecureSkipVerify,
			},
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
		logger: logger.With().Str("component", "HTTPFetcher").Logger(),
	}
}

func (f *HTTPFetcher) newCollector(ctx context.Context) *colly.Collector {
	options := []colly.CollectorOption{
		colly.StdlibContext(ctx),
		colly.AllowURLRevisit(),
	}
	if f.cfg.UserAgent != "" {
		options = append(options, colly.UserAgent(f.cfg.UserAgent))
	}
	if f.cfg.MaxContentSize > 0 {
		options = append(options, colly.MaxBodySize(f.cfg.MaxContentSize))
	}

	c := colly.NewCollector(options...)
	if timeout := f.cfg.HTTPTimeout(); timeout > 0 {
		c.SetRequestTimeout(timeout)
	}
	c.WithTransport(f.transport)
	return c
}

// Fetch performs one GET request. Non-2xx responses are returned as
// *common.HTTPError, transport failures as *common.NetworkError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var page *Page
	var statusCode int
	var truncated bool

	c := f.newCollector(ctx)
	c.OnResponse(func(r *colly.Response) {
		// colly cuts the body at MaxBodySize without reporting it.
		if f.cfg.MaxContentSize > 0 && len(r.Body) >= f.cfg.MaxContentSize {
			truncated = true
			return
		}
		page = &Page{
			URL:        url,
			FinalURL:   r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Body:       r.Body,
			FetchedAt:  time.Now().UTC(),
		}
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			statusCode = r.StatusCode
		}
	})

	err := c.Visit(url)
	if err != nil {
		if statusCode > 0 {
			return nil, common.NewHTTPErrorWithURL(statusCode, http.StatusText(statusCode), url)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, common.NewNetworkError(url, "request failed", err)
	}
	if truncated {
		return nil, common.NewNetworkError(url, fmt.Sprintf("response exceeds max_content_size (%d bytes)", f.cfg.MaxContentSize), nil)
	}
	if page == nil {
		return nil, common.NewNetworkError(url, "no response received", nil)
	}

	f.logger.Debug().Str("url", url).Int("status_code", page.StatusCode).Int("size", len(page.Body)).Msg("Page fetched")
	return page, nil
}
