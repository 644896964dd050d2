package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aleister1102/slotwatch/internal/common"
	"github.com/aleister1102/slotwatch/internal/config"
	"github.com/aleister1102/slotwatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFetcherConfig() config.FetcherConfig {
	cfg := config.NewDefaultFetcherConfig()
	cfg.HTTPTimeoutSeconds = 5
	cfg.RetryDelaySeconds = 0
	return cfg
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><div class="term-item">12.05.2025</div></body></html>`))
	}))
	defer server.Close()

	cfg := testFetcherConfig()
	f := NewHTTPFetcher(cfg, zerolog.Nop())

	page, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Contains(t, string(page.Body), "12.05.2025")
	assert.Equal(t, server.URL, page.URL)
	assert.False(t, page.FetchedAt.IsZero())
	assert.Equal(t, cfg.UserAgent, gotUA)

	// The same URL can be fetched again on the next cycle.
	_, err = f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
}

func TestHTTPFetcher_RejectsTruncatedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>" + strings.Repeat(`<div class="term-item">12.05.2025</div>`, 50) + "</body></html>"))
	}))
	defer server.Close()

	cfg := testFetcherConfig()
	cfg.MaxContentSize = 100
	f := NewHTTPFetcher(cfg, zerolog.Nop())

	page, err := f.Fetch(context.Background(), server.URL)
	assert.Nil(t, page)
	var netErr *common.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Contains(t, netErr.Reason, "max_content_size")

	// A cut page must leave the target unreachable so its snapshot is kept.
	outcome := NewRetryingFetcher(f, RetryPolicy{MaxAttempts: 1}, zerolog.Nop()).Fetch(context.Background(), server.URL)
	assert.False(t, outcome.OK())
	assert.Equal(t, models.AvailabilityUnreachable, outcome.Availability())

	cfg.MaxContentSize = 1 << 20
	page, err = NewHTTPFetcher(cfg, zerolog.Nop()).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, string(page.Body), "</html>")
}

func TestHTTPFetcher_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := NewHTTPFetcher(testFetcherConfig(), zerolog.Nop())
	_, err := f.Fetch(context.Background(), server.URL)

	var httpErr *common.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
}

func TestHTTPFetcher_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	f := NewHTTPFetcher(testFetcherConfig(), zerolog.Nop())
	_, err := f.Fetch(context.Background(), url)

	var netErr *common.NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestHTTPFetcher_InsecureSkipVerify(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	cfg := testFetcherConfig()
	_, err := NewHTTPFetcher(cfg, zerolog.Nop()).Fetch(context.Background(), server.URL)
	assert.Error(t, err, "self-signed certificate must be rejected by default")

	cfg.InsecureSkipVerify = true
	page, err := NewHTTPFetcher(cfg, zerolog.Nop()).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(page.Body))
}

func TestHTTPFetcher_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPFetcher(testFetcherConfig(), zerolog.Nop()).Fetch(ctx, "http://127.0.0.1:1")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNew_SelectsFetcherByMode(t *testing.T) {
	cfg := testFetcherConfig()

	f, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &HTTPFetcher{}, f)

	cfg.Mode = config.FetchModeBrowser
	f, err = New(cfg, zerolog.Nop())
	require.NoError(t, err)
	bf, ok := f.(*BrowserFetcher)
	require.True(t, ok)
	assert.NoError(t, bf.Close(), "closing an unused browser fetcher is a no-op")

	cfg.Mode = " HTTP "
	f, err = New(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &HTTPFetcher{}, f)

	cfg.Mode = "Browser"
	f, err = New(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &BrowserFetcher{}, f)

	cfg.Mode = "carrier-pigeon"
	_, err = New(cfg, zerolog.Nop())
	assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
}
