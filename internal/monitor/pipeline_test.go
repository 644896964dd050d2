package monitor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aleister1102/slotwatch/internal/config"
	"github.com/aleister1102/slotwatch/internal/datastore"
	"github.com/aleister1102/slotwatch/internal/extractor"
	"github.com/aleister1102/slotwatch/internal/fetcher"
	"github.com/aleister1102/slotwatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slotPage serves a term list that tests can swap or break between cycles.
type slotPage struct {
	mu     sync.Mutex
	status int
	terms  []string
}

func (p *slotPage) set(status int, terms ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = status
	p.terms = terms
}

func (p *slotPage) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status != http.StatusOK {
		w.WriteHeader(p.status)
		return
	}
	var b strings.Builder
	b.WriteString(`<html><body><div class="some-class">`)
	for _, term := range p.terms {
		fmt.Fprintf(&b, `<div class="term-item"> %s </div>`, term)
	}
	b.WriteString(`</div></body></html>`)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(b.String()))
}

func TestPipeline_EndToEnd(t *testing.T) {
	page := &slotPage{}
	page.set(http.StatusOK, "12.05.2025 09:00")
	server := httptest.NewServer(page)
	defer server.Close()

	logger := zerolog.Nop()

	storageCfg := config.StorageConfig{StateFile: filepath.Join(t.TempDir(), "state.json")}
	store, err := datastore.NewFileStateStore(&storageCfg, logger)
	require.NoError(t, err)

	fetchCfg := config.NewDefaultFetcherConfig()
	fetchCfg.HTTPTimeoutSeconds = 5
	fetchCfg.MaxAttempts = 2
	fetchCfg.RetryDelaySeconds = 0
	pageFetcher := fetcher.NewRetryingFetcher(fetcher.NewHTTPFetcher(fetchCfg, logger), fetcher.RetryPolicyFromConfig(fetchCfg), logger)

	items, err := extractor.New(config.ExtractorConfig{ItemSelector: ".term-item"}, logger)
	require.NoError(t, err)

	monitorCfg := config.NewDefaultMonitorConfig()
	monitorCfg.TargetURL = server.URL
	monitorCfg.SendStartupMessage = false

	notifier := &recordingNotifier{}
	clock := &testClock{now: time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC)}
	svc, err := NewService(monitorCfg, ServiceDeps{
		Store:     store,
		Fetcher:   pageFetcher,
		Extractor: items,
		Notifier:  notifier,
		Now:       clock.Now,
	}, logger)
	require.NoError(t, err)

	ctx := context.Background()

	// First run reports everything as new.
	_, err = svc.RunCycle(ctx)
	require.NoError(t, err)
	changes := notifier.ofKind(models.NotificationChanges)
	require.Len(t, changes, 1)
	assert.Equal(t, []string{"12.05.2025 09:00"}, changes[0].Added)

	// A new term appears and the old one goes away.
	clock.Advance(10 * time.Minute)
	page.set(http.StatusOK, "13.05.2025 10:30")
	_, err = svc.RunCycle(ctx)
	require.NoError(t, err)
	changes = notifier.ofKind(models.NotificationChanges)
	require.Len(t, changes, 2)
	assert.Equal(t, []string{"13.05.2025 10:30"}, changes[1].Added)
	assert.Equal(t, []string{"12.05.2025 09:00"}, changes[1].Removed)

	// The portal starts failing: one outage message, snapshot kept.
	clock.Advance(10 * time.Minute)
	page.set(http.StatusServiceUnavailable)
	report, err := svc.RunCycle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Targets[0].Attempts)
	assert.Len(t, notifier.ofKind(models.NotificationOutage), 1)

	state, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, state.SiteDown)
	assert.Equal(t, []string{"13.05.2025 10:30"}, state.PriorItems(models.DefaultTargetName))

	// Back up with the same term: recovery only, no change message.
	clock.Advance(30 * time.Minute)
	page.set(http.StatusOK, "13.05.2025 10:30")
	_, err = svc.RunCycle(ctx)
	require.NoError(t, err)

	recovered := notifier.ofKind(models.NotificationRecovered)
	require.Len(t, recovered, 1)
	assert.Equal(t, 30*time.Minute, recovered[0].DownFor)
	assert.Len(t, notifier.ofKind(models.NotificationChanges), 2)

	state, err = store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, state.SiteDown)
	assert.Nil(t, state.DownSince)
}
