// Package monitor drives the check cycles: fetch every target, reconcile its
// items against the stored snapshot, notify and persist.
package monitor

import (
	"context"
	"time"

	"github.com/aleister1102/slotwatch/internal/common"
	"github.com/aleister1102/slotwatch/internal/config"
	"github.com/aleister1102/slotwatch/internal/datastore"
	"github.com/aleister1102/slotwatch/internal/differ"
	"github.com/aleister1102/slotwatch/internal/extractor"
	"github.com/aleister1102/slotwatch/internal/fetcher"
	"github.com/aleister1102/slotwatch/internal/models"
	"github.com/aleister1102/slotwatch/internal/notifier"
	"github.com/rs/zerolog"
)

// PageFetcher retrieves a URL under a retry policy and reports a tagged outcome.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) fetcher.Outcome
}

// ServiceDeps are the collaborators of a Service.
type ServiceDeps struct {
	Store     datastore.StateStore
	Fetcher   PageFetcher
	Extractor extractor.ItemExtractor
	Notifier  notifier.Notifier
	// Now defaults to time.Now.
	Now func() time.Time
}

// Service runs monitoring cycles over a fixed set of targets.
type Service struct {
	cfg        config.MonitorConfig
	targets    []models.Target
	store      datastore.StateStore
	fetcher    PageFetcher
	extractor  extractor.ItemExtractor
	notifier   notifier.Notifier
	reconciler *differ.Reconciler
	tracker    *CycleTracker
	logger     zerolog.Logger
	now        func() time.Time
}

// NewService creates a new Service.
func NewService(cfg config.MonitorConfig, deps ServiceDeps, logger zerolog.Logger) (*Service, error) {
	if deps.Store == nil || deps.Fetcher == nil || deps.Extractor == nil || deps.Notifier == nil {
		return nil, common.NewValidationError("service_deps", nil, "store, fetcher, extractor and notifier are required")
	}

	targets := cfg.ResolveTargets()
	if len(targets) == 0 {
		return nil, common.NewValidationError("monitor_config.targets", nil, "no targets configured")
	}

	policy, err := differ.ParseNotifyPolicy(cfg.NotifyPolicy)
	if err != nil {
		return nil, err
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	tracker := NewCycleTracker(cfg.MaxCycles)
	tracker.now = now

	return &Service{
		cfg:        cfg,
		targets:    targets,
		store:      deps.Store,
		fetcher:    deps.Fetcher,
		extractor:  deps.Extractor,
		notifier:   deps.Notifier,
		reconciler: differ.NewReconciler(policy),
		tracker:    tracker,
		logger:     logger.With().Str("component", "MonitorService").Logger(),
		now:        now,
	}, nil
}

// Targets returns the resolved targets in configuration order.
func (s *Service) Targets() []models.Target {
	return append([]models.Target(nil), s.targets...)
}

// Tracker exposes the cycle tracker.
func (s *Service) Tracker() *CycleTracker {
	return s.tracker
}

// SendStartupMessage sends the configured test message. Failures are logged.
func (s *Service) SendStartupMessage(ctx context.Context) {
	text := s.cfg.StartupMessage
	if text == "" {
		text = config.DefaultMonitorStartupMessage
	}
	s.notify(ctx, models.Notification{
		Kind:       models.NotificationStartup,
		OccurredAt: s.now().UTC(),
		Text:       text,
	})
}

// notify delivers n and reports whether it succeeded. Delivery failures never
// propagate: they are logged and the cycle continues.
func (s *Service) notify(ctx context.Context, n models.Notification) bool {
	if err := s.notifier.Send(ctx, n); err != nil {
		s.logger.Error().Err(err).Str("kind", string(n.Kind)).Str("target", n.Target).Msg("Failed to send notification")
		return false
	}
	return true
}
