package monitor

import (
	"context"
	"sync"

	"github.com/aleister1102/slotwatch/internal/common"
	"github.com/aleister1102/slotwatch/internal/differ"
	"github.com/aleister1102/slotwatch/internal/fetcher"
	"github.com/aleister1102/slotwatch/internal/models"
	"github.com/remeh/sizedwaitgroup"
)

// RunCycle performs one pass over all targets. A state load or save failure
// halts the cycle and is returned; per-target failures are isolated and only
// feed the site_down flag.
func (s *Service) RunCycle(ctx context.Context) (*CycleReport, error) {
	cycleID := s.tracker.StartCycle()
	defer s.tracker.EndCycle()

	report := &CycleReport{CycleID: cycleID, StartedAt: s.now().UTC()}
	logger := s.logger.With().Str("cycle_id", cycleID).Logger()
	logger.Info().Int("targets", len(s.targets)).Msg("Monitoring cycle started")

	prior, err := s.store.Load(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load state, cycle halted")
		report.FinishedAt = s.now().UTC()
		return report, common.WrapError(err, "load state")
	}

	outcomes := s.fetchAll(ctx)
	if err := ctx.Err(); err != nil {
		logger.Warn().Err(err).Msg("Cycle interrupted during fetch, state left untouched")
		report.FinishedAt = s.now().UTC()
		return report, err
	}

	next := prior.Clone()
	availabilities := make(map[string]models.Availability, len(s.targets))
	var unreachable []string

	for _, target := range s.targets {
		result := s.processTarget(ctx, target, outcomes[target.URL], prior, next, report)
		availabilities[target.Name] = result.Availability
		if result.Availability == models.AvailabilityUnreachable {
			unreachable = append(unreachable, target.Name)
		}
		report.Targets = append(report.Targets, result)
	}

	s.applyOutage(ctx, prior, next, availabilities, unreachable, report)

	if report.ReachableCount() == 0 && next.SiteDown == prior.SiteDown {
		logger.Warn().Bool("site_down", next.SiteDown).Msg("No target retrieved and outage state unchanged, skipping state save")
	} else {
		// Shutdown must not leave a cycle half persisted.
		if err := s.store.Save(context.WithoutCancel(ctx), next); err != nil {
			logger.Error().Err(err).Msg("Failed to save state, cycle halted")
			report.FinishedAt = s.now().UTC()
			return report, common.WrapError(err, "save state")
		}
		report.Saved = true
	}

	report.FinishedAt = s.now().UTC()
	report.ChangedTargets = s.tracker.GetChangedTargets()
	logger.Info().
		Int("reachable", report.ReachableCount()).
		Int("changed", report.ChangedCount()).
		Strs("changed_targets", report.ChangedTargets).
		Bool("site_down", report.SiteDown).
		Str("outage_event", report.OutageEvent.String()).
		Bool("saved", report.Saved).
		Int("notifications_sent", report.NotificationsSent).
		Int("notification_failures", report.NotificationFailures).
		Dur("duration", report.Duration()).
		Msg("Monitoring cycle finished")
	return report, nil
}

// fetchAll retrieves every distinct target URL once, at most
// MaxConcurrentChecks at a time. Each goroutine writes only its own entry.
func (s *Service) fetchAll(ctx context.Context) map[string]fetcher.Outcome {
	urls := make([]string, 0, len(s.targets))
	seen := make(map[string]struct{}, len(s.targets))
	for _, t := range s.targets {
		if _, ok := seen[t.URL]; ok {
			continue
		}
		seen[t.URL] = struct{}{}
		urls = append(urls, t.URL)
	}

	limit := s.cfg.MaxConcurrentChecks
	if limit <= 0 {
		limit = 1
	}

	var mu sync.Mutex
	outcomes := make(map[string]fetcher.Outcome, len(urls))
	swg := sizedwaitgroup.New(limit)
	for _, url := range urls {
		swg.Add()
		go func(url string) {
			defer swg.Done()
			outcome := s.fetcher.Fetch(ctx, url)
			mu.Lock()
			outcomes[url] = outcome
			mu.Unlock()
		}(url)
	}
	swg.Wait()
	return outcomes
}

// processTarget reconciles one target and updates next in place. An
// unreachable target keeps its previous snapshot.
func (s *Service) processTarget(ctx context.Context, target models.Target, outcome fetcher.Outcome, prior, next *models.MonitorState, report *CycleReport) TargetResult {
	logger := s.logger.With().Str("cycle_id", report.CycleID).Str("target", target.Name).Str("url", target.URL).Logger()
	result := TargetResult{Target: target, Attempts: outcome.Attempts}

	if !outcome.OK() {
		result.Availability = models.AvailabilityUnreachable
		if outcome.Err != nil {
			result.Err = outcome.Err
		}
		logger.Error().Err(result.Err).Int("attempts", outcome.Attempts).Msg("Target unreachable, keeping previous snapshot")
		return result
	}

	items, err := s.extractor.Extract(outcome.Page.Body)
	if err != nil {
		result.Availability = models.AvailabilityUnreachable
		result.Err = err
		logger.Error().Err(err).Msg("Failed to parse page, keeping previous snapshot")
		return result
	}
	result.Availability = models.AvailabilityReachable

	rec := s.reconciler.Reconcile(prior.PriorItems(target.Name), items)
	next.Targets[target.Name] = models.NewSnapshot(rec.Next, s.now())
	result.Items = len(rec.Next)
	result.Added = rec.Diff.Added
	result.Removed = rec.Diff.Removed

	logger.Info().
		Int("items", len(rec.Next)).
		Int("added", len(rec.Diff.Added)).
		Int("removed", len(rec.Diff.Removed)).
		Bool("notify", rec.ShouldNotify).
		Msg("Target reconciled")

	if rec.Diff.HasChanges() {
		s.tracker.AddChangedTarget(target.Name)
	}
	if rec.ShouldNotify {
		result.Notified = s.notifyReport(ctx, report, models.Notification{
			Kind:       models.NotificationChanges,
			OccurredAt: s.now().UTC(),
			Target:     target.Name,
			URL:        target.URL,
			Added:      rec.Diff.Added,
			Removed:    rec.Diff.Removed,
		})
	}
	return result
}

// applyOutage sets site_down on next and notifies on its edges only.
func (s *Service) applyOutage(ctx context.Context, prior, next *models.MonitorState, availabilities map[string]models.Availability, unreachable []string, report *CycleReport) {
	now := s.now().UTC()
	siteDown, event := differ.EvaluateOutage(prior.SiteDown, availabilities)
	next.SiteDown = siteDown
	report.SiteDown = siteDown
	report.OutageEvent = event

	switch event {
	case models.OutageEventDown:
		next.DownSince = &now
		s.logger.Warn().Strs("unreachable", unreachable).Msg("Site went down")
		s.notifyReport(ctx, report, models.Notification{
			Kind:               models.NotificationOutage,
			OccurredAt:         now,
			UnreachableTargets: unreachable,
		})

	case models.OutageEventRecovered:
		n := models.Notification{Kind: models.NotificationRecovered, OccurredAt: now}
		if prior.DownSince != nil {
			n.DownFor = now.Sub(*prior.DownSince)
		}
		next.DownSince = nil
		s.logger.Info().Dur("down_for", n.DownFor).Msg("Site recovered")
		s.notifyReport(ctx, report, n)

	default:
		if !siteDown {
			next.DownSince = nil
		}
	}
}

func (s *Service) notifyReport(ctx context.Context, report *CycleReport, n models.Notification) bool {
	if s.notify(ctx, n) {
		report.NotificationsSent++
		return true
	}
	report.NotificationFailures++
	return false
}
