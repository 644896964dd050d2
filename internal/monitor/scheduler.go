package monitor

import (
	"context"
	"time"
)

// Run sends the optional startup message and then runs cycles separated by
// the check interval until ctx is cancelled or MaxCycles is reached. A failed
// cycle is logged and the next one still runs.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info().
		Int("targets", len(s.targets)).
		Dur("interval", s.cfg.CheckInterval()).
		Int("max_cycles", s.cfg.MaxCycles).
		Str("notify_policy", s.reconciler.Policy().String()).
		Msg("Monitor started")

	if s.cfg.SendStartupMessage {
		s.SendStartupMessage(ctx)
	}

	for s.tracker.ShouldContinue() {
		if _, err := s.RunCycle(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			s.logger.Error().Err(err).Msg("Monitoring cycle failed")
		}

		if !s.tracker.ShouldContinue() {
			break
		}
		if !s.sleep(ctx, s.cfg.CheckInterval()) {
			break
		}
	}

	s.logger.Info().Int("cycles", s.tracker.CompletedCycles()).Msg("Monitor stopped")
	return nil
}

// sleep waits for d and reports false if ctx ended first.
func (s *Service) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
