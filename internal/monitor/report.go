package monitor

import (
	"time"

	"github.com/aleister1102/slotwatch/internal/models"
)

// TargetResult is what happened to one target in a cycle.
type TargetResult struct {
	Target       models.Target
	Availability models.Availability
	Attempts     int
	Items        int
	Added        []string
	Removed      []string
	Notified     bool
	Err          error
}

// CycleReport summarizes one cycle.
type CycleReport struct {
	CycleID              string
	StartedAt            time.Time
	FinishedAt           time.Time
	Targets              []TargetResult
	ChangedTargets       []string
	SiteDown             bool
	OutageEvent          models.OutageEvent
	Saved                bool
	NotificationsSent    int
	NotificationFailures int
}

// ReachableCount returns how many targets were retrieved.
func (r *CycleReport) ReachableCount() int {
	n := 0
	for _, t := range r.Targets {
		if t.Availability == models.AvailabilityReachable {
			n++
		}
	}
	return n
}

// ChangedCount returns how many targets had added or removed items.
func (r *CycleReport) ChangedCount() int {
	n := 0
	for _, t := range r.Targets {
		if len(t.Added) > 0 || len(t.Removed) > 0 {
			n++
		}
	}
	return n
}

// Duration returns the cycle wall time.
func (r *CycleReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
