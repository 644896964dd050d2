package models

import "time"

// DefaultTargetName names the implicit target used when no targets are configured.
const DefaultTargetName = "default"

// Target is a named monitored source. Several targets may share one URL.
type Target struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Snapshot holds the items observed for one target at its last successful check.
// Items are unique and keep first-seen order.
type Snapshot struct {
	Items       []string  `json:"items"`
	LastChecked time.Time `json:"last_checked"`
}

// NewSnapshot builds a snapshot from raw extractor output, collapsing duplicates.
func NewSnapshot(items []string, checkedAt time.Time) *Snapshot {
	return &Snapshot{
		Items:       Dedupe(items),
		LastChecked: checkedAt.UTC(),
	}
}

// MonitorState is the full persisted state: one snapshot per target plus the
// aggregated outage flag of the latest cycle.
type MonitorState struct {
	SiteDown  bool                 `json:"site_down"`
	DownSince *time.Time           `json:"down_since,omitempty"`
	Targets   map[string]*Snapshot `json:"targets"`
}

// NewMonitorState returns the empty state used on first run.
func NewMonitorState() *MonitorState {
	return &MonitorState{
		Targets: make(map[string]*Snapshot),
	}
}

// PriorItems returns the last known items of a target, or nil when the target
// has never been checked successfully.
func (s *MonitorState) PriorItems(target string) []string {
	if s == nil || s.Targets == nil {
		return nil
	}
	snap, ok := s.Targets[target]
	if !ok || snap == nil {
		return nil
	}
	return snap.Items
}

// Clone returns a deep copy so a cycle can mutate state without touching the loaded baseline.
func (s *MonitorState) Clone() *MonitorState {
	out := NewMonitorState()
	if s == nil {
		return out
	}
	out.SiteDown = s.SiteDown
	if s.DownSince != nil {
		since := *s.DownSince
		out.DownSince = &since
	}
	for name, snap := range s.Targets {
		if snap == nil {
			continue
		}
		out.Targets[name] = &Snapshot{
			Items:       append([]string(nil), snap.Items...),
			LastChecked: snap.LastChecked,
		}
	}
	return out
}

// Dedupe removes repeated items by exact text equality, keeping the first occurrence.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	unique := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		unique = append(unique, it)
	}
	return unique
}
