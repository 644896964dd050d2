package config

import (
	"time"

	"github.com/aleister1102/slotwatch/internal/models"
)

// TargetConfig is one monitored source. An empty URL falls back to MonitorConfig.TargetURL.
type TargetConfig struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`
}

// MonitorConfig defines configuration for the monitoring cycle
type MonitorConfig struct {
	TargetURL            string         `json:"target_url,omitempty" yaml:"target_url,omitempty" env:"TARGET_URL" validate:"omitempty,url"`
	Targets              []TargetConfig `json:"targets,omitempty" yaml:"targets,omitempty" validate:"omitempty,dive"`
	CheckIntervalSeconds int            `json:"check_interval_seconds,omitempty" yaml:"check_interval_seconds,omitempty" env:"CHECK_INTERVAL_SEC" validate:"min=1"`
	MaxConcurrentChecks  int            `json:"max_concurrent_checks,omitempty" yaml:"max_concurrent_checks,omitempty" validate:"omitempty,min=1"`
	MaxCycles            int            `json:"max_cycles,omitempty" yaml:"max_cycles,omitempty" validate:"min=0"`
	NotifyPolicy         string         `json:"notify_policy,omitempty" yaml:"notify_policy,omitempty" env:"NOTIFY_POLICY" validate:"omitempty,notifypolicy"`
	SendStartupMessage   bool           `json:"send_startup_message" yaml:"send_startup_message" env:"SEND_STARTUP_MESSAGE"`
	StartupMessage       string         `json:"startup_message,omitempty" yaml:"startup_message,omitempty"`
}

// NewDefaultMonitorConfig creates default monitor configuration
func NewDefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		Targets:              []TargetConfig{},
		CheckIntervalSeconds: DefaultMonitorCheckIntervalSeconds,
		MaxConcurrentChecks:  DefaultMonitorMaxConcurrentChecks,
		MaxCycles:            0, // 0 means run indefinitely
		NotifyPolicy:         DefaultMonitorNotifyPolicy,
		SendStartupMessage:   true,
		StartupMessage:       DefaultMonitorStartupMessage,
	}
}

// CheckInterval returns the sleep between two cycles.
func (c MonitorConfig) CheckInterval() time.Duration {
	return time.Duration(c.CheckIntervalSeconds) * time.Second
}

// ResolveTargets returns the configured targets with URL fallbacks applied.
// Without explicit targets a single "default" target watches TargetURL.
func (c MonitorConfig) ResolveTargets() []models.Target {
	if len(c.Targets) == 0 {
		if c.TargetURL == "" {
			return nil
		}
		return []models.Target{{Name: models.DefaultTargetName, URL: c.TargetURL}}
	}

	targets := make([]models.Target, 0, len(c.Targets))
	for _, tc := range c.Targets {
		url := tc.URL
		if url == "" {
			url = c.TargetURL
		}
		targets = append(targets, models.Target{Name: tc.Name, URL: url})
	}
	return targets
}
