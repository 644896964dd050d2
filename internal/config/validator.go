package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aleister1102/slotwatch/internal/common"
	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return common.NewValidationError("config", nil, "configuration is nil")
	}

	validate := newValidator()
	if err := validate.Struct(cfg); err != nil {
		return formatValidationErrors(err)
	}

	return validateTargets(cfg.MonitorConfig)
}

func newValidator() *validator.Validate {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("fetchmode", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", FetchModeHTTP, FetchModeBrowser:
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("notifypolicy", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", NotifyPolicyAddedOrRemoved, NotifyPolicyAddedOnly:
			return true
		default:
			return false
		}
	})

	return validate
}

// validateTargets checks the rules struct tags cannot express: every target
// resolves to a URL and names are unique.
func validateTargets(cfg MonitorConfig) error {
	targets := cfg.ResolveTargets()
	if len(targets) == 0 {
		return common.NewValidationError("target_url", cfg.TargetURL, "no targets configured; set TARGET_URL or monitor_config.targets")
	}

	seen := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		if target.URL == "" {
			return common.NewValidationError("targets.url", target.Name, "target has no URL and TARGET_URL is not set")
		}
		if _, dup := seen[target.Name]; dup {
			return common.NewValidationError("targets.name", target.Name, "duplicate target name")
		}
		seen[target.Name] = struct{}{}
	}
	return nil
}

func formatValidationErrors(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("configuration validation error: %w", err)
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", e.Namespace(), e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			msg += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		messages = append(messages, msg)
	}
	return fmt.Errorf("%w:\n  %s", common.ErrInvalidConfiguration, strings.Join(messages, "\n  "))
}
