package logger

import (
	"io"
	"strings"

	"github.com/aleister1102/slotwatch/internal/config"
	"github.com/rs/zerolog"
)

// LoggerConfig is the resolved logger setup.
type LoggerConfig struct {
	Level         zerolog.Level
	Format        LogFormat
	EnableConsole bool
	EnableFile    bool
	FilePath      string
	MaxSizeMB     int
	MaxBackups    int

	// ConsoleOutput overrides os.Stderr for the console writer.
	ConsoleOutput io.Writer
}

// LogFormat selects how entries are rendered.
type LogFormat int

const (
	FormatJSON LogFormat = iota
	FormatConsole
	FormatText
)

func (lf LogFormat) String() string {
	switch lf {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	default:
		return "console"
	}
}

func parseFormat(value string) LogFormat {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return FormatConsole
	}
}

// parseLevel falls back to info for empty or unknown levels.
func parseLevel(value string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(value)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// DefaultLoggerConfig is console output at info level.
func DefaultLoggerConfig() LoggerConfig {
	return FromLogConfig(config.NewDefaultLogConfig())
}

// FromLogConfig resolves the application log section, filling rotation
// defaults for non-positive values.
func FromLogConfig(cfg config.LogConfig) LoggerConfig {
	resolved := LoggerConfig{
		Level:         parseLevel(cfg.LogLevel),
		Format:        parseFormat(cfg.LogFormat),
		EnableConsole: true,
		EnableFile:    cfg.LogFile != "",
		FilePath:      cfg.LogFile,
		MaxSizeMB:     cfg.MaxLogSizeMB,
		MaxBackups:    cfg.MaxLogBackups,
	}
	if resolved.MaxSizeMB <= 0 {
		resolved.MaxSizeMB = config.DefaultMaxLogSizeMB
	}
	if resolved.MaxBackups <= 0 {
		resolved.MaxBackups = config.DefaultMaxLogBackups
	}
	return resolved
}
