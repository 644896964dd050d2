package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// formatWriter wraps out for the given format. Color is only used for the
// console format on a terminal-facing writer.
func formatWriter(format LogFormat, out io.Writer, color bool) io.Writer {
	if format == FormatJSON {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !color || format == FormatText,
	}
}

func consoleWriter(cfg LoggerConfig) io.Writer {
	out := cfg.ConsoleOutput
	if out == nil {
		out = os.Stderr
	}
	return formatWriter(cfg.Format, out, true)
}

// fileWriter rotates cfg.FilePath with lumberjack. Files never get color codes.
func fileWriter(cfg LoggerConfig) io.Writer {
	// lumberjack creates the file lazily; a failure here surfaces on first write.
	_ = os.MkdirAll(filepath.Dir(cfg.FilePath), 0755)

	return formatWriter(cfg.Format, &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
	}, false)
}
