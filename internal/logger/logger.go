package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileTimeFormat is the timestamp layout of each log file line.
const FileTimeFormat = "2006-01-02 15:04:05"

// Logger wraps zerolog for application logging.
type Logger struct {
	zerolog.Logger
	closer io.Closer
}

// Config holds logger configuration.
type Config struct {
	FileEnabled bool   // write to Path; set by the -log flag
	Console     bool   // also write to stdout
	Level       string
	Format      string // "console" or "json"
	Path        string // log file path
	MaxSizeMB   int    // > 0 enables rotation
	MaxBackups  int
	MaxAgeDays  int
	Compress    bool
	RunID       string
}

// New creates a new logger instance. With neither the file nor the console
// enabled it returns a disabled logger. The returned error reports a log file
// that could not be opened; the logger is still usable in that case.
func New(cfg Config) (*Logger, error) {
	var writers []io.Writer
	var closer io.Closer
	var openErr error

	if cfg.FileEnabled && cfg.Path != "" {
		w, c, err := openFile(cfg)
		if err != nil {
			openErr = err
		} else {
			writers = append(writers, formatWriter(w, cfg.Format, true))
			closer = c
		}
	}

	if cfg.Console {
		writers = append(writers, formatWriter(os.Stdout, cfg.Format, false))
	}

	if len(writers) == 0 {
		return &Logger{Logger: zerolog.Nop(), closer: closer}, openErr
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp()
	if cfg.RunID != "" {
		ctx = ctx.Str("run", cfg.RunID)
	}

	return &Logger{Logger: ctx.Logger(), closer: closer}, openErr
}

// openFile opens the log file in append mode, or a lumberjack rotator when
// rotation is configured.
func openFile(cfg Config) (io.Writer, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	if cfg.MaxSizeMB > 0 {
		rotator := &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		return rotator, rotator, nil
	}

	f, err := os.OpenFile(cfg.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, f, nil
}

func formatWriter(out io.Writer, format string, noColor bool) io.Writer {
	if format == "json" {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    noColor,
		TimeFormat: FileTimeFormat,
	}
}

// Close closes the log file if one is open.
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// parseLevel converts string level to zerolog.Level
func parseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithComponent returns a new logger with component field.
func (l *Logger) WithComponent(component string) zerolog.Logger {
	return l.Logger.With().Str("component", component).Logger()
}
