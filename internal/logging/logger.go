package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediacat/internal/config"
)

// LogFileName is the file created under paths.log_dir.
const LogFileName = "mediacat.log"

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Writer receives log lines; nil means stderr.
	Writer io.Writer
	// FilePath, when set, receives a copy of every line.
	FilePath string
	// RunID is attached to every line; empty generates a new one.
	RunID       string
	Development bool
}

// Logger bundles a slog logger with the resources it owns.
type Logger struct {
	*slog.Logger
	RunID string
	file  *os.File
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// New constructs a logger using the provided options.
func New(opts Options) (*Logger, error) {
	level := parseLevel(opts.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	out := opts.Writer
	if out == nil {
		out = os.Stderr
	}
	var file *os.File
	if path := strings.TrimSpace(opts.FilePath); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", path, err)
		}
		file = f
		out = io.MultiWriter(out, f)
	}

	addSource := opts.Development || level <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = newJSONHandler(out, levelVar, addSource)
	case "console":
		handler = newPrettyHandler(out, levelVar, addSource)
	default:
		if file != nil {
			_ = file.Close()
		}
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	runID := strings.TrimSpace(opts.RunID)
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := slog.New(handler).With(slog.String(FieldRunID, runID))
	return &Logger{Logger: logger, RunID: runID, file: file}, nil
}

// NewFromConfig creates a logger using application config values. The level
// override wins over the configured level when non-empty.
func NewFromConfig(cfg *config.Config, w io.Writer, levelOverride string) (*Logger, error) {
	if cfg == nil {
		return New(Options{Level: levelOverride, Format: "console", Writer: w})
	}
	level := cfg.Logging.Level
	if strings.TrimSpace(levelOverride) != "" {
		level = levelOverride
	}
	opts := Options{
		Level:  level,
		Format: cfg.Logging.Format,
		Writer: w,
	}
	if cfg.Paths.LogDir != "" {
		opts.FilePath = filepath.Join(cfg.Paths.LogDir, LogFileName)
	}
	return New(opts)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
				}
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			}
			return attr
		},
	}
	return slog.NewJSONHandler(w, &opts)
}
