package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"episodemap/internal/config"
)

const defaultFormat = "console"

// Options describes logger construction parameters. OutputPaths accepts file
// paths plus the names "stdout" and "stderr"; an empty list means stderr.
type Options struct {
	Level       string
	Format      string
	OutputPaths []string
	SessionID   string
	// AddSource forces caller locations. Debug level always includes them.
	AddSource bool
}

// New constructs a slog logger using the provided options. The returned
// close func releases any log files opened for OutputPaths.
func New(opts Options) (*slog.Logger, func() error, error) {
	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(opts.Level))
	addSource := opts.AddSource || levelVar.Level() <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = defaultFormat
	}
	var build func(io.Writer, *slog.LevelVar, bool) slog.Handler
	switch format {
	case "json":
		build = newJSONHandler
	case "console":
		build = newConsoleHandler
	default:
		return nil, nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	out, files, err := openOutputs(opts.OutputPaths)
	if err != nil {
		return nil, nil, err
	}
	handler := build(out, levelVar, addSource)
	return slog.New(newSessionHandler(handler, strings.TrimSpace(opts.SessionID))), closeAll(files), nil
}

// NewFromConfig creates a logger using application config defaults. Records
// go to stderr and, when a log directory is configured, to episodemap.log.
func NewFromConfig(cfg *config.Config, sessionID string) (*slog.Logger, func() error, error) {
	if cfg == nil {
		return New(Options{Level: "info", SessionID: sessionID})
	}
	outputs := []string{"stderr"}
	if cfg.Paths.LogDir != "" {
		outputs = append(outputs, cfg.LogPath())
	}
	return New(Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
		SessionID:   sessionID,
	})
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

func openOutputs(paths []string) (io.Writer, []*os.File, error) {
	var names []string
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path != "" && !slices.Contains(names, path) {
			names = append(names, path)
		}
	}
	if len(names) == 0 {
		return os.Stderr, nil, nil
	}

	writers := make([]io.Writer, 0, len(names))
	var files []*os.File
	for _, name := range names {
		switch name {
		case "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			file, err := openLogFile(name)
			if err != nil {
				_ = closeAll(files)()
				return nil, nil, err
			}
			files = append(files, file)
			writers = append(writers, file)
		}
	}
	if len(writers) == 1 {
		return writers[0], files, nil
	}
	return io.MultiWriter(writers...), files, nil
}

// closeAll closes files once; later calls are no-ops.
func closeAll(files []*os.File) func() error {
	var closed bool
	return func() error {
		if closed {
			return nil
		}
		closed = true
		var errs []error
		for _, file := range files {
			if err := file.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close log file %s: %w", file.Name(), err))
			}
		}
		return errors.Join(errs...)
	}
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}
