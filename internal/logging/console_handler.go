package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// consoleSink serializes writes from every handler derived from one logger.
type consoleSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *consoleSink) write(p string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.w, p)
	return err
}

// consoleHandler prints one header line per record followed by an indented
// field list. Season and episode collapse into the header subject.
type consoleHandler struct {
	sink      *consoleSink
	level     *slog.LevelVar
	prefix    string
	bound     []kv
	addSource bool
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return &consoleHandler{sink: &consoleSink{w: w}, level: lvl, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if !h.Enabled(context.Background(), record.Level) {
		return nil
	}

	fields := make([]kv, 0, len(h.bound)+record.NumAttrs())
	fields = append(fields, h.bound...)
	record.Attrs(func(attr slog.Attr) bool {
		fields = appendFlattened(fields, h.prefix, attr)
		return true
	})
	scope, rest := splitScope(fields)

	var b strings.Builder
	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	b.WriteString(formatTimestamp(ts))
	b.WriteString(" " + levelLabel(record.Level))
	if scope.component != "" {
		b.WriteString(" [" + scope.component + "]")
	}
	if subject := scope.subject(); subject != "" {
		b.WriteString(" " + subject)
	}
	message := strings.TrimSpace(record.Message)
	if message == "" {
		message = "(no message)"
	}
	b.WriteString(" – " + message)
	if h.addSource {
		if src := record.Source(); src != nil && src.File != "" {
			fmt.Fprintf(&b, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	b.WriteByte('\n')
	for _, field := range selectFields(rest, record.Level < slog.LevelInfo) {
		fmt.Fprintf(&b, "    - %s: %s\n", field.label, field.value)
	}
	return h.sink.write(b.String())
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := *h
	next.bound = make([]kv, 0, len(h.bound)+len(attrs))
	next.bound = append(next.bound, h.bound...)
	for _, attr := range attrs {
		next.bound = appendFlattened(next.bound, h.prefix, attr)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = joinKey(h.prefix, name)
	return &next
}

type kv struct {
	key   string
	value slog.Value
}

// recordScope holds the fields the header line consumes.
type recordScope struct {
	component string
	season    string
	episode   string
}

func (s recordScope) subject() string {
	season := strings.TrimSpace(s.season)
	episode := strings.TrimSpace(s.episode)
	switch {
	case season != "" && episode != "":
		return season + " · Ep " + episode
	case episode != "":
		return "Ep " + episode
	default:
		return season
	}
}

// splitScope pulls the header fields out of fields and collapses repeated
// keys so the last value wins while the first position is kept.
func splitScope(fields []kv) (recordScope, []kv) {
	var scope recordScope
	rest := make([]kv, 0, len(fields))
	index := make(map[string]int, len(fields))
	for _, field := range fields {
		switch field.key {
		case "":
			continue
		case FieldComponent:
			scope.component = firstNonEmpty(scope.component, plainValue(field.value))
			continue
		case FieldSeason:
			scope.season = firstNonEmpty(scope.season, plainValue(field.value))
			continue
		case FieldEpisode:
			scope.episode = firstNonEmpty(scope.episode, plainValue(field.value))
			continue
		}
		if pos, ok := index[field.key]; ok {
			rest[pos].value = field.value
			continue
		}
		index[field.key] = len(rest)
		rest = append(rest, field)
	}
	return scope, rest
}

func firstNonEmpty(current, candidate string) string {
	if current != "" {
		return current
	}
	return candidate
}

func appendFlattened(dst []kv, prefix string, attr slog.Attr) []kv {
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	value := attr.Value.Resolve()
	if value.Kind() != slog.KindGroup {
		return append(dst, kv{key: joinKey(prefix, attr.Key), value: value})
	}
	groupPrefix := prefix
	if attr.Key != "" {
		groupPrefix = joinKey(prefix, attr.Key)
	}
	for _, member := range value.Group() {
		dst = appendFlattened(dst, groupPrefix, member)
	}
	return dst
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
