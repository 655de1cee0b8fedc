package services

import "context"

type contextKey int

const (
	requestIDKey contextKey = iota
	episodeKey
	seasonKey
)

func withString(ctx context.Context, key contextKey, value string) context.Context {
	if value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func stringFrom(ctx context.Context, key contextKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	value, ok := ctx.Value(key).(string)
	return value, ok && value != ""
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	return withString(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, requestIDKey)
}

// WithEpisode annotates context with the episode index being processed,
// e.g. "3 (12)".
func WithEpisode(ctx context.Context, index string) context.Context {
	return withString(ctx, episodeKey, index)
}

func EpisodeFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, episodeKey)
}

// WithSeason annotates context with the season heading being processed.
func WithSeason(ctx context.Context, season string) context.Context {
	return withString(ctx, seasonKey, season)
}

func SeasonFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, seasonKey)
}
