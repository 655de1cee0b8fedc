package services_test

import (
	"context"
	"testing"

	"episodemap/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRequestID(ctx, "req-123")
	ctx = services.WithSeason(ctx, "Сезон 1")
	ctx = services.WithEpisode(ctx, "1 (1)")

	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
	if season, ok := services.SeasonFromContext(ctx); !ok || season != "Сезон 1" {
		t.Fatalf("unexpected season: %v %v", season, ok)
	}
	if ep, ok := services.EpisodeFromContext(ctx); !ok || ep != "1 (1)" {
		t.Fatalf("unexpected episode: %v %v", ep, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithSeason(ctx, "")
	ctx = services.WithEpisode(ctx, "")
	ctx = services.WithRequestID(ctx, "")
	if _, ok := services.SeasonFromContext(ctx); ok {
		t.Fatal("expected no season value")
	}
	if _, ok := services.EpisodeFromContext(ctx); ok {
		t.Fatal("expected no episode value")
	}
	if _, ok := services.RequestIDFromContext(ctx); ok {
		t.Fatal("expected no request id value")
	}
}
