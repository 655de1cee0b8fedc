package main

import (
	"errors"
	"testing"

	"episodemap/internal/services"
)

func TestFormatCommandError(t *testing.T) {
	fetchErr := services.Wrap(services.ErrFetch, "wikisource", "fetch", "HTTP 502", nil)
	if got, want := formatCommandError(fetchErr), "episodemap: fetch error: "+fetchErr.Error(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got := formatCommandError(errors.New("boom")); got != "episodemap: boom" {
		t.Fatalf("unexpected plain error text %q", got)
	}
}

func TestPluralize(t *testing.T) {
	if got := pluralize(1, "episode", "episodes"); got != "1 episode" {
		t.Fatalf("got %q", got)
	}
	if got := pluralize(3, "episode", "episodes"); got != "3 episodes" {
		t.Fatalf("got %q", got)
	}
}
