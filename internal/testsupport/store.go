package testsupport

import (
	"context"
	"testing"

	"episodemap/internal/config"
	"episodemap/internal/kvstore"
)

// MustOpenStore opens the configured kvstore.Store for tests and registers
// cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) kvstore.Store {
	t.Helper()

	store, err := kvstore.Open(cfg, nil)
	if err != nil {
		t.Fatalf("kvstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedStore writes key/value pairs into store.
func SeedStore(t testing.TB, store kvstore.Store, pairs map[string]string) {
	t.Helper()

	for key, value := range pairs {
		if err := store.Set(context.Background(), key, value); err != nil {
			t.Fatalf("seed %q: %v", key, err)
		}
	}
}
