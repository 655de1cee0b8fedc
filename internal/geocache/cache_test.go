package geocache

import (
	"context"
	"errors"
	"testing"

	"episodemap/internal/geo"
	"episodemap/internal/kvstore"
)

type failingStore struct {
	getErr error
	setErr error
	sets   int
}

func (s *failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, s.getErr
}

func (s *failingStore) Set(context.Context, string, string) error {
	s.sets++
	return s.setErr
}

func TestStaticTierWinsWithoutStoreAccess(t *testing.T) {
	store := &failingStore{getErr: errors.New("must not be called")}
	cache := New(map[string]geo.Coordinates{"USA, New York": {40.7127281, -74.0060152}}, store, nil)

	coords, tier, ok := cache.LookupTier(context.Background(), "USA, New York")
	if !ok || tier != TierStatic {
		t.Fatalf("expected static hit, got ok=%v tier=%q", ok, tier)
	}
	if coords != (geo.Coordinates{40.7127281, -74.0060152}) {
		t.Fatalf("unexpected coordinates %v", coords)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	cache := New(nil, store, nil)

	if _, ok := cache.Lookup(ctx, "Peru, Lima"); ok {
		t.Fatal("expected miss before store")
	}
	cache.Store(ctx, "Peru, Lima", geo.Coordinates{-12.0464, -77.0428})

	value, ok, err := store.Get(ctx, "geo_Peru, Lima")
	if err != nil || !ok || value != "[-12.0464,-77.0428]" {
		t.Fatalf("unexpected stored value %q ok=%v err=%v", value, ok, err)
	}

	coords, tier, ok := cache.LookupTier(ctx, "Peru, Lima")
	if !ok || tier != TierStore || coords != (geo.Coordinates{-12.0464, -77.0428}) {
		t.Fatalf("unexpected lookup %v %q %v", coords, tier, ok)
	}
}

func TestStoreHitAfterReopen(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	if err := store.Set(ctx, Key("X"), "[1.5,2.5]"); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	coords, ok := New(nil, store, nil).Lookup(ctx, "X")
	if !ok || coords != (geo.Coordinates{1.5, 2.5}) {
		t.Fatalf("expected [1.5,2.5], got %v ok=%v", coords, ok)
	}
}

func TestStoreErrorsAreMisses(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{getErr: errors.New("disk gone"), setErr: errors.New("read-only")}
	cache := New(nil, store, nil)

	if _, ok := cache.Lookup(ctx, "Atlantis"); ok {
		t.Fatal("expected read error to be a miss")
	}
	cache.Store(ctx, "Atlantis", geo.Coordinates{1, 2})
	if store.sets != 1 {
		t.Fatalf("expected one write attempt, got %d", store.sets)
	}
}

func TestUndecodableValueIsMiss(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	_ = store.Set(ctx, Key("Broken"), "not-json")
	if _, ok := New(nil, store, nil).Lookup(ctx, "Broken"); ok {
		t.Fatal("expected undecodable value to be a miss")
	}
}

func TestBlankNameAndNilStore(t *testing.T) {
	ctx := context.Background()
	cache := New(nil, nil, nil)
	if _, ok := cache.Lookup(ctx, "  "); ok {
		t.Fatal("expected blank name to miss")
	}
	cache.Store(ctx, "X", geo.Coordinates{1, 2})
	if _, ok := cache.Lookup(ctx, "X"); ok {
		t.Fatal("expected nil store to never hit")
	}
}
