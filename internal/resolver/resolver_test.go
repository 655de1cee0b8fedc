package resolver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"episodemap/internal/geo"
	"episodemap/internal/geocache"
	"episodemap/internal/kvstore"
	"episodemap/internal/logging"
	"episodemap/internal/resolver"
	"episodemap/internal/services"
	"episodemap/internal/testsupport"
)

func newResolver(t *testing.T, fake *testsupport.FakeGeocoder, minDelay time.Duration, static map[string]geo.Coordinates) (*resolver.Resolver, *kvstore.MemoryStore) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	cache := geocache.New(static, store, nil)
	r := resolver.New(fake, cache, resolver.Options{MinDelay: minDelay})
	t.Cleanup(func() { _ = r.Close() })
	return r, store
}

func TestCallsAreSerializedAndSpaced(t *testing.T) {
	const minDelay = 100 * time.Millisecond
	fake := testsupport.NewFakeGeocoder(20*time.Millisecond).
		Set("A", "1", "2").
		Set("B", "3", "4").
		Set("C", "5", "6")
	r, _ := newResolver(t, fake, minDelay, nil)

	requests := []*resolver.Request{r.Submit("A"), r.Submit("B"), r.Submit("C")}
	for _, req := range requests {
		result, err := req.Wait(context.Background())
		if err != nil {
			t.Fatalf("Wait(%s): %v", req.Name(), err)
		}
		if result.Status != resolver.StatusResolved {
			t.Fatalf("%s: unexpected status %q (%v)", req.Name(), result.Status, result.Err)
		}
	}

	calls := fake.Calls()
	if len(calls) != 3 {
		t.Fatalf("expected 3 calls, got %d", len(calls))
	}
	for i, want := range []string{"A", "B", "C"} {
		if calls[i].Name != want {
			t.Fatalf("call %d: got %s, want %s", i, calls[i].Name, want)
		}
	}
	for i := 1; i < len(calls); i++ {
		if gap := calls[i].Start.Sub(calls[i-1].End); gap < minDelay {
			t.Fatalf("call %d started %v after previous completed, want >= %v", i, gap, minDelay)
		}
	}
	if fake.MaxInFlight() != 1 {
		t.Fatalf("expected no overlapping calls, saw %d", fake.MaxInFlight())
	}
}

func TestCacheHitBypassesQueue(t *testing.T) {
	fake := testsupport.NewFakeGeocoder(0)
	static := map[string]geo.Coordinates{"USA, New York": {40.7127281, -74.0060152}}
	r, _ := newResolver(t, fake, time.Hour, static)

	req := r.Submit("USA, New York")
	select {
	case <-req.Done():
	default:
		t.Fatal("expected cache hit to complete synchronously")
	}
	result, _ := req.Wait(context.Background())
	if result.Status != resolver.StatusCacheHit || !result.Found() {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(fake.Calls()) != 0 {
		t.Fatal("cache hit must not reach the geocoder")
	}
}

func TestResolvedCoordinatesAreCached(t *testing.T) {
	ctx := context.Background()
	fake := testsupport.NewFakeGeocoder(0).Set("Peru, Lima", "-12.0464", "-77.0428")
	r, store := newResolver(t, fake, 0, nil)

	result, err := r.Resolve(ctx, "Peru, Lima")
	if err != nil || result.Status != resolver.StatusResolved {
		t.Fatalf("Resolve = %+v, %v", result, err)
	}
	if result.Coordinates != (geo.Coordinates{-12.0464, -77.0428}) {
		t.Fatalf("unexpected coordinates %v", result.Coordinates)
	}
	if value, ok, _ := store.Get(ctx, "geo_Peru, Lima"); !ok || value != "[-12.0464,-77.0428]" {
		t.Fatalf("expected cache write, got %q ok=%v", value, ok)
	}

	again, _ := r.Resolve(ctx, "Peru, Lima")
	if again.Status != resolver.StatusCacheHit || fake.CallCount("Peru, Lima") != 1 {
		t.Fatalf("expected second lookup from cache, got %+v after %d calls", again, fake.CallCount("Peru, Lima"))
	}
}

func TestNotFoundAndFailuresAreNotCached(t *testing.T) {
	ctx := context.Background()
	fake := testsupport.NewFakeGeocoder(0).Fail("Broken", errors.New("connection reset"))
	r, store := newResolver(t, fake, 0, nil)

	missing, _ := r.Resolve(ctx, "Atlantis")
	if missing.Status != resolver.StatusNotFound || missing.Found() || missing.Err != nil {
		t.Fatalf("unexpected not-found result %+v", missing)
	}
	failed, _ := r.Resolve(ctx, "Broken")
	if failed.Status != resolver.StatusFailed || failed.Err == nil {
		t.Fatalf("unexpected failed result %+v", failed)
	}

	if count, _ := store.Count(ctx, ""); count != 0 {
		t.Fatalf("expected nothing cached, found %d entries", count)
	}

	_, _ = r.Resolve(ctx, "Atlantis")
	_, _ = r.Resolve(ctx, "Broken")
	if fake.CallCount("Atlantis") != 2 || fake.CallCount("Broken") != 2 {
		t.Fatal("expected unresolved names to be retried")
	}
}

func TestFailureLogCarriesCorrelationAndKind(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	fake := testsupport.NewFakeGeocoder(0).Fail("Broken", fmt.Errorf("%w: HTTP 503", services.ErrTransient))
	r := resolver.New(fake, geocache.New(nil, kvstore.NewMemoryStore(), nil), resolver.Options{Logger: logger})
	t.Cleanup(func() { _ = r.Close() })

	if result, _ := r.Resolve(context.Background(), "Broken"); result.Status != resolver.StatusFailed {
		t.Fatalf("expected failure, got %+v", result)
	}

	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record); err != nil {
		t.Fatalf("decode log record: %v (%q)", err, buf.String())
	}
	if record[logging.FieldEventType] != "geocode_failed" || record["error_kind"] != "transient" {
		t.Fatalf("unexpected record %v", record)
	}
	if id, _ := record[logging.FieldCorrelationID].(string); id == "" {
		t.Fatalf("expected correlation id, got %v", record)
	}
	if record[logging.FieldLocation] != "Broken" {
		t.Fatalf("expected location field, got %v", record)
	}
}

func TestUnparseableCoordinatesFail(t *testing.T) {
	fake := testsupport.NewFakeGeocoder(0).Set("Odd", "north", "-1")
	r, _ := newResolver(t, fake, 0, nil)

	result, _ := r.Resolve(context.Background(), "Odd")
	if result.Status != resolver.StatusFailed || result.Found() {
		t.Fatalf("expected failure for unparseable coordinates, got %+v", result)
	}
}

func TestUpstreamCoordinatesAreTrusted(t *testing.T) {
	fake := testsupport.NewFakeGeocoder(0).Set("Edge", "91.5", "0")
	r, store := newResolver(t, fake, 0, nil)

	result, _ := r.Resolve(context.Background(), "Edge")
	if result.Status != resolver.StatusResolved || result.Err != nil {
		t.Fatalf("expected out-of-range upstream value to resolve, got %+v", result)
	}
	if result.Coordinates != (geo.Coordinates{91.5, 0}) {
		t.Fatalf("unexpected coordinates %v", result.Coordinates)
	}
	if count, _ := store.Count(context.Background(), ""); count != 1 {
		t.Fatalf("expected the result to be cached, found %d entries", count)
	}
}

func TestDuplicateQueuedNameFetchedOnce(t *testing.T) {
	fake := testsupport.NewFakeGeocoder(30*time.Millisecond).Set("Dup", "1", "1")
	r, _ := newResolver(t, fake, 0, nil)

	first := r.Submit("Dup")
	second := r.Submit("Dup")
	a, _ := first.Wait(context.Background())
	b, _ := second.Wait(context.Background())

	if a.Status != resolver.StatusResolved || b.Status != resolver.StatusCacheHit {
		t.Fatalf("unexpected statuses %q, %q", a.Status, b.Status)
	}
	if fake.CallCount("Dup") != 1 {
		t.Fatalf("expected one outbound call, got %d", fake.CallCount("Dup"))
	}
}

func TestWaitCancellationLeavesWorkQueued(t *testing.T) {
	fake := testsupport.NewFakeGeocoder(50*time.Millisecond).Set("Slow", "1", "2")
	r, _ := newResolver(t, fake, 0, nil)

	req := r.Submit("Slow")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := req.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	result, err := req.Wait(context.Background())
	if err != nil || result.Status != resolver.StatusResolved {
		t.Fatalf("expected queued work to finish, got %+v, %v", result, err)
	}
}

func TestCloseDrainsQueueAndRejectsNewWork(t *testing.T) {
	fake := testsupport.NewFakeGeocoder(10*time.Millisecond).Set("A", "1", "2").Set("B", "3", "4")
	store := kvstore.NewMemoryStore()
	r := resolver.New(fake, geocache.New(nil, store, nil), resolver.Options{})

	a := r.Submit("A")
	b := r.Submit("B")
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	for _, req := range []*resolver.Request{a, b} {
		select {
		case <-req.Done():
		default:
			t.Fatalf("request %s not completed by Close", req.Name())
		}
	}

	late, _ := r.Resolve(context.Background(), "C")
	if late.Status != resolver.StatusFailed || !errors.Is(late.Err, resolver.ErrClosed) {
		t.Fatalf("expected ErrClosed after Close, got %+v", late)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestBlankNameFails(t *testing.T) {
	fake := testsupport.NewFakeGeocoder(0)
	r, _ := newResolver(t, fake, 0, nil)
	result, _ := r.Resolve(context.Background(), "  ")
	if !errors.Is(result.Err, resolver.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %+v", result)
	}
}

func TestCancelledContextFailsQueuedWork(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fake := testsupport.NewFakeGeocoder(0).Set("A", "1", "2")
	r := resolver.New(fake, geocache.New(nil, kvstore.NewMemoryStore(), nil),
		resolver.Options{MinDelay: time.Hour, Context: ctx})

	first, _ := r.Resolve(context.Background(), "A")
	if first.Status != resolver.StatusResolved {
		t.Fatalf("unexpected first result %+v", first)
	}
	req := r.Submit("B")
	cancel()
	result, _ := req.Wait(context.Background())
	if result.Status != resolver.StatusFailed || !errors.Is(result.Err, context.Canceled) {
		t.Fatalf("expected cancellation failure, got %+v", result)
	}
	_ = r.Close()
}
