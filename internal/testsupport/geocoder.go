package testsupport

import (
	"context"
	"sync"
	"time"

	"episodemap/internal/geo"
	"episodemap/internal/ratelimit"
)

// GeocodeCall records one Search invocation.
type GeocodeCall struct {
	Name  string
	Start time.Time
	End   time.Time
}

// FakeGeocoder answers Search from canned results and records call timing.
// Unknown names return no candidates.
type FakeGeocoder struct {
	mu          sync.Mutex
	results     map[string][]geo.Candidate
	errs        map[string]error
	latency     time.Duration
	calls       []GeocodeCall
	inFlight    int
	maxInFlight int
}

// NewFakeGeocoder returns a geocoder whose calls take latency.
func NewFakeGeocoder(latency time.Duration) *FakeGeocoder {
	return &FakeGeocoder{
		results: make(map[string][]geo.Candidate),
		errs:    make(map[string]error),
		latency: latency,
	}
}

// Set makes name resolve to lat/lon.
func (f *FakeGeocoder) Set(name, lat, lon string) *FakeGeocoder {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[name] = []geo.Candidate{{Lat: lat, Lon: lon, DisplayName: name}}
	return f
}

// Fail makes name return err.
func (f *FakeGeocoder) Fail(name string, err error) *FakeGeocoder {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[name] = err
	return f
}

// Search implements the resolver's geocoder contract.
func (f *FakeGeocoder) Search(ctx context.Context, name string) ([]geo.Candidate, error) {
	f.mu.Lock()
	idx := len(f.calls)
	f.calls = append(f.calls, GeocodeCall{Name: name, Start: time.Now()})
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	sleepErr := ratelimit.SleepWithContext(ctx, f.latency)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--
	f.calls[idx].End = time.Now()
	if sleepErr != nil {
		return nil, sleepErr
	}
	if err := f.errs[name]; err != nil {
		return nil, err
	}
	return f.results[name], nil
}

// Calls returns a copy of the recorded calls in start order.
func (f *FakeGeocoder) Calls() []GeocodeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]GeocodeCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many times name was searched.
func (f *FakeGeocoder) CallCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, call := range f.calls {
		if call.Name == name {
			count++
		}
	}
	return count
}

// MaxInFlight returns the highest number of overlapping calls observed.
func (f *FakeGeocoder) MaxInFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxInFlight
}
