package resolver

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"episodemap/internal/geo"
	"episodemap/internal/logging"
	"episodemap/internal/ratelimit"
	"episodemap/internal/services"
)

var (
	// ErrClosed completes requests submitted after Close.
	ErrClosed = errors.New("resolver closed")
	// ErrEmptyName completes requests for a blank label.
	ErrEmptyName = errors.New("location name is empty")
)

// Geocoder performs the outbound lookup.
type Geocoder interface {
	Search(ctx context.Context, name string) ([]geo.Candidate, error)
}

// Cache is the lookup/write-back layer consulted before the geocoder.
type Cache interface {
	Lookup(ctx context.Context, name string) (geo.Coordinates, bool)
	Store(ctx context.Context, name string, coords geo.Coordinates)
}

// Status describes how a request completed.
type Status string

const (
	StatusCacheHit Status = "cache_hit"
	StatusResolved Status = "resolved"
	StatusNotFound Status = "not_found"
	StatusFailed   Status = "failed"
)

// Result is the outcome of one request. Err is set only for StatusFailed.
type Result struct {
	Name        string
	Coordinates geo.Coordinates
	Status      Status
	Err         error
}

// Found reports whether Coordinates is meaningful.
func (r Result) Found() bool {
	return r.Status == StatusCacheHit || r.Status == StatusResolved
}

// Options tunes a Resolver.
type Options struct {
	// MinDelay separates the end of one outbound call from the start of the
	// next.
	MinDelay time.Duration
	// Context bounds outbound calls. Cancelling it fails queued work quickly.
	Context context.Context
	Logger  *slog.Logger
}

// Request is a pending resolution.
type Request struct {
	name   string
	done   chan struct{}
	result Result
}

func newRequest(name string) *Request {
	return &Request{name: name, done: make(chan struct{})}
}

func (r *Request) complete(result Result) {
	r.result = result
	close(r.done)
}

// Name returns the requested label.
func (r *Request) Name() string { return r.name }

// Done is closed once the result is available.
func (r *Request) Done() <-chan struct{} { return r.done }

// Wait blocks until the request completes or ctx is done. Abandoning the
// wait does not cancel the queued lookup.
func (r *Request) Wait(ctx context.Context) (Result, error) {
	select {
	case <-r.done:
		return r.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Resolver owns the outbound lane.
type Resolver struct {
	geocoder Geocoder
	cache    Cache
	minDelay time.Duration
	ctx      context.Context
	logger   *slog.Logger

	mu      sync.Mutex
	queue   []*Request
	closed  bool
	wake    chan struct{}
	stopped chan struct{}

	gateMu   sync.Mutex
	nextSend time.Time
}

// New starts a resolver. Call Close to drain and stop it.
func New(geocoder Geocoder, cache Cache, opts Options) *Resolver {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	r := &Resolver{
		geocoder: geocoder,
		cache:    cache,
		minDelay: opts.MinDelay,
		ctx:      ctx,
		logger:   logging.NewComponentLogger(opts.Logger, "resolver"),
		wake:     make(chan struct{}, 1),
		stopped:  make(chan struct{}),
	}
	go r.run()
	return r
}

// Resolve submits name and waits for the result.
func (r *Resolver) Resolve(ctx context.Context, name string) (Result, error) {
	return r.Submit(name).Wait(ctx)
}

// Submit enqueues name. Cache hits, blank names, and submissions after Close
// complete before Submit returns.
func (r *Resolver) Submit(name string) *Request {
	name = strings.TrimSpace(name)
	req := newRequest(name)
	if name == "" {
		req.complete(Result{Name: name, Status: StatusFailed, Err: ErrEmptyName})
		return req
	}
	if r.isClosed() {
		req.complete(Result{Name: name, Status: StatusFailed, Err: ErrClosed})
		return req
	}
	if coords, ok := r.cache.Lookup(r.ctx, name); ok {
		req.complete(Result{Name: name, Coordinates: coords, Status: StatusCacheHit})
		return req
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		req.complete(Result{Name: name, Status: StatusFailed, Err: ErrClosed})
		return req
	}
	r.queue = append(r.queue, req)
	r.mu.Unlock()
	r.signal()
	return req
}

// Pending returns the number of queued requests not yet picked up.
func (r *Resolver) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// Close stops intake, waits for queued requests to finish, and stops the
// worker. It is safe to call more than once.
func (r *Resolver) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.signal()
	<-r.stopped
	return nil
}

func (r *Resolver) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *Resolver) signal() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *Resolver) run() {
	defer close(r.stopped)
	for {
		req, ok := r.next()
		if !ok {
			return
		}
		req.complete(r.resolve(req.name))
	}
}

func (r *Resolver) next() (*Request, bool) {
	for {
		r.mu.Lock()
		if len(r.queue) > 0 {
			req := r.queue[0]
			r.queue[0] = nil
			r.queue = r.queue[1:]
			r.mu.Unlock()
			return req, true
		}
		if r.closed {
			r.mu.Unlock()
			return nil, false
		}
		r.mu.Unlock()
		<-r.wake
	}
}

func (r *Resolver) resolve(name string) Result {
	ctx := services.WithRequestID(r.ctx, uuid.NewString())
	logger := logging.WithContext(ctx, r.logger)

	// An earlier request for the same name may have filled the cache.
	if coords, ok := r.cache.Lookup(ctx, name); ok {
		return Result{Name: name, Coordinates: coords, Status: StatusCacheHit}
	}

	if err := r.waitTurn(ctx); err != nil {
		return fail(logger, name, err)
	}
	start := time.Now()
	candidates, err := r.geocoder.Search(ctx, name)
	r.release()
	latency := time.Since(start)
	if err != nil {
		return fail(logger, name, err)
	}
	if len(candidates) == 0 {
		logging.WarnWithContext(logger, "location not found", "geocode_not_found",
			logging.Location(name),
			logging.Duration("latency", latency),
			logging.Hint("add the label to the gazetteer coordinates file"),
			logging.Impact("location has no coordinates"))
		return Result{Name: name, Status: StatusNotFound}
	}

	coords, err := candidates[0].Coordinates()
	if err != nil {
		return fail(logger, name, err)
	}
	r.cache.Store(ctx, name, coords)
	logger.Info("location geocoded",
		logging.Location(name),
		logging.String("coordinates", coords.String()),
		logging.String("match", candidates[0].DisplayName),
		logging.Duration("latency", latency))
	return Result{Name: name, Coordinates: coords, Status: StatusResolved}
}

func fail(logger *slog.Logger, name string, err error) Result {
	logging.WarnWithContext(logger, "geocoding failed", "geocode_failed",
		logging.Location(name),
		logging.String("error_kind", services.Kind(err)),
		logging.Error(err),
		logging.Hint("check network access and the geocoder base_url"),
		logging.Impact("location has no coordinates; it is retried next run"))
	return Result{Name: name, Status: StatusFailed, Err: err}
}

// waitTurn blocks until the gate cursor allows another outbound call.
func (r *Resolver) waitTurn(ctx context.Context) error {
	r.gateMu.Lock()
	next := r.nextSend
	r.gateMu.Unlock()
	return ratelimit.SleepWithContext(ctx, time.Until(next))
}

// release advances the gate cursor after an outbound call completes.
func (r *Resolver) release() {
	r.gateMu.Lock()
	r.nextSend = time.Now().Add(r.minDelay)
	r.gateMu.Unlock()
}
