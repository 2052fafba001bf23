// Package registry implements the type-driven resolver: given a
// (possibly compound, possibly self-referential) type descriptor, it
// recursively synthesizes a codec, memoizing results and breaking
// reference cycles via placeholder insertion.
package registry

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/thebagchi/wirecodec/codec"
)

// Registry maintains the builtin and cache maps and drives resolution
// through resolve.go. Reads and writes are guarded by a single RWMutex:
// built-in and user registrations should happen before concurrent
// lookups begin, but the mutex makes mixed use safe rather than merely
// documented.
type Registry struct {
	mu        sync.RWMutex
	builtins  map[any]codec.Codec
	cache     map[any]codec.Codec
	evaluator Evaluator
	log       *logrus.Entry
	metrics   metricsCounters
}

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithEvaluator overrides the default IdentityEvaluator.
func WithEvaluator(e Evaluator) Option {
	return func(r *Registry) { r.evaluator = e }
}

// WithLogger overrides the default logrus entry (useful for attaching
// caller-supplied fields, e.g. a request ID, to resolution diagnostics).
func WithLogger(log *logrus.Entry) Option {
	return func(r *Registry) { r.log = log }
}

// New builds a Registry seeded with the built-in primitive codecs: null,
// signed integer, float32, boolean, string, byte blob (and byte-sequence
// aliases).
func New(opts ...Option) *Registry {
	r := &Registry{
		builtins:  map[any]codec.Codec{},
		cache:     map[any]codec.Codec{},
		evaluator: IdentityEvaluator{},
		log:       logrus.NewEntry(logrus.StandardLogger()),
	}
	registerBuiltins(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Codec normalizes descriptor via the registry's Evaluator, then checks
// builtins, then cache, then calls resolve. Successful resolutions are
// memoized. Returns (nil, nil) — not an error — when descriptor names a
// shape the resolver does not recognize: an unresolved descriptor is not
// itself a failure.
func (r *Registry) Codec(descriptor any) (codec.Codec, error) {
	normalized, err := r.evaluator.Eval(descriptor)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	if c, ok := r.builtins[normalized]; ok {
		r.mu.RUnlock()
		r.metrics.builtinHits.Add(1)
		return c, nil
	}
	if c, ok := r.cache[normalized]; ok {
		r.mu.RUnlock()
		r.metrics.cacheHits.Add(1)
		return c, nil
	}
	r.mu.RUnlock()

	r.metrics.resolutions.Add(1)
	ctx := &resolutionContext{registry: r}
	c, err := ctx.resolve(normalized)
	if err != nil {
		r.metrics.resolutionFailures.Add(1)
		r.log.WithError(err).WithField("descriptor", normalized).Debug("wirecodec: resolution failed")
		return nil, err
	}
	if c != nil {
		r.mu.Lock()
		r.cache[normalized] = c
		r.mu.Unlock()
	}
	return c, nil
}

// Register inserts a built-in-level binding: descriptor will resolve to
// codec without going through resolve() at all, taking priority over
// anything the resolver would have synthesized.
func (r *Registry) Register(descriptor any, c codec.Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builtins[descriptor] = c
}

// Unregister removes descriptor's built-in binding if the currently
// registered codec is identical to c (by interface value equality) —
// a stale Unregister call naming a codec that has since been replaced
// or removed is a no-op rather than an error.
func (r *Registry) Unregister(descriptor any, c codec.Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.builtins[descriptor]; ok && existing == c {
		delete(r.builtins, descriptor)
	}
}

// evictPlaceholder removes a cache entry installed mid-resolution after
// a failure, so no stale placeholder survives for the next lookup.
func (r *Registry) evictPlaceholder(descriptor any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, descriptor)
	r.metrics.placeholdersEvicted.Add(1)
}

// installPlaceholder inserts c into the cache before recursion begins —
// the mechanism that lets a self-referential record type resolve
// without infinite recursion: a recursive lookup for the same
// descriptor finds this entry already present and reuses it instead of
// recursing forever.
func (r *Registry) installPlaceholder(descriptor any, c codec.Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[descriptor] = c
	r.metrics.placeholdersInstalled.Add(1)
}
