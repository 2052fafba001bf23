package registry

import "sync/atomic"

// Metrics is a snapshot of a Registry's resolution counters: how many
// Codec lookups were satisfied from builtins or the memoization cache
// versus how many required a fresh resolve() call, and how many
// placeholder cycle-breaks were installed and later evicted due to a
// failed resolution. Modeled on the expvar.Map convention of a plain,
// loggable counter struct rather than a push-based metrics client —
// there is no metrics backend to push to from a library.
type Metrics struct {
	BuiltinHits           uint64
	CacheHits             uint64
	Resolutions           uint64
	ResolutionFailures    uint64
	PlaceholdersInstalled uint64
	PlaceholdersEvicted   uint64
}

// metricsCounters holds the live atomic counters a Registry updates;
// Metrics() copies them out into a plain snapshot struct.
type metricsCounters struct {
	builtinHits           atomic.Uint64
	cacheHits             atomic.Uint64
	resolutions           atomic.Uint64
	resolutionFailures    atomic.Uint64
	placeholdersInstalled atomic.Uint64
	placeholdersEvicted   atomic.Uint64
}

// Metrics returns a point-in-time snapshot of r's resolution counters.
func (r *Registry) Metrics() Metrics {
	return Metrics{
		BuiltinHits:           r.metrics.builtinHits.Load(),
		CacheHits:             r.metrics.cacheHits.Load(),
		Resolutions:           r.metrics.resolutions.Load(),
		ResolutionFailures:    r.metrics.resolutionFailures.Load(),
		PlaceholdersInstalled: r.metrics.placeholdersInstalled.Load(),
		PlaceholdersEvicted:   r.metrics.placeholdersEvicted.Load(),
	}
}
