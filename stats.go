package lrucache

// Stats represents cache stats.
//
// Use [Cache.UpdateStats] for obtaining fresh stats from the cache.
type Stats struct {
	// GetCalls is the number of TryGet and GetOrCreate calls.
	GetCalls uint64

	// Hits is the number of lookups that found an unexpired entry.
	Hits uint64

	// Misses is the number of lookups that found no entry or an expired one.
	Misses uint64

	// Creates is the number of entries inserted from a factory result.
	Creates uint64

	// FactoryErrors is the number of factory calls that returned an error.
	FactoryErrors uint64

	// Removes is the number of entries deleted by Remove.
	Removes uint64

	// Evictions is the number of entries evicted due to size or cost limits.
	Evictions uint64

	// Expirations is the number of expired entries removed, whether by
	// lookup, amortized cleanup or CleanupExpired.
	Expirations uint64

	// CleanupRuns is the number of amortized cleanup passes.
	CleanupRuns uint64

	// EntriesCount is the current number of entries in the cache.
	EntriesCount uint64

	// TotalCost is the current sum of entry sizes.
	TotalCost uint64

	// SizeLimit is the maximum number of entries allowed in the cache.
	SizeLimit uint64

	// CostLimit is the maximum total cost allowed in the cache.
	CostLimit uint64
}

// counters are the cumulative part of Stats, owned by Cache under its mutex.
type counters struct {
	getCalls      uint64
	hits          uint64
	misses        uint64
	creates       uint64
	factoryErrors uint64
	removes       uint64
	evictions     uint64
	expirations   uint64
	cleanupRuns   uint64
}

// UpdateStats adds cache stats to s.
//
// Call [Stats.Reset] before calling UpdateStats if s is re-used.
func (c *Cache[K, V]) UpdateStats(s *Stats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s.GetCalls += c.counters.getCalls
	s.Hits += c.counters.hits
	s.Misses += c.counters.misses
	s.Creates += c.counters.creates
	s.FactoryErrors += c.counters.factoryErrors
	s.Removes += c.counters.removes
	s.Evictions += c.counters.evictions
	s.Expirations += c.counters.expirations
	s.CleanupRuns += c.counters.cleanupRuns

	s.EntriesCount = uint64(len(c.index))
	s.TotalCost = uint64(c.totalCost)
	s.SizeLimit = uint64(c.opts.SizeLimit)
	s.CostLimit = uint64(c.opts.CostLimit)
}

// Reset resets s, so it may be re-used again in [Cache.UpdateStats].
func (s *Stats) Reset() {
	*s = Stats{}
}
