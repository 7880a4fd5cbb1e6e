// Package lrucache provides a generic, thread-safe in-memory cache with
// least-recently-used eviction and sliding expiration.
//
// # Architecture
//
// A [Cache] keeps a map[K]int index into an arena of slots. Each slot holds
// the key, the value, its [Entry] metadata and the indices of its neighbors
// in a doubly linked recency list, most recently used first. Lookups,
// inserts, promotions and evictions are all O(1).
//
// A single mutex guards the whole cache, so every method is atomic with
// respect to the others.
//
// # Expiration
//
// Entries use sliding expiration: an entry expires once more than its
// SlidingExpiration has passed since it was last read or written. Expired
// entries are removed when looked up, by [Cache.CleanupExpired], and by
// amortized cleanup passes.
//
// When [Options.BackgroundCleanupInterval] is positive, [Cache.TryGet] and
// [Cache.GetOrCreate] run a bounded cleanup pass at most once per interval.
// The pass starts at the least recently used end and removes at most 10
// expired entries, so no single call pays for a full sweep. There is no
// background goroutine; caches that are rarely accessed should call
// [Cache.CleanupExpired] themselves.
//
// # Eviction
//
// When [Options.SizeLimit] is positive and an insert exceeds it, the least
// recently used entries are evicted until the limit holds. [Options.CostLimit]
// does the same for the sum of [Entry.Size]. The entry being inserted is never
// evicted.
//
// # Thread Safety
//
// All [Cache] methods are safe for concurrent use by multiple goroutines.
// Factories passed to [Cache.GetOrCreate] run under the cache lock, which
// guarantees a single insert per key but means a factory must not call back
// into the same cache.
package lrucache
