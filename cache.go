package lrucache

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"sync"
	"time"
)

const (
	// maxCleanupPerCycle caps the expired entries removed by one amortized
	// cleanup pass.
	maxCleanupPerCycle = 10

	// maxCleanupScan caps the slots inspected by one amortized cleanup pass.
	maxCleanupScan = 64
)

// Cache is a thread-safe in-memory cache with LRU eviction and sliding
// expiration.
//
// All methods serialize on a single mutex, so every call is atomic with
// respect to the others.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	opts   Options
	clock  Clock
	logger *slog.Logger

	// index maps keys to slots of list; both always hold the same keys.
	index map[K]int
	list  recencyList[K, V]

	totalCost   int64
	lastCleanup time.Time
	counters    counters
}

// New returns a new cache configured by opts.
//
// New panics if opts are invalid; see [Options.Validate].
func New[K comparable, V any](opts Options) *Cache[K, V] {
	c, err := NewWithError[K, V](opts)
	if err != nil {
		panic(err)
	}

	return c
}

// NewWithError is like [New] but returns an error for invalid opts.
func NewWithError[K comparable, V any](opts Options) (*Cache[K, V], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if opts.Clock == nil {
		opts.Clock = monotonicClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	c := &Cache[K, V]{
		opts:   opts,
		clock:  opts.Clock,
		logger: opts.Logger,
		index:  make(map[K]int, opts.SizeLimit),
		list:   newRecencyList[K, V](opts.SizeLimit),
	}
	c.lastCleanup = c.clock.Now()

	return c, nil
}

// Options returns a copy of the options the cache was built with.
func (c *Cache[K, V]) Options() Options {
	return c.opts
}

// GetOrCreate returns the value stored for key, creating it with factory
// when key is absent or expired.
//
// A hit refreshes the entry's last access time and marks it most recently
// used; factory is not called. On a miss factory is called exactly once. If it
// fails its error is returned as is and the cache keeps no entry for the
// call. Otherwise configure, when not nil, may adjust the new entry's
// expiration and size before it is inserted. Inserting may evict least
// recently used entries to honor the size and cost limits, but never the new
// entry itself.
//
// factory and configure run while the cache is locked and must not call
// methods of the same cache.
func (c *Cache[K, V]) GetOrCreate(key K, factory func() (V, error), configure func(*Entry)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	c.maybeCleanupLocked(now)
	c.counters.getCalls++

	stale, ok := c.index[key]
	if ok && !c.list.slots[stale].entry.Expired(now) {
		c.touchLocked(stale, now)
		c.counters.hits++

		return c.list.slots[stale].value, nil
	}
	c.counters.misses++

	v, err := factory()
	if err != nil {
		c.counters.factoryErrors++

		var zero V
		return zero, err
	}

	e := Entry{SlidingExpiration: c.opts.SlidingExpiration, Size: 1}
	if configure != nil {
		configure(&e)
	}
	if e.Size < 1 {
		e.Size = 1
	}
	e.touch(now)

	if ok {
		c.removeLocked(stale)
		c.counters.expirations++
	}

	i := c.list.alloc(key, v, e)
	c.index[key] = i
	c.list.linkAtHead(i)
	c.totalCost += e.Size
	c.counters.creates++

	c.evictLocked()

	return v, nil
}

// TryGet returns the value stored for key.
//
// The boolean is false when key is absent or expired; an expired entry is
// removed as a side effect. A hit refreshes the entry's last access time and
// marks it most recently used.
func (c *Cache[K, V]) TryGet(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	c.maybeCleanupLocked(now)
	c.counters.getCalls++

	var zero V

	i, ok := c.index[key]
	if !ok {
		c.counters.misses++

		return zero, false
	}

	if c.list.slots[i].entry.Expired(now) {
		c.removeLocked(i)
		c.counters.expirations++
		c.counters.misses++

		return zero, false
	}

	c.touchLocked(i, now)
	c.counters.hits++

	return c.list.slots[i].value, true
}

// Has returns true if an unexpired entry for key exists in the cache.
//
// Unlike TryGet, Has neither refreshes nor removes the entry.
func (c *Cache[K, V]) Has(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[key]

	return ok && !c.list.slots[i].entry.Expired(c.clock.Now())
}

// Remove deletes the entry for key.
//
// Returns true if the entry was present.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[key]
	if !ok {
		return false
	}

	c.removeLocked(i)
	c.counters.removes++

	return true
}

// Clear removes all the entries from the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.index)
	c.index = make(map[K]int, c.opts.SizeLimit)
	c.list.reset(c.opts.SizeLimit)
	c.totalCost = 0

	c.logger.LogAttrs(context.Background(), slog.LevelDebug, "lrucache: cleared",
		slog.Int("entries", n))
}

// Len returns the number of entries in the cache.
//
// Expired entries count until they are removed by a lookup or a cleanup.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.index)
}

// IsEmpty reports whether the cache holds no entries.
func (c *Cache[K, V]) IsEmpty() bool {
	return c.Len() == 0
}

// CleanupExpired removes every expired entry and returns how many were
// removed.
//
// Unlike the amortized cleanup it visits all entries, so callers with sparse
// access patterns can call it periodically to reclaim memory.
func (c *Cache[K, V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	removed := 0

	for i := c.list.tail; i != nilSlot; {
		prev := c.list.slots[i].prev
		if c.list.slots[i].entry.Expired(now) {
			c.removeLocked(i)
			removed++
		}
		i = prev
	}
	c.counters.expirations += uint64(removed)

	c.logger.LogAttrs(context.Background(), slog.LevelDebug, "lrucache: expired entries cleaned up",
		slog.Int("removed", removed), slog.Int("remaining", len(c.index)))

	return removed
}

// Keys returns an iterator over the keys of unexpired entries, from most to
// least recently used.
//
// The iterator walks a snapshot taken when iteration starts; it does not
// refresh entries and may call other cache methods.
func (c *Cache[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range c.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// All returns an iterator over unexpired key-value pairs, from most to least
// recently used.
//
// The iterator walks a snapshot taken when iteration starts; it does not
// refresh entries and may call other cache methods.
func (c *Cache[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, kv := range c.snapshot() {
			if !yield(kv.key, kv.value) {
				return
			}
		}
	}
}

type pair[K comparable, V any] struct {
	key   K
	value V
}

func (c *Cache[K, V]) snapshot() []pair[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	out := make([]pair[K, V], 0, len(c.index))
	for i := c.list.head; i != nilSlot; i = c.list.slots[i].next {
		s := &c.list.slots[i]
		if !s.entry.Expired(now) {
			out = append(out, pair[K, V]{key: s.key, value: s.value})
		}
	}

	return out
}

// String implements [fmt.Stringer].
func (c *Cache[K, V]) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return fmt.Sprintf("lrucache.Cache{len: %d, cost: %d, sizeLimit: %d, costLimit: %d}",
		len(c.index), c.totalCost, c.opts.SizeLimit, c.opts.CostLimit)
}

func (c *Cache[K, V]) touchLocked(i int, now time.Time) {
	c.list.slots[i].entry.touch(now)
	c.list.moveToHead(i)
}

// removeLocked unlinks slot i, erases its key from the index and frees it.
func (c *Cache[K, V]) removeLocked(i int) {
	s := &c.list.slots[i]
	c.list.unlink(i)
	delete(c.index, s.key)
	c.totalCost -= s.entry.Size
	c.list.release(i)
}

// evictLocked drops least recently used entries until the size and cost
// limits hold. The head, being the most recent insert, is never dropped.
func (c *Cache[K, V]) evictLocked() {
	if c.opts.SizeLimit > 0 {
		for len(c.index) > c.opts.SizeLimit {
			c.evictBackLocked("size")
		}
	}

	if c.opts.CostLimit > 0 {
		for c.totalCost > c.opts.CostLimit && len(c.index) > 1 {
			c.evictBackLocked("cost")
		}
	}
}

func (c *Cache[K, V]) evictBackLocked(reason string) {
	i, ok := c.list.back()
	if !ok {
		return
	}

	c.removeLocked(i)
	c.counters.evictions++

	c.logger.LogAttrs(context.Background(), slog.LevelDebug, "lrucache: evicted least recently used entry",
		slog.String("reason", reason), slog.Int("entries", len(c.index)), slog.Int64("cost", c.totalCost))
}

// maybeCleanupLocked runs an amortized cleanup pass when more than
// BackgroundCleanupInterval has passed since the previous one.
//
// The pass walks from the tail, where entries are the least recently used and
// so most likely expired, and stops after removing maxCleanupPerCycle entries
// or inspecting maxCleanupScan slots.
func (c *Cache[K, V]) maybeCleanupLocked(now time.Time) {
	interval := c.opts.BackgroundCleanupInterval
	if interval <= 0 || now.Sub(c.lastCleanup) <= interval {
		return
	}
	c.lastCleanup = now
	c.counters.cleanupRuns++

	removed, scanned := 0, 0
	for i := c.list.tail; i != nilSlot && removed < maxCleanupPerCycle && scanned < maxCleanupScan; scanned++ {
		prev := c.list.slots[i].prev
		if c.list.slots[i].entry.Expired(now) {
			c.removeLocked(i)
			removed++
		}
		i = prev
	}
	c.counters.expirations += uint64(removed)

	c.logger.LogAttrs(context.Background(), slog.LevelDebug, "lrucache: amortized cleanup",
		slog.Int("removed", removed), slog.Int("scanned", scanned))
}
