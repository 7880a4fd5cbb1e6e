package lrucache

import "time"

// Entry is the per-key metadata kept next to every cached value.
//
// GetOrCreate hands a freshly built Entry to its configure callback before
// insertion, so callers can override the expiration and size of a single
// entry.
type Entry struct {
	// SlidingExpiration is the time-to-live since last access. The entry
	// expires once more than SlidingExpiration has passed since LastAccessed.
	SlidingExpiration time.Duration

	// Size is the cost charged against [Options.CostLimit]. Values below 1
	// are stored as 1.
	Size int64

	lastAccessed time.Time
}

// LastAccessed returns the time of the last successful read or write.
func (e *Entry) LastAccessed() time.Time {
	return e.lastAccessed
}

// Expired reports whether the entry is expired at now.
func (e *Entry) Expired(now time.Time) bool {
	return now.Sub(e.lastAccessed) > e.SlidingExpiration
}

func (e *Entry) touch(now time.Time) {
	e.lastAccessed = now
}
