package lrucache

import "time"

// Clock is the time source used for expiration.
//
// Implementations must never go backward. The default clock returns
// [time.Now], whose monotonic reading makes expiration immune to wall-clock
// adjustments.
type Clock interface {
	Now() time.Time
}

type monotonicClock struct{}

func (monotonicClock) Now() time.Time {
	return time.Now()
}
