package lrucache

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultSlidingExpiration is the time-to-live since last access applied by
// [DefaultOptions].
const DefaultSlidingExpiration = time.Hour

// Options configures a [Cache].
//
// Options are copied by [New]; changing them afterwards has no effect on the
// cache. Start from [DefaultOptions] rather than the zero value: a zero
// SlidingExpiration expires every entry as soon as the clock moves.
type Options struct {
	// SizeLimit is the maximum number of entries. Zero means unbounded.
	SizeLimit int

	// SlidingExpiration is the default time-to-live since last access for
	// entries that don't override it.
	SlidingExpiration time.Duration

	// BackgroundCleanupInterval is the minimum gap between amortized cleanup
	// passes run by TryGet and GetOrCreate. Zero disables them.
	BackgroundCleanupInterval time.Duration

	// CostLimit caps the sum of [Entry.Size] over all entries. Zero means no
	// weighted limit.
	CostLimit int64

	// Clock is the time source. Nil means the monotonic system clock.
	Clock Clock

	// Logger receives debug events. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns unbounded options with a one hour sliding expiration
// and amortized cleanup disabled.
func DefaultOptions() Options {
	return Options{
		SlidingExpiration: DefaultSlidingExpiration,
	}
}

// Validate reports whether o can be used to build a cache.
func (o Options) Validate() error {
	switch {
	case o.SizeLimit < 0:
		return fmt.Errorf("%w: SizeLimit must not be negative; got %d", ErrInvalidOptions, o.SizeLimit)
	case o.SlidingExpiration < 0:
		return fmt.Errorf("%w: SlidingExpiration must not be negative; got %s", ErrInvalidOptions, o.SlidingExpiration)
	case o.BackgroundCleanupInterval < 0:
		return fmt.Errorf("%w: BackgroundCleanupInterval must not be negative; got %s", ErrInvalidOptions, o.BackgroundCleanupInterval)
	case o.CostLimit < 0:
		return fmt.Errorf("%w: CostLimit must not be negative; got %d", ErrInvalidOptions, o.CostLimit)
	}

	return nil
}

// envOptions holds the subset of Options that can come from the environment.
type envOptions struct {
	SizeLimit                 int           `env:"SIZE_LIMIT" envDefault:"0"`
	SlidingExpiration         time.Duration `env:"SLIDING_EXPIRATION" envDefault:"1h"`
	BackgroundCleanupInterval time.Duration `env:"BACKGROUND_CLEANUP_INTERVAL" envDefault:"0s"`
	CostLimit                 int64         `env:"COST_LIMIT" envDefault:"0"`
}

// LoadOptions reads Options from environment variables named with the given
// prefix:
//
//	<prefix>SIZE_LIMIT                   int, default 0
//	<prefix>SLIDING_EXPIRATION           duration, default 1h
//	<prefix>BACKGROUND_CLEANUP_INTERVAL  duration, default 0s
//	<prefix>COST_LIMIT                   int, default 0
//
// Durations use [time.ParseDuration] syntax. Clock and Logger are left nil.
func LoadOptions(prefix string) (Options, error) {
	var eo envOptions
	if err := env.ParseWithOptions(&eo, env.Options{Prefix: prefix}); err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrParsingOptions, err)
	}

	o := Options{
		SizeLimit:                 eo.SizeLimit,
		SlidingExpiration:         eo.SlidingExpiration,
		BackgroundCleanupInterval: eo.BackgroundCleanupInterval,
		CostLimit:                 eo.CostLimit,
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}

	return o, nil
}
