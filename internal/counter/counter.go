package counter

import (
	"iter"

	"github.com/roach88/odo/internal/event"
)

// Cycler is the contract shared by a single digit and a whole chain:
// something with a current value, a single-step advance that wraps, a
// reset notification, and a lazy one-traversal iteration.
//
// Counter satisfies Cycler[int]; Chain satisfies Cycler[[]int].
type Cycler[V any] interface {
	// Current returns the value without side effects.
	Current() V

	// Advance moves one step, wrapping and notifying on overflow.
	Advance()

	// OnReset subscribes l to reset notifications.
	OnReset(l event.Listener[V]) error

	// OffReset removes a previously subscribed listener.
	OffReset(l event.Listener[V])

	// UntilReset returns a lazy sequence running from the live value at
	// the time the sequence is ranged until the next reset.
	UntilReset() iter.Seq[V]
}

var (
	_ Cycler[int]   = (*Counter)(nil)
	_ Cycler[[]int] = (*Chain)(nil)
)

// Counter is a bounded wrap-around counter over the half-open range
// [lower, upper). Advance is the only mutating operation; on overflow
// the value wraps to lower and the reset dispatcher fires synchronously
// with the post-wrap value.
//
// The invariant lower <= value < upper holds at every observable point,
// including inside reset listeners.
type Counter struct {
	lower  int
	upper  int
	value  int
	resets *event.Dispatcher[int]
}

type config struct {
	lower    int
	start    int
	startSet bool
}

// Option configures counter construction.
type Option func(*config)

// WithLowerBound sets the inclusive lower bound. Defaults to 0.
func WithLowerBound(lower int) Option {
	return func(c *config) {
		c.lower = lower
	}
}

// WithStart sets the initial value. Defaults to the lower bound.
func WithStart(start int) Option {
	return func(c *config) {
		c.start = start
		c.startSet = true
	}
}

// New creates a counter over [lower, upper) positioned at the start
// value. Returns a *ConstructError when upper <= lower or when the start
// value falls outside the range.
func New(upper int, opts ...Option) (*Counter, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.startSet {
		cfg.start = cfg.lower
	}

	if upper <= cfg.lower {
		return nil, newBoundsInvertedError(cfg.lower, upper, cfg.start)
	}
	if cfg.start < cfg.lower || cfg.start >= upper {
		return nil, newStartOutOfRangeError(cfg.lower, upper, cfg.start)
	}

	return &Counter{
		lower:  cfg.lower,
		upper:  upper,
		value:  cfg.start,
		resets: event.NewDispatcher[int](),
	}, nil
}

// MustNew is New that panics on construction errors. Intended for wiring
// with compile-time-constant bounds.
func MustNew(upper int, opts ...Option) *Counter {
	c, err := New(upper, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Current returns the counter's value. Pure read, no side effects.
func (c *Counter) Current() int {
	return c.value
}

// Bounds returns the inclusive lower and exclusive upper bound.
func (c *Counter) Bounds() (lower, upper int) {
	return c.lower, c.upper
}

// Span returns the number of distinct values the counter cycles through,
// i.e. its radix when used as a chain digit.
func (c *Counter) Span() int {
	return c.upper - c.lower
}

// Advance increments the value by one step. When the increment would
// reach the upper bound the value wraps to the lower bound and every
// reset listener is notified, synchronously, with the post-wrap value
// before Advance returns.
func (c *Counter) Advance() {
	c.value++
	if c.value >= c.upper {
		c.value = c.lower
		c.resets.Notify(c.value)
	}
}

// OnReset subscribes l to this counter's reset notifications. The
// payload is the post-wrap value, i.e. the lower bound.
func (c *Counter) OnReset(l event.Listener[int]) error {
	return c.resets.Subscribe(l)
}

// OffReset removes a previously subscribed reset listener. Removing a
// listener that was never subscribed is a no-op.
func (c *Counter) OffReset(l event.Listener[int]) {
	c.resets.Unsubscribe(l)
}

// ResetListeners returns the number of live reset subscribers. Exposed
// for leak checks around UntilReset.
func (c *Counter) ResetListeners() int {
	return c.resets.Count()
}

// UntilReset returns a lazy sequence producing the counter's values from
// its live state at sequence start until the next wrap, ending without
// yielding the post-wrap value: exactly Span() elements when the
// traversal starts at the lower bound. The sequence is restartable; each
// call consumes the counter's state afresh. See untilReset for the
// subscription lifecycle.
func (c *Counter) UntilReset() iter.Seq[int] {
	return untilReset(c.resets, c.Current, c.Advance)
}
