package trace

import "sync/atomic"

// Clock is a monotonic logical clock for trace event ordering.
//
// Every trace event is stamped with a strictly increasing seq number
// from this clock. Ordering by seq is deterministic and replayable;
// wall-clock timestamps are never used.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// although the recorder that owns it is strictly single-threaded.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
