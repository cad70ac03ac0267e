package counter

import (
	"iter"

	"github.com/roach88/odo/internal/event"
)

// untilReset builds the one-traversal lazy sequence shared by Counter
// and Chain.
//
// Lifecycle: when the sequence is ranged it subscribes a private
// wrap-flag listener to resets, yields the live value as the first
// element, then advances once per pull until the flag is set. The
// deferred unsubscribe runs on every exit path - natural exhaustion, a
// consumer break, or a panic in the loop body - so an abandoned loop
// never leaves the flag listener behind.
//
// The flag is also checked before each advance: if the underlying value
// source wrapped between pulls (e.g. the consumer advanced it manually),
// the sequence ends without producing a further element.
func untilReset[V any](resets *event.Dispatcher[V], current func() V, advance func()) iter.Seq[V] {
	return func(yield func(V) bool) {
		wrapped := false
		flag := event.Func(func(V) { wrapped = true })

		// Subscribe cannot fail here: flag is never nil.
		_ = resets.Subscribe(flag)
		defer resets.Unsubscribe(flag)

		if !yield(current()) {
			return
		}
		for {
			if wrapped {
				return
			}
			advance()
			if wrapped {
				return
			}
			if !yield(current()) {
				return
			}
		}
	}
}

// Collect drains a lazy sequence into a slice. Convenience for callers
// that want the materialized traversal.
func Collect[V any](seq iter.Seq[V]) []V {
	var out []V
	for v := range seq {
		out = append(out, v)
	}
	return out
}
