// Package counter implements bounded wrap-around counters and the chains
// that compose them into mixed-radix "odometer" counters.
//
// ARCHITECTURE:
//
// Two types share one contract. Counter is a single digit: an integer
// cycling through a half-open range, raising a reset notification each
// time it wraps from its maximum back to its lower bound. Chain composes
// an ordered sequence of Counters (least-significant digit first) and
// wires each digit's reset to the next digit's Advance, reproducing the
// carry of positional arithmetic. Both satisfy Cycler, so application
// code can enumerate a single digit and a whole chain with the same loop.
//
// Cascade Semantics:
// Advancing a chain only ever touches digit 0 directly. Every higher
// digit changes purely as a side effect of reset propagation through the
// internal subscriptions, and the whole cascade runs synchronously on the
// caller's goroutine: when Advance returns, every carry it caused has
// been applied and every reset listener has run. The chain's own reset
// fires exactly once per full traversal of the cartesian product of all
// digit ranges.
//
// Deterministic Ordering:
// Carry listeners are subscribed at construction time, before any caller
// can attach their own, so the carry always lands before user listeners
// on the same digit observe the wrap. Listener invocation order within a
// dispatcher is subscription order.
//
// Lazy Iteration:
// UntilReset exposes the walk to the next reset as an iter.Seq. The sequence
// subscribes an internal reset flag when ranged and unsubscribes it on
// every exit path, including a consumer break, so abandoned loops never
// leak a subscription.
package counter
