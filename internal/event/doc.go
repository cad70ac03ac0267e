// Package event provides a minimal synchronous publish/subscribe
// dispatcher.
//
// The dispatcher is deliberately small: an ordered, deduplicated set of
// listeners invoked in subscription order whenever a payload is published.
// Everything happens on the caller's goroutine - Notify does not return
// until every listener has run. That determinism is the point: the counter
// packages build carry cascades out of nested Notify calls, and the whole
// cascade must complete before the outermost Advance returns.
//
// Listener identity is reference identity. event.Func wraps a plain
// function into a fresh listener value, so two Func calls over the same
// function are distinct subscribers, while subscribing the same listener
// value twice collapses to a single subscription. This mirrors how the
// dispatcher is used internally: each wiring site keeps the listener it
// created and uses it for both subscribe and unsubscribe.
package event
