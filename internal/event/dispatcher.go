package event

import "errors"

// ErrNilListener is returned by Subscribe when given a nil listener.
// A nil listener is the only runtime-invalid subscriber; everything else
// is enforced by the type system at compile time.
var ErrNilListener = errors.New("event: nil listener")

// Listener receives payloads published through a Dispatcher.
//
// Implementations must be comparable (pointer receivers are the norm);
// the dispatcher keys its deduplication on listener identity.
type Listener[T any] interface {
	// Handle is invoked synchronously with the published payload.
	Handle(payload T)
}

// listenerFunc adapts a plain function to the Listener interface.
// Each value has its own identity, so Func(f) != Func(f).
type listenerFunc[T any] struct {
	fn func(T)
}

func (l *listenerFunc[T]) Handle(payload T) {
	l.fn(payload)
}

// Func wraps fn into a fresh Listener. The returned value is the
// subscriber's identity: keep it to unsubscribe later, and subscribe the
// same value twice to observe the dedup no-op.
func Func[T any](fn func(T)) Listener[T] {
	return &listenerFunc[T]{fn: fn}
}

// Dispatcher is an ordered, deduplicated collection of listeners.
//
// Notification is synchronous and single-threaded: Notify invokes every
// listener on the caller's goroutine, in subscription order, and returns
// only when all of them have run. The dispatcher is not safe for
// concurrent use; the counter cascade it serves is strictly sequential.
//
// A listener that panics aborts the remainder of the pass. Nothing is
// recovered or swallowed - the panic surfaces to whoever called Notify.
type Dispatcher[T any] struct {
	listeners []Listener[T]
	index     map[Listener[T]]struct{}
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher[T any]() *Dispatcher[T] {
	return &Dispatcher[T]{
		index: make(map[Listener[T]]struct{}),
	}
}

// Subscribe adds l to the notification list.
//
// Subscribing a listener that is already present is a no-op: the listener
// keeps its original position and is still invoked exactly once per
// Notify. Returns ErrNilListener for a nil listener.
func (d *Dispatcher[T]) Subscribe(l Listener[T]) error {
	if l == nil {
		return ErrNilListener
	}
	if _, ok := d.index[l]; ok {
		return nil
	}
	d.index[l] = struct{}{}
	d.listeners = append(d.listeners, l)
	return nil
}

// Unsubscribe removes l from the notification list. Removing a listener
// that was never subscribed (or a nil listener) is a no-op, not an error.
func (d *Dispatcher[T]) Unsubscribe(l Listener[T]) {
	if l == nil {
		return
	}
	if _, ok := d.index[l]; !ok {
		return
	}
	delete(d.index, l)
	for i, existing := range d.listeners {
		if existing == l {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			break
		}
	}
}

// Notify invokes every currently-subscribed listener in subscription
// order, each receiving the same payload.
//
// The pass iterates over a snapshot of the list taken at entry, so a
// listener that subscribes or unsubscribes others mid-pass does not
// change which listeners this pass invokes. A listener unsubscribing
// itself during its own invocation is allowed but takes effect only for
// subsequent passes.
func (d *Dispatcher[T]) Notify(payload T) {
	if len(d.listeners) == 0 {
		return
	}
	pass := make([]Listener[T], len(d.listeners))
	copy(pass, d.listeners)
	for _, l := range pass {
		l.Handle(payload)
	}
}

// Count returns the number of live subscribers.
func (d *Dispatcher[T]) Count() int {
	return len(d.listeners)
}

// Clear removes all subscribers. Subsequent Notify calls are no-ops
// until someone resubscribes.
func (d *Dispatcher[T]) Clear() {
	d.listeners = nil
	d.index = make(map[Listener[T]]struct{})
}
