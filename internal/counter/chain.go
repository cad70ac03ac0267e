package counter

import (
	"iter"

	"github.com/roach88/odo/internal/event"
)

// Chain composes an ordered sequence of Counters into a mixed-radix
// counter. Digits are least-significant first and fixed after
// construction.
//
// Wiring, performed once in NewChain:
//   - each digit i < len-1 carries: its reset advances digit i+1;
//   - the last digit's reset fires the chain's own dispatcher with a
//     materialized snapshot of all digit values at that instant.
//
// Treating each digit as a place value with radix Span, one chain
// Advance is exactly one increment of a mixed-radix number: it always
// mutates digit 0, and a digit's wrap is precisely the carry condition.
// The chain's own reset therefore fires once per Radix() advances, when
// every digit has simultaneously wrapped to its lower bound.
type Chain struct {
	digits []*Counter
	resets *event.Dispatcher[[]int]
}

// NewChain creates a chain over the given digits, least-significant
// first. Returns a *ConstructError when no digits are supplied or any
// digit is nil.
func NewChain(digits ...*Counter) (*Chain, error) {
	if len(digits) == 0 {
		return nil, &ConstructError{
			Code:    ErrCodeEmptyChain,
			Message: "chain requires at least one digit",
		}
	}
	for i, d := range digits {
		if d == nil {
			return nil, &ConstructError{
				Code:    ErrCodeNilDigit,
				Message: "chain digit is nil",
				Digit:   i,
			}
		}
	}

	ch := &Chain{
		digits: make([]*Counter, len(digits)),
		resets: event.NewDispatcher[[]int](),
	}
	copy(ch.digits, digits)

	// Carry wiring. Listeners are created per digit so each has its own
	// identity, and they are subscribed before any caller can attach
	// listeners of their own, keeping the cascade ahead of observers.
	for i := 0; i < len(ch.digits)-1; i++ {
		next := ch.digits[i+1]
		_ = ch.digits[i].OnReset(event.Func(func(int) {
			next.Advance()
		}))
	}
	last := ch.digits[len(ch.digits)-1]
	_ = last.OnReset(event.Func(func(int) {
		// Snapshot at the instant of the full wrap: every lower digit
		// has already reset by the time the last digit's listener runs.
		ch.resets.Notify(ch.Current())
	}))

	return ch, nil
}

// MustNewChain is NewChain that panics on construction errors.
func MustNewChain(digits ...*Counter) *Chain {
	ch, err := NewChain(digits...)
	if err != nil {
		panic(err)
	}
	return ch
}

// Current returns a materialized snapshot of all digit values,
// least-significant first. The slice is freshly allocated; later
// advances do not mutate it.
func (ch *Chain) Current() []int {
	snapshot := make([]int, len(ch.digits))
	for i, d := range ch.digits {
		snapshot[i] = d.Current()
	}
	return snapshot
}

// Values returns a lazy, live read of the digit values in digit order.
// Unlike Current it is not a snapshot: a consumer that advances the
// chain between pulls observes post-mutation state in later elements.
func (ch *Chain) Values() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, d := range ch.digits {
			if !yield(d.Current()) {
				return
			}
		}
	}
}

// Len returns the number of digits.
func (ch *Chain) Len() int {
	return len(ch.digits)
}

// Digit returns the i-th digit (least-significant first).
func (ch *Chain) Digit(i int) *Counter {
	return ch.digits[i]
}

// Radix returns the total number of distinct chain states: the product
// of all digit spans. The chain's own reset fires once per Radix
// advances.
func (ch *Chain) Radix() int {
	product := 1
	for _, d := range ch.digits {
		product *= d.Span()
	}
	return product
}

// Advance steps the chain by one. Only digit 0 is touched directly;
// carries and the possible chain-level reset happen purely as a cascade
// of the internal subscriptions, all before Advance returns.
func (ch *Chain) Advance() {
	ch.digits[0].Advance()
}

// OnReset subscribes l to the chain's own reset, fired exactly when the
// most-significant digit wraps. The payload is the digit snapshot taken
// at that instant (all digits at their lower bounds).
func (ch *Chain) OnReset(l event.Listener[[]int]) error {
	return ch.resets.Subscribe(l)
}

// OffReset removes a previously subscribed chain reset listener.
func (ch *Chain) OffReset(l event.Listener[[]int]) {
	ch.resets.Unsubscribe(l)
}

// ResetListeners returns the number of live chain-level reset
// subscribers. Exposed for leak checks around UntilReset.
func (ch *Chain) ResetListeners() int {
	return ch.resets.Count()
}

// UntilReset returns a lazy sequence of digit snapshots from the chain's
// live state until its next reset: exactly Radix() elements when the
// traversal starts with every digit at its lower bound. Same lifecycle
// guarantees as Counter.UntilReset.
func (ch *Chain) UntilReset() iter.Seq[[]int] {
	return untilReset(ch.resets, ch.Current, ch.Advance)
}
