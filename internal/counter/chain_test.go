package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/odo/internal/event"
)

func TestNewChain_Empty(t *testing.T) {
	ch, err := NewChain()
	assert.Nil(t, ch)

	var ce *ConstructError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeEmptyChain, ce.Code)
}

func TestNewChain_NilDigit(t *testing.T) {
	ch, err := NewChain(MustNew(2), nil, MustNew(2))
	assert.Nil(t, ch)

	var ce *ConstructError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeNilDigit, ce.Code)
	assert.Equal(t, 1, ce.Digit)
}

func TestNewChain_FromSlice(t *testing.T) {
	digits := []*Counter{MustNew(2), MustNew(5)}
	ch, err := NewChain(digits...)
	require.NoError(t, err)
	assert.Equal(t, 2, ch.Len())
}

func TestChain_Current_Snapshot(t *testing.T) {
	ch := MustNewChain(MustNew(2), MustNew(5))

	snap := ch.Current()
	assert.Equal(t, []int{0, 0}, snap)

	ch.Advance()
	assert.Equal(t, []int{0, 0}, snap, "snapshot must not change after advance")
	assert.Equal(t, []int{1, 0}, ch.Current())
}

func TestChain_Values_LiveRead(t *testing.T) {
	ch := MustNewChain(MustNew(2), MustNew(5))
	ch.Advance() // [1, 0]

	var got []int
	for v := range ch.Values() {
		got = append(got, v)
		// Mutate mid-drain: later-read elements reflect the new state.
		ch.Advance() // wraps digit 0, carries into digit 1
	}
	assert.Equal(t, []int{1, 1}, got, "second element read after the carry")
}

func TestChain_Advance_CarrySequence(t *testing.T) {
	// Scenario: [Counter(2), Counter(5)], ten advances walk the full
	// cartesian product and end with exactly one chain reset.
	ch := MustNewChain(MustNew(2), MustNew(5))

	resets := 0
	require.NoError(t, ch.OnReset(event.Func(func([]int) { resets++ })))

	want := [][]int{
		{1, 0}, {0, 1}, {1, 1}, {0, 2}, {1, 2},
		{0, 3}, {1, 3}, {0, 4}, {1, 4}, {0, 0},
	}
	for i, expected := range want {
		ch.Advance()
		assert.Equal(t, expected, ch.Current(), "after advance %d", i+1)
	}
	assert.Equal(t, 1, resets)
}

func TestChain_Reset_OncePerRadix(t *testing.T) {
	cases := []struct {
		name   string
		digits []*Counter
	}{
		{"three binary digits", []*Counter{MustNew(2), MustNew(2), MustNew(2)}},
		{"mixed radix", []*Counter{MustNew(3), MustNew(4)}},
		{"offset bounds", []*Counter{MustNew(7, WithLowerBound(2)), MustNew(4, WithLowerBound(1))}},
		{"single digit", []*Counter{MustNew(5)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ch := MustNewChain(tc.digits...)
			radix := ch.Radix()

			resets := 0
			require.NoError(t, ch.OnReset(event.Func(func([]int) { resets++ })))

			for i := 0; i < radix; i++ {
				ch.Advance()
				if i < radix-1 {
					require.Equal(t, 0, resets, "no reset before advance %d of %d", i+1, radix)
				}
			}
			assert.Equal(t, 1, resets, "exactly one reset per %d advances", radix)

			// And once more around.
			for i := 0; i < radix; i++ {
				ch.Advance()
			}
			assert.Equal(t, 2, resets)
		})
	}
}

func TestChain_Reset_PayloadIsFrozenSnapshot(t *testing.T) {
	ch := MustNewChain(MustNew(2), MustNew(2))

	var payload []int
	require.NoError(t, ch.OnReset(event.Func(func(snap []int) { payload = snap })))

	for i := 0; i < 4; i++ {
		ch.Advance()
	}
	require.Equal(t, []int{0, 0}, payload, "snapshot at the instant of the wrap")

	ch.Advance()
	assert.Equal(t, []int{0, 0}, payload, "payload must not track later state")
}

func TestChain_IntermediateDigitDoesNotFireChainReset(t *testing.T) {
	ch := MustNewChain(MustNew(2), MustNew(3))

	resets := 0
	require.NoError(t, ch.OnReset(event.Func(func([]int) { resets++ })))

	// Digit 0 wraps twice here, digit 1 never does.
	for i := 0; i < 4; i++ {
		ch.Advance()
	}
	assert.Equal(t, 0, resets)
}

func TestChain_CarryRunsBeforeUserListeners(t *testing.T) {
	d0 := MustNew(2)
	ch := MustNewChain(d0, MustNew(3))

	var seenDigit1 int
	require.NoError(t, d0.OnReset(event.Func(func(int) {
		seenDigit1 = ch.Digit(1).Current()
	})))

	ch.Advance()
	ch.Advance() // digit 0 wraps, carry fires first
	assert.Equal(t, 1, seenDigit1, "carry subscribed at construction precedes user listeners")
}

func TestChain_Radix(t *testing.T) {
	ch := MustNewChain(
		MustNew(2),
		MustNew(7, WithLowerBound(2)),
		MustNew(4, WithLowerBound(1)),
	)
	assert.Equal(t, 2*5*3, ch.Radix())
}

func TestChain_OffReset(t *testing.T) {
	ch := MustNewChain(MustNew(2))

	resets := 0
	l := event.Func(func([]int) { resets++ })
	require.NoError(t, ch.OnReset(l))
	ch.OffReset(l)

	ch.Advance()
	ch.Advance()
	assert.Equal(t, 0, resets)
}
