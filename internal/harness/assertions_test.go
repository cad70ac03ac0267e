package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/odo/internal/trace"
)

func sampleResult() *Result {
	return &Result{
		Trace: trace.Trace{
			Token: DefaultToken,
			Events: []trace.Event{
				{Seq: 1, Kind: trace.EventAdvance, Step: 1, Snapshot: []int{1, 0}},
				{Seq: 2, Kind: trace.EventCarry, Step: 2, Digit: 0, Value: 0},
				{Seq: 3, Kind: trace.EventAdvance, Step: 2, Snapshot: []int{0, 1}},
				{Seq: 4, Kind: trace.EventCycle, Step: 4, Snapshot: []int{0, 0}},
			},
		},
		Final:      []int{0, 1},
		DigitCount: 2,
	}
}

func TestEvaluate_SnapshotAt_Pass(t *testing.T) {
	err := evaluate(sampleResult(), Assertion{Type: AssertSnapshotAt, Step: 2, Values: []int{0, 1}})
	assert.NoError(t, err)
}

func TestEvaluate_SnapshotAt_Mismatch(t *testing.T) {
	err := evaluate(sampleResult(), Assertion{Type: AssertSnapshotAt, Step: 2, Values: []int{1, 1}})

	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Expected, "[1 1]")
	assert.Contains(t, ae.Actual, "[0 1]")
}

func TestEvaluate_SnapshotAt_MissingStep(t *testing.T) {
	err := evaluate(sampleResult(), Assertion{Type: AssertSnapshotAt, Step: 9, Values: []int{0, 0}})

	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "no such step in trace", ae.Actual)
}

func TestEvaluate_Final(t *testing.T) {
	assert.NoError(t, evaluate(sampleResult(), Assertion{Type: AssertFinal, Values: []int{0, 1}}))

	err := evaluate(sampleResult(), Assertion{Type: AssertFinal, Values: []int{0, 0}})
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertFinal, ae.Type)
}

func TestEvaluate_ResetCount(t *testing.T) {
	assert.NoError(t, evaluate(sampleResult(), Assertion{Type: AssertResetCount, Count: 1}))

	err := evaluate(sampleResult(), Assertion{Type: AssertResetCount, Count: 2})
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Actual, "1 chain reset")
}

func TestEvaluate_CarryCount(t *testing.T) {
	assert.NoError(t, evaluate(sampleResult(), Assertion{Type: AssertCarryCount, Counts: []int{1, 0}}))

	err := evaluate(sampleResult(), Assertion{Type: AssertCarryCount, Counts: []int{2, 1}})
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
}

func TestAssertionError_MessageIncludesTrace(t *testing.T) {
	err := evaluate(sampleResult(), Assertion{Type: AssertFinal, Values: []int{9, 9}})
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: final")
	assert.Contains(t, msg, "Full trace:")
	assert.Contains(t, msg, "carry digit 0")
}
