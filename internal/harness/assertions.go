package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/odo/internal/trace"
)

// AssertionError is returned when an assertion fails. It includes the
// recorded trace so a failing test prints enough context to debug.
type AssertionError struct {
	Type     string        // Assertion type for categorization
	Expected string        // Human-readable expected outcome
	Actual   string        // Human-readable actual outcome
	Trace    []trace.Event // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		switch event.Kind {
		case trace.EventAdvance:
			fmt.Fprintf(&buf, "  [%d] step %d advance -> %v\n", event.Seq, event.Step, event.Snapshot)
		case trace.EventCarry:
			fmt.Fprintf(&buf, "  [%d] step %d carry digit %d -> %d\n", event.Seq, event.Step, event.Digit, event.Value)
		case trace.EventCycle:
			fmt.Fprintf(&buf, "  [%d] step %d cycle %v\n", event.Seq, event.Step, event.Snapshot)
		}
	}
	return buf.String()
}

// evaluate checks one assertion against a run result.
func evaluate(result *Result, assertion Assertion) error {
	switch assertion.Type {
	case AssertSnapshotAt:
		return assertSnapshotAt(result, assertion)
	case AssertFinal:
		return assertFinal(result, assertion)
	case AssertResetCount:
		return assertResetCount(result, assertion)
	case AssertCarryCount:
		return assertCarryCount(result, assertion)
	default:
		// validateScenario rejects unknown types before a run starts.
		return fmt.Errorf("unknown assertion type %q", assertion.Type)
	}
}

// assertSnapshotAt checks the chain snapshot recorded after a specific
// step.
func assertSnapshotAt(result *Result, assertion Assertion) error {
	for _, event := range result.Trace.Events {
		if event.Kind == trace.EventAdvance && event.Step == assertion.Step {
			if slices.Equal(event.Snapshot, assertion.Values) {
				return nil
			}
			return &AssertionError{
				Type:     AssertSnapshotAt,
				Expected: fmt.Sprintf("snapshot %v after step %d", assertion.Values, assertion.Step),
				Actual:   fmt.Sprintf("snapshot %v", event.Snapshot),
				Trace:    result.Trace.Events,
			}
		}
	}
	return &AssertionError{
		Type:     AssertSnapshotAt,
		Expected: fmt.Sprintf("an advance event for step %d", assertion.Step),
		Actual:   "no such step in trace",
		Trace:    result.Trace.Events,
	}
}

// assertFinal checks the chain's state after the last step.
func assertFinal(result *Result, assertion Assertion) error {
	if slices.Equal(result.Final, assertion.Values) {
		return nil
	}
	return &AssertionError{
		Type:     AssertFinal,
		Expected: fmt.Sprintf("final snapshot %v", assertion.Values),
		Actual:   fmt.Sprintf("final snapshot %v", result.Final),
		Trace:    result.Trace.Events,
	}
}

// assertResetCount checks the number of chain-level resets in the run.
func assertResetCount(result *Result, assertion Assertion) error {
	cycles := result.Trace.Cycles()
	if cycles == assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertResetCount,
		Expected: fmt.Sprintf("%d chain reset(s)", assertion.Count),
		Actual:   fmt.Sprintf("%d chain reset(s)", cycles),
		Trace:    result.Trace.Events,
	}
}

// assertCarryCount checks per-digit wrap totals, least-significant
// digit first.
func assertCarryCount(result *Result, assertion Assertion) error {
	carries := result.Trace.Carries(result.DigitCount)
	if slices.Equal(carries, assertion.Counts) {
		return nil
	}
	return &AssertionError{
		Type:     AssertCarryCount,
		Expected: fmt.Sprintf("per-digit wraps %v", assertion.Counts),
		Actual:   fmt.Sprintf("per-digit wraps %v", carries),
		Trace:    result.Trace.Events,
	}
}
