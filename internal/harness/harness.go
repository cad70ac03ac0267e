// Package harness provides a conformance testing framework for counter
// chains.
//
// A scenario describes a chain (inline digits or a CUE definition), a
// number of advances to drive it through, and assertions over what the
// run recorded: snapshots after specific steps, the final state,
// chain-level reset totals and per-digit wrap totals. Runs execute
// through trace.Recorder with a fixed run token, so the same scenario
// always produces the same trace and can be pinned with a golden file.
package harness

import (
	"fmt"

	"github.com/roach88/odo/internal/counter"
	"github.com/roach88/odo/internal/defn"
	"github.com/roach88/odo/internal/trace"
)

// Result holds the outcome of a scenario run.
type Result struct {
	// Trace is the full recorded trace.
	Trace trace.Trace

	// Final is the chain snapshot after the last step.
	Final []int

	// DigitCount is the number of digits in the executed chain.
	DigitCount int
}

// Run executes a scenario and evaluates its assertions. Assertion
// failures are returned as *AssertionError; construction and definition
// errors pass through from the underlying packages.
func Run(s *Scenario) (*Result, error) {
	ch, err := buildChain(s)
	if err != nil {
		return nil, err
	}

	token := s.Token
	if token == "" {
		token = DefaultToken
	}

	rec := trace.NewRecorder(ch, trace.NewFixedGenerator(token))
	rec.Run(s.Steps)
	rec.Detach()

	result := &Result{
		Trace:      rec.Trace(),
		Final:      ch.Current(),
		DigitCount: ch.Len(),
	}

	for i, assertion := range s.Assertions {
		if err := evaluate(result, assertion); err != nil {
			return result, fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}
	return result, nil
}

func buildChain(s *Scenario) (*counter.Chain, error) {
	if s.Defn != "" {
		d, err := defn.LoadFile(s.Defn)
		if err != nil {
			return nil, err
		}
		return d.Build()
	}

	digits := make([]*counter.Counter, len(s.Digits))
	for i, dd := range s.Digits {
		opts := []counter.Option{counter.WithLowerBound(dd.Lower)}
		if dd.Start != nil {
			opts = append(opts, counter.WithStart(*dd.Start))
		}
		c, err := counter.New(dd.Upper, opts...)
		if err != nil {
			return nil, fmt.Errorf("digits[%d]: %w", i, err)
		}
		digits[i] = c
	}
	return counter.NewChain(digits...)
}
