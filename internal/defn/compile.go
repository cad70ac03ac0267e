package defn

import (
	"fmt"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/odo/internal/counter"
)

// DigitSpec describes one digit of a chain definition.
type DigitSpec struct {
	// Upper is the exclusive upper bound.
	Upper int

	// Lower is the inclusive lower bound. Defaults to 0.
	Lower int

	// Start is the initial value; meaningful only when StartSet is true,
	// otherwise the digit starts at Lower.
	Start    int
	StartSet bool
}

// Defn is a compiled chain definition: a name plus digits in
// least-significant-first order.
type Defn struct {
	Name   string
	Digits []DigitSpec
}

// Build constructs the wired chain described by the definition. Range
// errors (inverted bounds, out-of-range start) surface here as
// *counter.ConstructError, not at compile time.
func (d *Defn) Build() (*counter.Chain, error) {
	digits := make([]*counter.Counter, len(d.Digits))
	for i, spec := range d.Digits {
		opts := []counter.Option{counter.WithLowerBound(spec.Lower)}
		if spec.StartSet {
			opts = append(opts, counter.WithStart(spec.Start))
		}
		c, err := counter.New(spec.Upper, opts...)
		if err != nil {
			return nil, fmt.Errorf("digit %d: %w", i, err)
		}
		digits[i] = c
	}
	return counter.NewChain(digits...)
}

// CompileError reports a definition that does not fit the expected
// shape, with the CUE source position when one is available.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Compile parses a chain definition out of a CUE value. The value is
// the file root; the definition lives under the "chain" field.
func Compile(root cue.Value) (*Defn, error) {
	if err := root.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	chainVal := root.LookupPath(cue.ParsePath("chain"))
	if !chainVal.Exists() {
		return nil, &CompileError{
			Field:   "chain",
			Message: "chain definition is required",
			Pos:     root.Pos(),
		}
	}

	d := &Defn{}

	nameVal := chainVal.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{
			Field:   "chain.name",
			Message: "name is required",
			Pos:     chainVal.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	d.Name = name

	digitsVal := chainVal.LookupPath(cue.ParsePath("digits"))
	if !digitsVal.Exists() {
		return nil, &CompileError{
			Field:   "chain.digits",
			Message: "digits list is required",
			Pos:     chainVal.Pos(),
		}
	}
	iter, err := digitsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		spec, err := compileDigit(iter.Value(), len(d.Digits))
		if err != nil {
			return nil, err
		}
		d.Digits = append(d.Digits, spec)
	}
	if len(d.Digits) == 0 {
		return nil, &CompileError{
			Field:   "chain.digits",
			Message: "at least one digit is required",
			Pos:     digitsVal.Pos(),
		}
	}

	return d, nil
}

func compileDigit(v cue.Value, index int) (DigitSpec, error) {
	spec := DigitSpec{}
	field := fmt.Sprintf("chain.digits[%d]", index)

	upperVal := v.LookupPath(cue.ParsePath("upper"))
	if !upperVal.Exists() {
		return spec, &CompileError{
			Field:   field + ".upper",
			Message: "upper bound is required",
			Pos:     v.Pos(),
		}
	}
	upper, err := upperVal.Int64()
	if err != nil {
		return spec, formatCUEError(err)
	}
	spec.Upper = int(upper)

	if lowerVal := v.LookupPath(cue.ParsePath("lower")); lowerVal.Exists() {
		lower, err := lowerVal.Int64()
		if err != nil {
			return spec, formatCUEError(err)
		}
		spec.Lower = int(lower)
	}

	if startVal := v.LookupPath(cue.ParsePath("start")); startVal.Exists() {
		start, err := startVal.Int64()
		if err != nil {
			return spec, formatCUEError(err)
		}
		spec.Start = int(start)
		spec.StartSet = true
	}

	return spec, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	pos := cueerrors.Positions(err)
	if len(pos) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: cueerrors.Details(err, nil),
			Pos:     pos[0],
		}
	}
	return &CompileError{Field: "cue", Message: err.Error()}
}
