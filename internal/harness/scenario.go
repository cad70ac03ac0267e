package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: a chain, a number of
// advances to drive it through, and assertions over the recorded trace.
type Scenario struct {
	// Name uniquely identifies this scenario. It is also the golden
	// file name for golden comparisons.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Defn is a path to a CUE chain definition. Mutually exclusive with
	// Digits. Relative paths resolve against the scenario file's
	// directory when loaded through LoadScenario.
	Defn string `yaml:"defn,omitempty"`

	// Digits defines the chain inline, least-significant digit first.
	Digits []DigitDef `yaml:"digits,omitempty"`

	// Steps is the number of chain-level advances to execute.
	Steps int `yaml:"steps"`

	// Token is an optional fixed run token. Defaults to
	// "test-run-default" for deterministic golden file comparison.
	Token string `yaml:"token,omitempty"`

	// Assertions validate the recorded trace and final state.
	// Supported types: snapshot_at, final, reset_count, carry_count.
	Assertions []Assertion `yaml:"assertions"`
}

// DigitDef is an inline digit definition.
type DigitDef struct {
	Upper int  `yaml:"upper"`
	Lower int  `yaml:"lower,omitempty"`
	Start *int `yaml:"start,omitempty"`
}

// Assertion validates the trace or final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "snapshot_at": chain snapshot after step Step equals Values
	// - "final": final chain snapshot equals Values
	// - "reset_count": chain-level resets in the run equal Count
	// - "carry_count": per-digit wrap totals equal Counts
	Type string `yaml:"type"`

	// Step is the 1-based step number (snapshot_at only).
	Step int `yaml:"step,omitempty"`

	// Values are expected digit values, least-significant first
	// (snapshot_at, final).
	Values []int `yaml:"values,omitempty"`

	// Count is the expected chain reset total (reset_count).
	Count int `yaml:"count,omitempty"`

	// Counts are expected per-digit wrap totals (carry_count).
	Counts []int `yaml:"counts,omitempty"`
}

// Assertion type constants.
const (
	AssertSnapshotAt = "snapshot_at"
	AssertFinal      = "final"
	AssertResetCount = "reset_count"
	AssertCarryCount = "carry_count"
)

// DefaultToken is the run token used when a scenario does not fix one.
const DefaultToken = "test-run-default"

// LoadScenario reads and parses a scenario YAML file. Relative Defn
// paths are resolved against the scenario file's directory. Returns an
// error for malformed YAML, unknown fields (typos), or missing required
// fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" for
	// "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Defn != "" && !filepath.IsAbs(scenario.Defn) {
		scenario.Defn = filepath.Join(filepath.Dir(path), scenario.Defn)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Defn == "" && len(s.Digits) == 0 {
		return fmt.Errorf("either defn or digits is required")
	}
	if s.Defn != "" && len(s.Digits) > 0 {
		return fmt.Errorf("defn and digits are mutually exclusive")
	}
	if s.Steps <= 0 {
		return fmt.Errorf("steps must be positive")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	if s.Defn != "" {
		if _, err := os.Stat(s.Defn); os.IsNotExist(err) {
			return fmt.Errorf("definition file not found: %s", s.Defn)
		}
	}
	for i, a := range s.Assertions {
		switch a.Type {
		case AssertSnapshotAt:
			if a.Step <= 0 || a.Step > s.Steps {
				return fmt.Errorf("assertions[%d]: step %d outside run of %d steps", i, a.Step, s.Steps)
			}
			if len(a.Values) == 0 {
				return fmt.Errorf("assertions[%d]: values is required", i)
			}
		case AssertFinal:
			if len(a.Values) == 0 {
				return fmt.Errorf("assertions[%d]: values is required", i)
			}
		case AssertResetCount:
			// Zero is a meaningful expectation; nothing to validate.
		case AssertCarryCount:
			if len(a.Counts) == 0 {
				return fmt.Errorf("assertions[%d]: counts is required", i)
			}
		default:
			return fmt.Errorf("assertions[%d]: unknown type %q", i, a.Type)
		}
	}
	return nil
}
