// Package trace records deterministic traces of chain runs.
//
// A Recorder attaches to a counter.Chain and observes every digit reset
// (carry) and every chain-level reset (cycle) while driving the chain
// step by step. Each trace event is stamped with a monotonic logical
// sequence number - never a wall-clock timestamp - so two runs of the
// same chain produce byte-identical traces.
//
// Traces serialize to canonical JSON (NFC-normalized strings, UTF-16
// key ordering, no HTML escaping) and hash to a stable digest, which is
// how the CLI and the conformance harness compare runs.
package trace
