// Package defn loads and compiles CUE chain definitions.
//
// A definition names a chain and lists its digits, least-significant
// first:
//
//	chain: {
//		name: "clock"
//		digits: [
//			{upper: 60},             // seconds
//			{upper: 60},             // minutes
//			{upper: 24},             // hours
//		]
//	}
//
// Each digit takes an exclusive upper bound, an optional inclusive lower
// bound (default 0) and an optional start value (default lower). The
// compiler validates shape and types against the CUE value and reports
// structured errors with source positions; range validation is left to
// the counter constructors so definition files and direct construction
// fail identically.
package defn
