// Package orchestrator wires the field set → editor → submission → renderer
// sequence, providing dependency injection friendly helpers for callers that
// prefer a single entry point.
package orchestrator
