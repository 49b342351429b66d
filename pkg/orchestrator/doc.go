// Package orchestrator wires the selection state → schema generator →
// validation → renderer pipeline behind a single entry point for the CLI and
// the HTTP service.
package orchestrator
