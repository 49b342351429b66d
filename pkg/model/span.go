package model

import "github.com/goliatone/go-taskform/pkg/signals"

// Span is a grid width. It either holds a literal value or references a
// derived signal; the reference wins when both are set. The zero value means
// "unset" and renders as a full row.
type Span struct {
	Value int          `json:"value,omitempty"`
	Ref   signals.Name `json:"ref,omitempty"`
}

// Fixed returns a literal width.
func Fixed(width int) Span {
	return Span{Value: width}
}

// SpanOf returns a width bound to a derived signal.
func SpanOf(name signals.Name) Span {
	return Span{Ref: name}
}

// IsSet reports whether the span carries a literal or a reference.
func (s Span) IsSet() bool {
	return s.Ref != "" || s.Value != 0
}

// Resolve returns the concrete width for the supplied signals, clamped to the
// grid.
func (s Span) Resolve(sig signals.Signals) int {
	if s.Ref != "" {
		return clampSpan(sig.Span(s.Ref))
	}
	if s.Value == 0 {
		return GridColumns
	}
	return clampSpan(s.Value)
}

func clampSpan(width int) int {
	if width < 0 {
		return 0
	}
	if width > GridColumns {
		return GridColumns
	}
	return width
}

// Flag is a boolean that may reference a derived signal.
type Flag struct {
	Value bool         `json:"value,omitempty"`
	Ref   signals.Name `json:"ref,omitempty"`
}

// FlagOf returns a flag bound to a derived signal.
func FlagOf(name signals.Name) Flag {
	return Flag{Ref: name}
}

// Resolve returns the concrete boolean for the supplied signals.
func (f Flag) Resolve(sig signals.Signals) bool {
	if f.Ref != "" {
		return sig.Flag(f.Ref)
	}
	return f.Value
}
