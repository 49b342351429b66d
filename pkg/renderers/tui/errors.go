package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when a field keeps failing validation.
	ErrTooManyAttempts = errors.New("tui: too many invalid answers")
	// ErrUnsupportedOutput is returned for an unknown output format.
	ErrUnsupportedOutput = errors.New("tui: unsupported output format")
)
