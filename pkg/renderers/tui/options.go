package tui

import (
	"go.uber.org/zap"
)

// OutputFormat controls how the collected state is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits the state as JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML emits the state as YAML, loadable by the render command.
	OutputFormatYAML OutputFormat = "yaml"
)

const defaultMaxAttempts = 5

// Theme captures optional message prefixes the session applies when printing
// notices.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithLauncherPrompt asks for the startup script before walking the form so
// the launcher dependent signals follow the answer.
func WithLauncherPrompt(enabled bool) Option {
	return func(s *Session) {
		s.askLauncher = enabled
	}
}

// WithMaxAttempts bounds how often an invalid answer is re-asked.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLogger attaches a logger for session progress.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
