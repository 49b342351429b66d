// Package validation holds the descriptor-level validators used by the task
// form and the pass that attaches their messages to descriptors. Validation
// never fails the caller: every problem becomes a message on the descriptor
// it belongs to.
package validation

import (
	"errors"
	"strings"

	"github.com/goliatone/go-taskform/pkg/model"
)

// ParseLeadingInt reads an optionally signed integer prefix after leading
// whitespace, ignoring any trailing characters. It reports false when no
// digit is found. Values that overflow are still reported as integers.
func ParseLeadingInt(raw string) (int64, bool) {
	s := strings.TrimLeft(raw, " \t\n\r\v\f")
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	var n int64
	digits := 0
	for digits < len(s) {
		ch := s[digits]
		if ch < '0' || ch > '9' {
			break
		}
		if n < (1<<62)/10 {
			n = n*10 + int64(ch-'0')
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if negative {
		n = -n
	}
	return n, true
}

// Integer accepts empty input and any value with a leading integer, and
// rejects everything else with message.
func Integer(message string) model.ValidatorFunc {
	return func(value string) error {
		if value == "" {
			return nil
		}
		if _, ok := ParseLeadingInt(value); !ok {
			return errors.New(message)
		}
		return nil
	}
}

// RequiredWhen rejects empty input while active reports true. It is evaluated
// on every call so the condition follows the current selections.
func RequiredWhen(active func() bool, message string) model.ValidatorFunc {
	return func(value string) error {
		if active != nil && active() && value == "" {
			return errors.New(message)
		}
		return nil
	}
}
