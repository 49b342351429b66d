// Package i18n provides the label lookup used for every descriptor name,
// placeholder and validation message.
package i18n

import "strings"

// MissingHandler decides the string returned when a key cannot be resolved.
type MissingHandler func(locale, key string, err error) string

// Func resolves a dotted key into display text.
type Func func(key string) string

// MissingKey echoes the key back, which keeps forms readable when a bundle is
// incomplete.
func MissingKey(_ string, key string, _ error) string {
	return key
}

// Lookup binds a translator and locale into a Func. A nil translator or an
// empty result is routed through onMissing (MissingKey when nil).
func Lookup(t Translator, locale string, onMissing MissingHandler) Func {
	if onMissing == nil {
		onMissing = MissingKey
	}
	return func(key string) string {
		key = strings.TrimSpace(key)
		if key == "" {
			return ""
		}
		if t == nil {
			return onMissing(locale, key, ErrMissingTranslator)
		}
		msg, err := t.Translate(locale, key)
		if err != nil || strings.TrimSpace(msg) == "" {
			return onMissing(locale, key, err)
		}
		return msg
	}
}
