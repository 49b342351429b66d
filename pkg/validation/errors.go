package validation

import (
	"strings"

	"github.com/goliatone/go-taskform/pkg/model"
)

// ErrorMapping splits messages into field-level entries keyed by the
// descriptor field and form-level entries that belong to no bound field.
type ErrorMapping struct {
	Fields map[string][]string `json:"fields,omitempty"`
	Form   []string            `json:"form,omitempty"`
}

// Collect gathers the messages attached to descriptors. Messages on unbound
// composites are reported at form level.
func Collect(fields []model.Descriptor) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	for _, field := range fields {
		if len(field.Errors) == 0 {
			continue
		}
		if field.Field == "" {
			mapping.Form = append(mapping.Form, field.Errors...)
			continue
		}
		mapping.Fields[field.Field] = normalizeMessages(append(mapping.Fields[field.Field], field.Errors...))
	}
	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// Attach merges externally supplied messages (for example ones surfaced by a
// previous render) into the matching descriptors. Keys that match no
// descriptor field are returned as form-level messages so nothing is lost.
func Attach(fields []model.Descriptor, payload map[string][]string) ([]model.Descriptor, []string) {
	if len(payload) == 0 {
		return fields, nil
	}

	index := make(map[string]int, len(fields))
	for i, field := range fields {
		if field.Field != "" {
			index[field.Field] = i
		}
	}

	out := append([]model.Descriptor(nil), fields...)
	var form []string
	for rawPath, messages := range payload {
		messages = normalizeMessages(messages)
		if len(messages) == 0 {
			continue
		}
		path := normalizePath(rawPath)
		i, ok := index[path]
		if !ok {
			form = append(form, messages...)
			continue
		}
		out[i].Errors = normalizeMessages(append(append([]string(nil), out[i].Errors...), messages...))
	}
	return out, normalizeMessages(form)
}

func normalizePath(raw string) string {
	path := strings.TrimSpace(raw)
	path = strings.TrimPrefix(path, "#")
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimPrefix(path, "$.")
	if idx := strings.IndexAny(path, "./["); idx >= 0 {
		path = path[:idx]
	}
	return path
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
