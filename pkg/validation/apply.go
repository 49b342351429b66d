package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-taskform/pkg/model"
)

// Apply runs the required check and the validator of every visible descriptor
// against values, attaching the resulting messages to the descriptor. Hidden
// descriptors are left untouched. requiredMessage is used when a required
// descriptor carries no message of its own.
func Apply(schema model.Schema, values map[string]any, requiredMessage string) model.Schema {
	out := model.Schema{
		Signals: schema.Signals,
		Fields:  make([]model.Descriptor, len(schema.Fields)),
	}
	for i, field := range schema.Fields {
		out.Fields[i] = applyField(field, schema, values, requiredMessage)
	}
	return out
}

func applyField(field model.Descriptor, schema model.Schema, values map[string]any, requiredMessage string) model.Descriptor {
	if field.Field == "" || field.Span.Resolve(schema.Signals) == 0 {
		return field
	}

	raw := values[field.Field]
	var messages []string

	if field.Required(schema.Signals) && IsEmpty(raw) {
		msg := requiredMessage
		if field.Validate != nil && strings.TrimSpace(field.Validate.Message) != "" {
			msg = field.Validate.Message
		}
		messages = append(messages, msg)
	}
	if field.Validate != nil && field.Validate.Validator != nil {
		if err := field.Validate.Validator(Stringify(raw)); err != nil {
			messages = append(messages, err.Error())
		}
	}

	field.Errors = normalizeMessages(append(append([]string(nil), field.Errors...), messages...))
	return field
}

// Stringify renders a bound value as the text a validator inspects.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *int:
		if v == nil {
			return ""
		}
		return fmt.Sprint(*v)
	case []int:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = fmt.Sprint(n)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

// IsEmpty reports whether a bound value counts as missing for a required
// descriptor. Booleans are never empty.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case *int:
		return v == nil
	case []int:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

// Valid reports whether no descriptor carries an error.
func Valid(fields []model.Descriptor) bool {
	for _, field := range fields {
		if len(field.Errors) > 0 {
			return false
		}
	}
	return true
}
