package validation

import (
	"errors"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// SchemaIssue is one failure reported while checking a document against the
// exported form schema.
type SchemaIssue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// SchemaValidationResult captures the outcome of a schema check.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

// SchemaResult turns the error returned by openapi3.Schema.VisitJSON into a
// result. A nil error is a valid result.
func SchemaResult(err error) SchemaValidationResult {
	issues := SchemaIssues(err)
	return SchemaValidationResult{Valid: len(issues) == 0, Issues: issues}
}

// SchemaIssues flattens VisitJSON errors, including the ones collected with
// openapi3.MultiErrors, into issues keyed by field path.
func SchemaIssues(err error) []SchemaIssue {
	if err == nil {
		return nil
	}

	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []SchemaIssue
		for _, inner := range multi {
			out = append(out, SchemaIssues(inner)...)
		}
		return out
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		path := ""
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			path = "/" + strings.Join(pointer, "/")
		}
		return []SchemaIssue{{
			Path:    path,
			Field:   fieldPathFromPointer(path),
			Message: strings.TrimSpace(schemaErr.Reason),
		}}
	}

	return []SchemaIssue{issueFromError(err)}
}

func issueFromError(err error) SchemaIssue {
	msg := strings.TrimSpace(err.Error())
	path := extractJSONPointer(msg)
	if path != "" {
		msg = strings.Replace(msg, " at "+path, "", 1)
	}
	return SchemaIssue{
		Path:    path,
		Field:   fieldPathFromPointer(path),
		Message: strings.TrimSpace(msg),
	}
}

func extractJSONPointer(message string) string {
	if idx := strings.LastIndex(message, " at "); idx >= 0 {
		return trimPointer(message[idx+4:])
	}
	if idx := strings.LastIndex(message, "#/"); idx >= 0 {
		return trimPointer(message[idx:])
	}
	return ""
}

func trimPointer(pointer string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(pointer), ".)];,"))
}

// fieldPathFromPointer maps a JSON pointer onto a dotted field path. Schema
// keywords are dropped so pointers into the schema and into a document
// resolve to the same path.
func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(pointer), "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}

	parts := strings.Split(trimmed, "/")
	out := make([]string, 0, len(parts))
	for idx := 0; idx < len(parts); idx++ {
		segment := unescapePointer(parts[idx])
		switch segment {
		case "":
			continue
		case "properties":
			if idx+1 < len(parts) {
				out = append(out, unescapePointer(parts[idx+1]))
				idx++
			}
		case "items":
			out = append(out, "items")
		default:
			out = append(out, segment)
		}
	}
	return strings.Join(out, ".")
}

func unescapePointer(segment string) string {
	segment = strings.ReplaceAll(segment, "~1", "/")
	return strings.ReplaceAll(segment, "~0", "~")
}
