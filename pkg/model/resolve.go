package model

import "github.com/goliatone/go-taskform/pkg/signals"

// Resolved is a descriptor with every signal reference replaced by its value
// for one snapshot. It is the shape renderers serialise.
type Resolved struct {
	Type     FieldType  `json:"type"`
	Field    string     `json:"field,omitempty"`
	Name     string     `json:"name"`
	Span     int        `json:"span"`
	Hidden   bool       `json:"hidden,omitempty"`
	Required bool       `json:"required"`
	Trigger  []string   `json:"trigger,omitempty"`
	Message  string     `json:"message,omitempty"`
	Props    Props      `json:"props,omitempty"`
	Value    any        `json:"value,omitempty"`
	Options  []Option   `json:"options,omitempty"`
	Children []Resolved `json:"children,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// Resolve evaluates span and required references against sig.
func (d Descriptor) Resolve(sig signals.Signals) Resolved {
	span := d.Span.Resolve(sig)
	out := Resolved{
		Type:     d.Type,
		Field:    d.Field,
		Name:     d.Name,
		Span:     span,
		Hidden:   span == 0,
		Required: d.Required(sig),
		Props:    copyProps(d.Props),
		Value:    d.Value,
		Options:  append([]Option(nil), d.Options...),
		Errors:   append([]string(nil), d.Errors...),
	}
	if d.Validate != nil {
		out.Trigger = append([]string(nil), d.Validate.Trigger...)
		out.Message = d.Validate.Message
	}
	if len(d.Children) > 0 {
		out.Children = ResolveAll(d.Children, sig)
	}
	return out
}

// ResolveAll resolves a descriptor sequence preserving order.
func ResolveAll(fields []Descriptor, sig signals.Signals) []Resolved {
	if len(fields) == 0 {
		return nil
	}
	out := make([]Resolved, len(fields))
	for i, field := range fields {
		out[i] = field.Resolve(sig)
	}
	return out
}

// Visible filters out hidden descriptors.
func Visible(fields []Resolved) []Resolved {
	out := make([]Resolved, 0, len(fields))
	for _, field := range fields {
		if field.Hidden {
			continue
		}
		out = append(out, field)
	}
	return out
}

func copyProps(in Props) Props {
	if len(in) == 0 {
		return nil
	}
	out := make(Props, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
