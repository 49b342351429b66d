package model

import (
	"github.com/goliatone/go-taskform/pkg/signals"
)

// FieldType is the widget kind tag understood by renderers.
type FieldType string

const (
	FieldTypeInput            FieldType = "input"
	FieldTypeInputNumber      FieldType = "input-number"
	FieldTypeSwitch           FieldType = "switch"
	FieldTypeSelect           FieldType = "select"
	FieldTypeEditor           FieldType = "editor"
	FieldTypeResources        FieldType = "resources"
	FieldTypeCustomParameters FieldType = "custom-parameters"
)

// GridColumns is the width of a full form row.
const GridColumns = signals.Full

// Prop keys used across the built-in descriptors.
const (
	PropPlaceholder = "placeholder"
	PropMin         = "min"
	PropMax         = "max"
	PropMultiple    = "multiple"
	PropLimit       = "limit"
	PropMode        = "mode"
	PropWidget      = "widget"
)

// Validation trigger events.
const (
	TriggerInput   = "input"
	TriggerBlur    = "blur"
	TriggerTrigger = "trigger"
)

// Props is the free-form configuration bag forwarded to the widget.
type Props map[string]any

// Option is a single value/label pair of a select descriptor.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ValidatorFunc inspects the bound value rendered as text and returns a
// descriptor-level error. A nil return means the value is acceptable.
type ValidatorFunc func(value string) error

// Validate groups the validation rules of a descriptor.
type Validate struct {
	Trigger   []string      `json:"trigger,omitempty"`
	Required  Flag          `json:"required"`
	Message   string        `json:"message,omitempty"`
	Validator ValidatorFunc `json:"-"`
}

// Descriptor describes a single form control.
type Descriptor struct {
	Type     FieldType    `json:"type"`
	Field    string       `json:"field,omitempty"`
	Name     string       `json:"name"`
	Span     Span         `json:"span"`
	Props    Props        `json:"props,omitempty"`
	Validate *Validate    `json:"validate,omitempty"`
	Value    any          `json:"value,omitempty"`
	Options  []Option     `json:"options,omitempty"`
	Children []Descriptor `json:"children,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// Required reports whether the descriptor is required for the given signals.
func (d Descriptor) Required(sig signals.Signals) bool {
	if d.Validate == nil {
		return false
	}
	return d.Validate.Required.Resolve(sig)
}

// Schema is the ordered descriptor sequence together with the signals it was
// derived with.
type Schema struct {
	Fields  []Descriptor    `json:"fields"`
	Signals signals.Signals `json:"signals"`
}
