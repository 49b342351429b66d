package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-taskform/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetToggle         = "toggle"
	WidgetSelect         = "select"
	WidgetChips          = "chips"
	WidgetCodeEditor     = "code-editor"
	WidgetNumber         = "number"
	WidgetResourcePicker = "resource-picker"
	WidgetKeyValue       = "key-value"
	WidgetText           = "text"
)

// Matcher decides whether a widget renderer should handle the supplied
// descriptor.
type Matcher func(desc model.Descriptor) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for descriptors based on explicit hints or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a descriptor. An explicit
// Props["widget"] hint is honoured before matcher evaluation.
func (r *Registry) Resolve(desc model.Descriptor) (string, bool) {
	if explicit := explicitWidget(desc); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(desc) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator, recording the resolved widget in
// Props["widget"] of every descriptor and child that has none yet.
func (r *Registry) Decorate(schema *model.Schema) error {
	if r == nil || schema == nil {
		return nil
	}
	schema.Fields = r.decorateFields(schema.Fields)
	return nil
}

func (r *Registry) decorateFields(fields []model.Descriptor) []model.Descriptor {
	if len(fields) == 0 {
		return fields
	}
	decorated := make([]model.Descriptor, len(fields))
	for idx, desc := range fields {
		decorated[idx] = r.decorateField(desc)
	}
	return decorated
}

func (r *Registry) decorateField(desc model.Descriptor) model.Descriptor {
	if widget, ok := r.Resolve(desc); ok && widget != "" {
		props := make(model.Props, len(desc.Props)+1)
		for key, value := range desc.Props {
			props[key] = value
		}
		props[model.PropWidget] = widget
		desc.Props = props
	}
	if len(desc.Children) > 0 {
		desc.Children = r.decorateFields(desc.Children)
	}
	return desc
}

func explicitWidget(desc model.Descriptor) string {
	if desc.Props == nil {
		return ""
	}
	if widget, ok := desc.Props[model.PropWidget].(string); ok {
		return strings.TrimSpace(widget)
	}
	return ""
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetToggle, 90, func(desc model.Descriptor) bool {
		return desc.Type == model.FieldTypeSwitch
	})

	r.Register(WidgetChips, 80, func(desc model.Descriptor) bool {
		if desc.Type != model.FieldTypeSelect {
			return false
		}
		multiple, _ := desc.Props[model.PropMultiple].(bool)
		return multiple
	})

	r.Register(WidgetSelect, 70, func(desc model.Descriptor) bool {
		return desc.Type == model.FieldTypeSelect
	})

	r.Register(WidgetCodeEditor, 60, func(desc model.Descriptor) bool {
		return desc.Type == model.FieldTypeEditor
	})

	r.Register(WidgetNumber, 55, func(desc model.Descriptor) bool {
		return desc.Type == model.FieldTypeInputNumber
	})

	r.Register(WidgetResourcePicker, 50, func(desc model.Descriptor) bool {
		return desc.Type == model.FieldTypeResources
	})

	r.Register(WidgetKeyValue, 40, func(desc model.Descriptor) bool {
		return desc.Type == model.FieldTypeCustomParameters
	})

	r.Register(WidgetText, 10, func(desc model.Descriptor) bool {
		return desc.Type == model.FieldTypeInput
	})
}
