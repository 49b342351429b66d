package render

import (
	"github.com/goliatone/go-taskform/pkg/model"
	"github.com/goliatone/go-taskform/pkg/signals"
	"github.com/goliatone/go-taskform/pkg/validation"
)

// View is the render-ready projection of a schema: every signal reference is
// resolved and external values and errors are merged in.
type View struct {
	Locale     string            `json:"locale,omitempty"`
	Fields     []model.Resolved  `json:"fields"`
	Signals    signals.Signals   `json:"signals"`
	FormErrors []string          `json:"formErrors,omitempty"`
	Theme      map[string]string `json:"theme,omitempty"`
}

// Prepare resolves schema against its own signals and overlays opts. The input
// schema is not modified.
func Prepare(schema model.Schema, opts RenderOptions) View {
	fields, formErrors := validation.Attach(schema.Fields, opts.Errors)
	fields = overlayValues(fields, opts.Values)

	view := View{
		Locale:     opts.Locale,
		Fields:     model.ResolveAll(fields, schema.Signals),
		Signals:    schema.Signals,
		FormErrors: formErrors,
	}
	if opts.Theme != nil && len(opts.Theme.CSSVars) > 0 {
		view.Theme = make(map[string]string, len(opts.Theme.CSSVars))
		for key, value := range opts.Theme.CSSVars {
			view.Theme[key] = value
		}
	}
	if view.Fields == nil {
		view.Fields = []model.Resolved{}
	}
	return view
}

func overlayValues(fields []model.Descriptor, values map[string]any) []model.Descriptor {
	if len(values) == 0 {
		return fields
	}
	out := append([]model.Descriptor(nil), fields...)
	for i := range out {
		if out[i].Field == "" {
			continue
		}
		if value, ok := values[out[i].Field]; ok {
			out[i].Value = value
		}
	}
	return out
}
