// Package openapi exports a task form schema as an OpenAPI 3 object schema so
// API clients can validate submissions against the same rules the form
// shows. Only visible bound descriptors become properties.
package openapi

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-taskform/pkg/model"
	"github.com/goliatone/go-taskform/pkg/render"
	"github.com/goliatone/go-taskform/pkg/validation"
)

const (
	rendererName = "openapi"
	contentType  = "application/schema+json"

	// ExtensionSpan carries the grid width of a property.
	ExtensionSpan = "x-span"
	// ExtensionWidget carries the descriptor type of a property.
	ExtensionWidget = "x-widget"
	// ExtensionSignals carries the signals the schema was resolved with.
	ExtensionSignals = "x-signals"
)

// Renderer implements render.Renderer.
type Renderer struct {
	title  string
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// Option customises the renderer.
type Option func(*Renderer)

// WithTitle sets the schema title.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		r.title = title
	}
}

// WithIndent pretty prints the output.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// New constructs the renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{title: "SeaTunnelTask"}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name implements render.Renderer.
func (r *Renderer) Name() string {
	return rendererName
}

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string {
	return contentType
}

// Render implements render.Renderer.
func (r *Renderer) Render(ctx context.Context, schema model.Schema, opts render.RenderOptions) ([]byte, error) {
	out, err := r.Schema(ctx, schema, opts)
	if err != nil {
		return nil, err
	}
	var payload []byte
	if r.indent != "" {
		payload, err = json.MarshalIndent(out, "", r.indent)
	} else {
		payload, err = json.Marshal(out)
	}
	if err != nil {
		return nil, fmt.Errorf("openapi renderer: encode schema: %w", err)
	}
	return payload, nil
}

// Schema builds the validated OpenAPI schema for a generated form.
func (r *Renderer) Schema(ctx context.Context, schema model.Schema, opts render.RenderOptions) (*openapi3.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	view := render.Prepare(schema, opts)

	out := openapi3.NewObjectSchema()
	out.Title = r.title
	out.Extensions = map[string]any{ExtensionSignals: view.Signals}

	for _, field := range model.Visible(view.Fields) {
		if field.Field == "" {
			continue
		}
		out.WithProperty(field.Field, propertySchema(field))
		if field.Required {
			out.Required = append(out.Required, field.Field)
		}
	}

	if err := out.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi renderer: invalid schema: %w", err)
	}
	return out, nil
}

// Check validates a submitted JSON document against the schema exported for
// the form. Schema violations are reported in the result; the error is
// reserved for documents that cannot be checked at all.
func (r *Renderer) Check(ctx context.Context, schema model.Schema, opts render.RenderOptions, raw []byte) (validation.SchemaValidationResult, error) {
	out, err := r.Schema(ctx, schema, opts)
	if err != nil {
		return validation.SchemaValidationResult{}, err
	}
	var document any
	if err := json.Unmarshal(raw, &document); err != nil {
		return validation.SchemaValidationResult{}, fmt.Errorf("openapi renderer: decode document: %w", err)
	}
	return validation.SchemaResult(out.VisitJSON(document, openapi3.MultiErrors())), nil
}

func propertySchema(field model.Resolved) *openapi3.Schema {
	var prop *openapi3.Schema
	switch field.Type {
	case model.FieldTypeInputNumber:
		prop = openapi3.NewIntegerSchema()
		if minValue, ok := numberProp(field.Props, model.PropMin); ok {
			prop.WithMin(minValue)
		}
		if maxValue, ok := numberProp(field.Props, model.PropMax); ok {
			prop.WithMax(maxValue)
		}
	case model.FieldTypeSwitch:
		prop = openapi3.NewBoolSchema()
	case model.FieldTypeSelect:
		prop = openapi3.NewStringSchema()
		if len(field.Options) > 0 {
			values := make([]any, len(field.Options))
			for i, option := range field.Options {
				values[i] = option.Value
			}
			prop.WithEnum(values...)
		}
	case model.FieldTypeResources:
		prop = openapi3.NewArraySchema().WithItems(openapi3.NewIntegerSchema())
		if limit, ok := numberProp(field.Props, model.PropLimit); ok && limit > 0 {
			prop.WithMaxItems(int64(limit))
		}
	case model.FieldTypeCustomParameters:
		row := openapi3.NewObjectSchema()
		for _, child := range field.Children {
			if child.Field == "" {
				continue
			}
			row.WithProperty(child.Field, propertySchema(child))
			if child.Required {
				row.Required = append(row.Required, child.Field)
			}
		}
		prop = openapi3.NewArraySchema().WithItems(row)
	default:
		prop = openapi3.NewStringSchema()
	}

	prop.Title = field.Name
	if placeholder, ok := field.Props[model.PropPlaceholder].(string); ok {
		prop.Description = placeholder
	}
	if value, ok := scalarDefault(field.Value); ok {
		prop.Default = value
	}
	prop.Extensions = map[string]any{
		ExtensionSpan:   field.Span,
		ExtensionWidget: string(field.Type),
	}
	return prop
}

func numberProp(props model.Props, key string) (float64, bool) {
	switch v := props[key].(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// scalarDefault keeps only values a JSON schema default can carry directly.
func scalarDefault(value any) (any, bool) {
	switch v := value.(type) {
	case string:
		return v, v != ""
	case bool:
		return v, true
	case int:
		return float64(v), true
	case float64:
		return v, true
	default:
		return nil, false
	}
}
