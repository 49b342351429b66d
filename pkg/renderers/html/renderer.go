// Package html renders a task form schema as a server-side HTML fragment laid
// out on a 24 column CSS grid. Hidden descriptors are omitted.
package html

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-taskform/pkg/i18n"
	"github.com/goliatone/go-taskform/pkg/model"
	"github.com/goliatone/go-taskform/pkg/render"
	"github.com/goliatone/go-taskform/pkg/validation"
	"github.com/goliatone/go-taskform/pkg/widgets"
)

const (
	rendererName = "html"
	contentType  = "text/html; charset=utf-8"
	formTemplate = "templates/form"
	gridColumns  = model.GridColumns
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer TemplateRenderer
	translator       i18n.Translator
	widgets          *widgets.Registry
	engineOptions    []EngineOption
}

// WithTemplatesFS supplies an alternate template bundle. It must provide
// templates/form.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTranslator sets the translator behind the template translate helper.
func WithTranslator(t i18n.Translator) Option {
	return func(cfg *config) {
		cfg.translator = t
	}
}

// WithWidgets replaces the widget registry used to tag controls.
func WithWidgets(reg *widgets.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.widgets = reg
		}
	}
}

// WithEngineOptions forwards options to the default pongo2 engine, e.g.
// extra template helpers.
func WithEngineOptions(opts ...EngineOption) Option {
	return func(cfg *config) {
		cfg.engineOptions = append(cfg.engineOptions, opts...)
	}
}

// Renderer implements render.Renderer.
type Renderer struct {
	templates TemplateRenderer
	widgets   *widgets.Registry
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.translator == nil {
		if catalog, err := i18n.Default(); err == nil {
			cfg.translator = catalog
		}
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}

	tr := cfg.templateRenderer
	if tr == nil {
		engineOpts := append([]EngineOption{
			WithHelpers(render.TemplateI18nFuncs(cfg.translator, render.TemplateI18nConfig{})),
		}, cfg.engineOptions...)
		engine, err := NewEngine(cfg.templateFS, engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		tr = engine
	}

	return &Renderer{templates: tr, widgets: cfg.widgets}, nil
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
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.widgets.Decorate(&schema); err != nil {
		return nil, fmt.Errorf("html renderer: resolve widgets: %w", err)
	}
	view := render.Prepare(schema, opts)

	data := formData{
		Locale:     view.Locale,
		Style:      cssVarsStyle(view.Theme),
		FormErrors: view.FormErrors,
		Fields:     make([]fieldData, 0, len(view.Fields)),
	}
	if data.Locale == "" {
		data.Locale = i18n.DefaultLocale
	}
	if opts.Theme != nil {
		data.ThemeName = opts.Theme.Theme
	}
	for _, field := range model.Visible(view.Fields) {
		data.Fields = append(data.Fields, newFieldData(field))
	}

	var buf bytes.Buffer
	if err := r.templates.Render(formTemplate, data.context(), &buf); err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return buf.Bytes(), nil
}

// formData is the grid view handed to the form template. Only visible
// descriptors reach it.
type formData struct {
	Locale     string
	ThemeName  string
	Style      string
	FormErrors []string
	Fields     []fieldData
}

type optionData struct {
	Value string
	Label string
}

type columnData struct {
	Field string
	Label string
	Span  int
}

type fieldData struct {
	Field       string
	Type        string
	Name        string
	Span        int
	Required    bool
	Widget      string
	Placeholder string
	Value       string
	Checked     bool
	Min         string
	Mode        string
	Limit       int
	Multiple    bool
	Options     []optionData
	Children    []columnData
	Errors      []string
}

// context exposes the view under the snake_case names the templates use.
func (d formData) context() pongo2.Context {
	fields := make([]pongo2.Context, len(d.Fields))
	for i, field := range d.Fields {
		fields[i] = field.context()
	}
	return pongo2.Context{
		"locale":      d.Locale,
		"theme_name":  d.ThemeName,
		"style":       d.Style,
		"form_errors": d.FormErrors,
		"fields":      fields,
	}
}

func (f fieldData) context() pongo2.Context {
	options := make([]pongo2.Context, len(f.Options))
	for i, option := range f.Options {
		options[i] = pongo2.Context{"value": option.Value, "label": option.Label}
	}
	children := make([]pongo2.Context, len(f.Children))
	for i, child := range f.Children {
		children[i] = pongo2.Context{"field": child.Field, "label": child.Label, "span": child.Span}
	}
	return pongo2.Context{
		"field":       f.Field,
		"type":        f.Type,
		"name":        f.Name,
		"span":        f.Span,
		"required":    f.Required,
		"widget":      f.Widget,
		"placeholder": f.Placeholder,
		"value":       f.Value,
		"checked":     f.Checked,
		"min":         f.Min,
		"mode":        f.Mode,
		"limit":       f.Limit,
		"multiple":    f.Multiple,
		"options":     options,
		"children":    children,
		"errors":      f.Errors,
	}
}

func newFieldData(field model.Resolved) fieldData {
	out := fieldData{
		Field:       field.Field,
		Type:        string(field.Type),
		Name:        field.Name,
		Span:        field.Span,
		Required:    field.Required,
		Widget:      propString(field.Props, model.PropWidget),
		Placeholder: propString(field.Props, model.PropPlaceholder),
		Value:       validation.Stringify(field.Value),
		Mode:        propString(field.Props, model.PropMode),
		Errors:      field.Errors,
	}
	if checked, ok := field.Value.(bool); ok {
		out.Checked = checked
		out.Value = ""
	}
	if minValue, ok := field.Props[model.PropMin]; ok {
		out.Min = fmt.Sprint(minValue)
	}
	if limit, ok := field.Props[model.PropLimit].(int); ok {
		out.Limit = limit
	}
	if multiple, ok := field.Props[model.PropMultiple].(bool); ok {
		out.Multiple = multiple
	}
	if field.Type == model.FieldTypeEditor && out.Mode == "" {
		out.Mode = "shell"
	}
	for _, option := range field.Options {
		out.Options = append(out.Options, optionData{Value: option.Value, Label: option.Label})
	}
	if field.Type == model.FieldTypeCustomParameters {
		out.Value = ""
		for _, child := range field.Children {
			label := child.Name
			if label == "" {
				label = propString(child.Props, model.PropPlaceholder)
			}
			out.Children = append(out.Children, columnData{Field: child.Field, Label: label, Span: child.Span})
		}
	}
	return out
}

func propString(props model.Props, key string) string {
	if props == nil {
		return ""
	}
	value, _ := props[key].(string)
	return value
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := strings.TrimSpace(vars[key])
		if value == "" || strings.ContainsAny(value, ";{}<>") {
			continue
		}
		parts = append(parts, key+": "+value)
	}
	return strings.Join(parts, "; ")
}
