package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-taskform/pkg/model"
	"github.com/goliatone/go-taskform/pkg/render"
	"github.com/goliatone/go-taskform/pkg/renderers/html"
	"github.com/goliatone/go-taskform/pkg/renderers/jsonview"
	"github.com/goliatone/go-taskform/pkg/renderers/openapi"
	"github.com/goliatone/go-taskform/pkg/seatunnel"
	"github.com/goliatone/go-taskform/pkg/selection"
	"github.com/goliatone/go-taskform/pkg/validation"
	"github.com/goliatone/go-taskform/pkg/widgets"
)

const defaultRendererName = "json"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithGenerator injects a configured schema generator.
func WithGenerator(gen *seatunnel.Generator) Option {
	return func(o *Orchestrator) {
		o.generator = gen
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchemaTransformer registers a Transformer that can mutate the schema
// after generation but before decorators run.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators that run against the generated schema
// before rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithWidgetRegistry replaces the widget registry used to tag descriptors.
// Pass nil to skip widget tagging.
func WithWidgetRegistry(reg *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.widgets = reg
		o.widgetsSpecified = true
	}
}

// WithThemeSelector resolves theme and variant names into renderer theme
// configuration.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeProvider resolves themes from provider through the go-theme
// selector, falling back to defaultTheme and defaultVariant.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		if provider == nil {
			return
		}
		o.themeSelector = render.NewThemeSelector(provider, defaultTheme, defaultVariant)
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the full pipeline from selection state to rendered
// output. It applies defaults (bundled generator, json/html/openapi renderers)
// while remaining open to dependency injection.
type Orchestrator struct {
	generator        *seatunnel.Generator
	registry         *render.Registry
	defaultRenderer  string
	transformer      Transformer
	decorators       []model.Decorator
	widgets          *widgets.Registry
	widgetsSpecified bool
	themeSelector    theme.ThemeSelector
	logger           *zap.Logger
	initialiseErr    error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render.
type Request struct {
	// State holds the selections the schema is generated from.
	State selection.State

	// Renderer names the renderer to use. Empty falls back to the default.
	Renderer string

	// Locale overrides the generator locale for this request.
	Locale string

	// Validate attaches descriptor-level errors for the values in State.
	Validate bool

	// ThemeName and ThemeVariant are handed to the theme selector.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request values and externally produced errors.
	RenderOptions render.RenderOptions
}

// Schema builds the schema for req without rendering it.
func (o *Orchestrator) Schema(ctx context.Context, req Request) (model.Schema, error) {
	if ctx == nil {
		return model.Schema{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.Schema{}, err
	}
	if err := o.initialiseErr; err != nil {
		return model.Schema{}, err
	}

	gen := o.generator.ForLocale(req.Locale)
	schema := gen.Generate(req.State)

	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &schema); err != nil {
			return model.Schema{}, fmt.Errorf("orchestrator: transform schema: %w", err)
		}
	}
	// Validation sees the transformed descriptors, so preset rules apply.
	if req.Validate {
		schema = validation.Apply(schema, req.State.Values(), gen.Label("project.node.required_tips"))
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&schema); err != nil {
			return model.Schema{}, fmt.Errorf("orchestrator: decorate schema: %w", err)
		}
	}
	if o.widgets != nil {
		if err := o.widgets.Decorate(&schema); err != nil {
			return model.Schema{}, fmt.Errorf("orchestrator: tag widgets: %w", err)
		}
	}
	return schema, nil
}

// Generate builds the schema for req and renders it with the requested
// renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	schema, err := o.Schema(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.Renderer(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Locale == "" {
		opts.Locale = o.generator.ForLocale(req.Locale).Locale()
	}
	if opts.Theme == nil && o.themeSelector != nil {
		sel, err := render.SelectTheme(o.themeSelector, req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: select theme: %w", err)
		}
		opts.Theme = render.ThemeConfig(sel)
	}

	output, err := renderer.Render(ctx, schema, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}

	o.logger.Debug("rendered task form",
		zap.String("renderer", renderer.Name()),
		zap.String("locale", opts.Locale),
		zap.Int("bytes", len(output)),
	)
	return output, nil
}

// Renderer resolves name, falling back to the default renderer and then to
// the first registered one when name is empty.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	renderer, err := o.registry.Resolve(name, o.defaultRenderer)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
	}
	return renderer, nil
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) applyDefaults() {
	if o.generator == nil {
		o.generator = seatunnel.New(seatunnel.WithLogger(o.logger))
	}
	if !o.widgetsSpecified {
		o.widgets = widgets.NewRegistry()
	}
	if o.registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			o.initialiseErr = err
			o.registry = render.NewRegistry()
		} else {
			o.registry = registry
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

// DefaultRegistry returns a registry holding the json, html and openapi
// renderers with their default options.
func DefaultRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: default html renderer: %w", err)
	}
	for _, renderer := range []render.Renderer{jsonview.New(), htmlRenderer, openapi.New()} {
		if err := registry.Register(renderer); err != nil {
			return nil, fmt.Errorf("orchestrator: register %s: %w", renderer.Name(), err)
		}
	}
	return registry, nil
}
