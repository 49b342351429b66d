package html

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

const templateExt = ".tpl"

// TemplateRenderer executes a named form template against a prepared view
// context and writes the markup to w.
type TemplateRenderer interface {
	Render(name string, view pongo2.Context, w io.Writer) error
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithHelpers exposes functions such as translate to every template.
func WithHelpers(helpers map[string]any) EngineOption {
	return func(e *Engine) {
		for name, fn := range helpers {
			name = strings.TrimSpace(name)
			if name == "" || fn == nil {
				continue
			}
			e.set.Globals[name] = fn
		}
	}
}

// Engine renders form templates through pongo2. Parsed templates are cached
// by name for the lifetime of the engine.
type Engine struct {
	set *pongo2.TemplateSet

	mu    sync.RWMutex
	cache map[string]*pongo2.Template
}

var _ TemplateRenderer = (*Engine)(nil)

// NewEngine builds an engine over files and registers the form filters.
func NewEngine(files fs.FS, options ...EngineOption) (*Engine, error) {
	if files == nil {
		return nil, errors.New("html: template filesystem is required")
	}
	if err := registerFormFilters(); err != nil {
		return nil, err
	}

	set := pongo2.NewSet("taskform", pongo2.NewFSLoader(files))
	if set.Globals == nil {
		set.Globals = make(pongo2.Context)
	}
	engine := &Engine{
		set:   set,
		cache: make(map[string]*pongo2.Template),
	}
	for _, opt := range options {
		if opt != nil {
			opt(engine)
		}
	}
	return engine, nil
}

// Render implements TemplateRenderer. The .tpl extension is appended when
// name has none. Nothing is written to w when execution fails.
func (e *Engine) Render(name string, view pongo2.Context, w io.Writer) error {
	if !strings.HasSuffix(name, templateExt) {
		name += templateExt
	}
	tmpl, err := e.template(name)
	if err != nil {
		return err
	}
	if err := tmpl.ExecuteWriter(view, w); err != nil {
		return fmt.Errorf("html: execute template %q: %w", name, err)
	}
	return nil
}

func (e *Engine) template(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[name]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("html: load template %q: %w", name, err)
	}
	e.cache[name] = tmpl
	return tmpl, nil
}

// formFilters are the filters the form templates use. pongo2 keeps filters
// in a process-wide table, so a name that is already taken is left alone.
var formFilters = map[string]pongo2.FilterFunction{
	"sanitize": filterSanitize,
	"trim":     filterTrim,
	"span":     filterSpan,
}

var (
	formFiltersOnce sync.Once
	formFiltersErr  error
)

func registerFormFilters() error {
	formFiltersOnce.Do(func() {
		for name, fn := range formFilters {
			if pongo2.FilterExists(name) {
				continue
			}
			if err := pongo2.RegisterFilter(name, fn); err != nil {
				formFiltersErr = fmt.Errorf("html: register filter %q: %w", name, err)
				return
			}
		}
	})
	return formFiltersErr
}

// filterSpan turns a resolved grid span into the inline placement of a cell
// on the 24 column grid.
func filterSpan(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	span := in.Integer()
	if span <= 0 || span > gridColumns {
		span = gridColumns
	}
	return pongo2.AsValue(fmt.Sprintf("grid-column: span %d", span)), nil
}
