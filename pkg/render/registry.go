package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrRendererNotFound is returned when no renderer serves a format.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry maps output formats (json, html, openapi) to renderers. Format
// names are case-insensitive.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register adds a renderer under its Name(). A format can only be served by
// one renderer.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	format := formatKey(renderer.Name())
	if format == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[format]; exists {
		return fmt.Errorf("render: renderer %q already registered", format)
	}
	r.renderers[format] = renderer
	return nil
}

// Get returns the renderer serving format.
func (r *Registry) Get(format string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[formatKey(format)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, format)
	}
	return renderer, nil
}

// Resolve picks the renderer for a request. An explicit format must exist.
// An empty format falls back to fallback and then to the first format in
// sorted order.
func (r *Registry) Resolve(format, fallback string) (Renderer, error) {
	if strings.TrimSpace(format) != "" {
		return r.Get(format)
	}
	if renderer, err := r.Get(fallback); err == nil {
		return renderer, nil
	}
	names := r.List()
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no renderers registered", ErrRendererNotFound)
	}
	return r.Get(names[0])
}

// List returns the registered formats in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func formatKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
