// Package taskform is the top-level entry point for generating SeaTunnel task
// form schemas. It re-exports the orchestrator and its request types so most
// callers only need this import.
package taskform

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-taskform/internal/stateloader"
	"github.com/goliatone/go-taskform/pkg/orchestrator"
	"github.com/goliatone/go-taskform/pkg/render"
	"github.com/goliatone/go-taskform/pkg/renderers/html"
	"github.com/goliatone/go-taskform/pkg/selection"
)

// State holds the user's current selections.
type State = selection.State

// Request describes one render.
type Request = orchestrator.Request

// RenderOptions carries per-request values and externally produced errors.
type RenderOptions = render.RenderOptions

// StateLoaderOptions configures NewStateLoader.
type StateLoaderOptions = stateloader.Options

// StateSource identifies a selections document for a state loader.
type StateSource = stateloader.Source

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewStateLoader constructs a loader for selections documents kept on disk,
// in an fs.FS or behind an http(s) URL.
func NewStateLoader(options StateLoaderOptions) *stateloader.Loader {
	return stateloader.New(options)
}

// SourceFor picks the source kind for location.
func SourceFor(location string) StateSource {
	return stateloader.SourceFor(location)
}

// Generate renders the form for state with the named renderer.
func Generate(ctx context.Context, state State, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, Request{
		State:    state,
		Renderer: rendererName,
	})
}

// GenerateHTML renders the form for state as an HTML fragment.
func GenerateHTML(ctx context.Context, state State, options ...orchestrator.Option) ([]byte, error) {
	return Generate(ctx, state, "html", options...)
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can copy
// or extend them.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
