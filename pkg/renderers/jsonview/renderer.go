// Package jsonview renders a task form schema as a JSON document: resolved
// descriptors in generation order plus the signals they were resolved with.
package jsonview

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-taskform/pkg/model"
	"github.com/goliatone/go-taskform/pkg/render"
)

const (
	rendererName = "json"
	contentType  = "application/json; charset=utf-8"
)

// Option customises the renderer.
type Option func(*Renderer)

// WithIndent pretty prints the output using indent per level.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// WithHidden keeps zero-span descriptors in the output, flagged hidden.
func WithHidden(include bool) Option {
	return func(r *Renderer) {
		r.includeHidden = include
	}
}

// Renderer implements render.Renderer.
type Renderer struct {
	indent        string
	includeHidden bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a JSON renderer. Hidden descriptors are included by default
// so clients can keep widget state across toggles.
func New(opts ...Option) *Renderer {
	r := &Renderer{includeHidden: true}
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
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	view := render.Prepare(schema, opts)
	if !r.includeHidden {
		view.Fields = model.Visible(view.Fields)
	}

	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(view, "", r.indent)
	} else {
		out, err = json.Marshal(view)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonview: encode schema: %w", err)
	}
	return out, nil
}
