// Package render defines the renderer contract shared by the output formats
// and the registry the CLI and HTTP service resolve them from.
package render

import (
	"context"

	"github.com/goliatone/go-taskform/pkg/model"
)

// Renderer converts a generated schema into a byte representation (JSON, HTML,
// an OpenAPI schema document).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, schema model.Schema, options RenderOptions) ([]byte, error)
}
