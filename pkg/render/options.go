package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the generated schema.
type RenderOptions struct {
	// Locale is echoed into the output so clients know which bundle produced
	// the labels.
	Locale string
	// Values pre-populates rendered controls keyed by descriptor field. A value
	// here replaces the one the generator seeded from the selection state.
	Values map[string]any
	// Errors surfaces externally produced validation feedback keyed by field.
	// Keys that match no descriptor become form-level messages.
	Errors map[string][]string
	// Theme carries the resolved go-theme configuration for markup renderers.
	Theme *theme.RendererConfig
}
