// Package model defines the field descriptors the schema generator emits and
// renderers consume. A descriptor carries the widget kind, the bound state
// field, its display label, layout width, widget props, validation rules and
// initial value. Widths and required flags may reference a derived signal
// (see package signals) instead of a literal so consumers re-resolve them
// whenever the selection state changes; Resolve turns a descriptor into its
// concrete, JSON-friendly form for one signal snapshot.
package model
