// Package pickers holds the collaborators the SeaTunnel generator delegates
// to: the namespace selector, the resource reference selector and the custom
// parameter list. Each produces descriptors that are spliced verbatim into the
// generated sequence.
package pickers

import (
	"github.com/goliatone/go-taskform/pkg/i18n"
	"github.com/goliatone/go-taskform/pkg/model"
	"github.com/goliatone/go-taskform/pkg/selection"
	"github.com/goliatone/go-taskform/pkg/signals"
)

// Context is the snapshot handed to every collaborator for one generation.
type Context struct {
	State   selection.State
	Signals signals.Signals
	T       i18n.Func
}

// Label resolves key through the bound lookup, echoing the key when none is
// configured.
func (c Context) Label(key string) string {
	if c.T == nil {
		return key
	}
	return c.T(key)
}

// NamespaceGenerator produces the namespace selector.
type NamespaceGenerator interface {
	Namespace(ctx Context) []model.Descriptor
}

// ResourceRequest carries the arguments of a resource selector call.
type ResourceRequest struct {
	Span    model.Span
	Enabled bool
	Limit   int
}

// ResourceGenerator produces the resource reference selector.
type ResourceGenerator interface {
	Resources(ctx Context, req ResourceRequest) []model.Descriptor
}

// CustomParamsRequest carries the arguments of a custom parameter list call.
type CustomParamsRequest struct {
	Field  string
	Simple bool
}

// CustomParamsGenerator produces the custom parameter list. It may return no
// descriptors at all.
type CustomParamsGenerator interface {
	CustomParams(ctx Context, req CustomParamsRequest) []model.Descriptor
}

// NamespaceFunc adapts a function into a NamespaceGenerator.
type NamespaceFunc func(ctx Context) []model.Descriptor

// Namespace calls fn.
func (fn NamespaceFunc) Namespace(ctx Context) []model.Descriptor {
	return fn(ctx)
}

// ResourceFunc adapts a function into a ResourceGenerator.
type ResourceFunc func(ctx Context, req ResourceRequest) []model.Descriptor

// Resources calls fn.
func (fn ResourceFunc) Resources(ctx Context, req ResourceRequest) []model.Descriptor {
	return fn(ctx, req)
}

// CustomParamsFunc adapts a function into a CustomParamsGenerator.
type CustomParamsFunc func(ctx Context, req CustomParamsRequest) []model.Descriptor

// CustomParams calls fn.
func (fn CustomParamsFunc) CustomParams(ctx Context, req CustomParamsRequest) []model.Descriptor {
	return fn(ctx, req)
}
