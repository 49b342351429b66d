package seatunnel

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-taskform/pkg/i18n"
	"github.com/goliatone/go-taskform/pkg/model"
	"github.com/goliatone/go-taskform/pkg/pickers"
)

// Option customises a Generator.
type Option func(*Generator)

// WithNamespacePicker replaces the namespace selector collaborator.
func WithNamespacePicker(p pickers.NamespaceGenerator) Option {
	return func(g *Generator) {
		if p != nil {
			g.namespaces = p
		}
	}
}

// WithResourcePicker replaces the resource reference collaborator.
func WithResourcePicker(p pickers.ResourceGenerator) Option {
	return func(g *Generator) {
		if p != nil {
			g.resources = p
		}
	}
}

// WithCustomParams replaces the custom parameter list collaborator.
func WithCustomParams(p pickers.CustomParamsGenerator) Option {
	return func(g *Generator) {
		if p != nil {
			g.customParams = p
		}
	}
}

// WithTranslator sets the translator used for names, placeholders and
// messages.
func WithTranslator(t i18n.Translator) Option {
	return func(g *Generator) {
		g.translator = t
	}
}

// WithLocale sets the locale passed to the translator.
func WithLocale(locale string) Option {
	return func(g *Generator) {
		if locale != "" {
			g.locale = locale
		}
	}
}

// WithMissingHandler controls the text used for keys the translator cannot
// resolve.
func WithMissingHandler(h i18n.MissingHandler) Option {
	return func(g *Generator) {
		g.onMissing = h
	}
}

// WithLogger attaches a logger. Generation logs at debug level only.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithDecorators registers decorators that run, in order, after the
// descriptor sequence is assembled.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(g *Generator) {
		for _, d := range decorators {
			if d != nil {
				g.decorators = append(g.decorators, d)
			}
		}
	}
}
