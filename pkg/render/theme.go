package render

import (
	"errors"
	"fmt"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ErrThemeNotFound reports a theme or variant name no registered manifest
// provides.
var ErrThemeNotFound = errors.New("render: theme not found")

// NewThemeSelector resolves names against provider through the go-theme
// selector. Empty names fall back to defaultTheme and defaultVariant.
func NewThemeSelector(provider theme.ThemeProvider, defaultTheme, defaultVariant string) theme.ThemeSelector {
	return &theme.Selector{
		Registry:       provider,
		DefaultTheme:   strings.TrimSpace(defaultTheme),
		DefaultVariant: strings.TrimSpace(defaultVariant),
	}
}

// SelectTheme runs selector and wraps every resolution failure, including a
// variant the selected manifest does not declare, in ErrThemeNotFound.
func SelectTheme(selector theme.ThemeSelector, name, variant string) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	variant = strings.TrimSpace(variant)

	sel, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("%w: %q/%q: %v", ErrThemeNotFound, name, variant, err)
	}
	if sel == nil || sel.Manifest == nil {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if variant != "" {
		if _, ok := sel.Manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: theme %q has no variant %q", ErrThemeNotFound, sel.Manifest.Name, variant)
		}
	}
	return sel, nil
}

// ThemeConfig flattens a selection into the renderer configuration: variant
// tokens, templates and assets override the base manifest, and every token is
// exposed as a CSS variable named after it.
func ThemeConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest

	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	assets := mergeStrings(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStrings(tokens, variant.Tokens)
		partials = mergeStrings(partials, variant.Templates)
		assets = mergeStrings(assets, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Tokens:   tokens,
		Partials: partials,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := assets[key]
			if !ok || file == "" {
				return ""
			}
			if prefix == "" {
				return file
			}
			return path.Join(prefix, file)
		},
	}
}

func mergeStrings(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}
