package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-taskform/internal/config"
	"github.com/goliatone/go-taskform/internal/stateloader"
	"github.com/goliatone/go-taskform/pkg/i18n"
	"github.com/goliatone/go-taskform/pkg/orchestrator"
	"github.com/goliatone/go-taskform/pkg/pickers"
	"github.com/goliatone/go-taskform/pkg/seatunnel"
	"github.com/goliatone/go-taskform/pkg/selection"
)

const remoteStateTimeout = 10 * time.Second

func newGenerator(cfg *config.Config, log *zap.Logger) (*seatunnel.Generator, error) {
	catalog, err := i18n.Default()
	if err != nil {
		return nil, err
	}
	if dir := cfg.Form.LocalesDir; dir != "" {
		if err := catalog.LoadFS(os.DirFS(dir), "."); err != nil {
			return nil, err
		}
	}

	return seatunnel.New(
		seatunnel.WithTranslator(catalog),
		seatunnel.WithLocale(cfg.Form.Locale),
		seatunnel.WithNamespacePicker(pickers.StaticNamespaces{Namespaces: cfg.Form.Namespaces}),
		seatunnel.WithLogger(log),
	), nil
}

// newThemeProvider registers the configured theme as a go-theme manifest.
// Named variants carry only token overrides.
func newThemeProvider(tc config.ThemeConfig) (theme.ThemeProvider, string, error) {
	name := tc.Name
	if name == "" {
		name = "default"
	}
	manifest := &theme.Manifest{
		Name:     name,
		Tokens:   tc.Tokens,
		Variants: make(map[string]theme.Variant, len(tc.Variants)),
	}
	for variant, tokens := range tc.Variants {
		manifest.Variants[variant] = theme.Variant{Tokens: tokens}
	}

	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return nil, "", fmt.Errorf("register theme %q: %w", name, err)
	}
	return registry, name, nil
}

func newOrchestrator(cfg *config.Config, log *zap.Logger) (*orchestrator.Orchestrator, error) {
	gen, err := newGenerator(cfg, log)
	if err != nil {
		return nil, err
	}
	themes, themeName, err := newThemeProvider(cfg.Theme)
	if err != nil {
		return nil, err
	}

	opts := []orchestrator.Option{
		orchestrator.WithGenerator(gen),
		orchestrator.WithThemeProvider(themes, themeName, cfg.Theme.Variant),
		orchestrator.WithLogger(log),
	}
	if preset := cfg.Form.Preset; preset != "" {
		transformer, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(preset)), filepath.Base(preset))
		if err != nil {
			return nil, err
		}
		opts = append(opts, orchestrator.WithSchemaTransformer(transformer))
	}
	return orchestrator.New(opts...), nil
}

// loadState reads location into a State. An empty location yields the
// default selections.
func loadState(ctx context.Context, cfg *config.Config, location string) (selection.State, error) {
	if location == "" {
		return selection.Default(), nil
	}
	loader := stateloader.New(stateloader.Options{
		AllowHTTP:      cfg.Form.RemoteState,
		RequestTimeout: remoteStateTimeout,
	})
	return loader.Load(ctx, stateloader.SourceFor(location))
}

// writeOutput writes data to path, or to w when path is empty or "-".
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
