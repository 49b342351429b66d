// Package testsupport holds helpers shared by the package tests: state
// fixtures, descriptor lookups and golden file handling.
package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-taskform/pkg/model"
	"github.com/goliatone/go-taskform/pkg/selection"
)

// MustLoadState reads a JSON or YAML state fixture. Testing helpers fail the
// test on error to keep table setups concise.
func MustLoadState(t *testing.T, path string) selection.State {
	t.Helper()

	state, err := LoadState(path)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	return state
}

// LoadState returns a state fixture without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadState(path string) (selection.State, error) {
	if path == "" {
		return selection.State{}, errors.New("testsupport: state path is required")
	}
	state, err := selection.Load(path)
	if err != nil {
		return selection.State{}, fmt.Errorf("testsupport: %w", err)
	}
	return state, nil
}

// FieldNames lists the bound field of every descriptor, in order. Unbound
// composites are reported by their type.
func FieldNames(fields []model.Descriptor) []string {
	out := make([]string, len(fields))
	for i, field := range fields {
		if field.Field == "" {
			out[i] = string(field.Type)
			continue
		}
		out[i] = field.Field
	}
	return out
}

// FindDescriptor returns the descriptor bound to field.
func FindDescriptor(t *testing.T, fields []model.Descriptor, field string) model.Descriptor {
	t.Helper()

	for _, desc := range fields {
		if desc.Field == field {
			return desc
		}
	}
	t.Fatalf("descriptor %q not found in %v", field, FieldNames(fields))
	return model.Descriptor{}
}

// WriteGolden writes arbitrary data as JSON to a golden file when
// UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureOutput executes a function that writes to an io.Writer and returns
// what it wrote.
func CaptureOutput(t *testing.T, write func(io.Writer) error) string {
	t.Helper()

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		t.Fatalf("write output: %v", err)
	}
	return buf.String()
}
