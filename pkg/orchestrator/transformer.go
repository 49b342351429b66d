package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-taskform/pkg/model"
)

// Transformer mutates a schema before decorators run. Implementations can
// relabel descriptors, adjust props or perform arbitrary rewrites.
type Transformer interface {
	Transform(ctx context.Context, schema *model.Schema) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, schema *model.Schema) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, schema *model.Schema) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, schema)
}

// PresetTransformer applies declarative descriptor patches loaded from a JSON
// or YAML document. Paths address bound fields; a dotted path descends into
// the children of a composite descriptor:
//
//	fields:
//	  image: {label: "Container image", placeholder: "registry/image:tag"}
//	  localParams.prop: {placeholder: "key"}
//	  slot: {props: {max: 8}}
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Fields map[string]fieldPatch `json:"fields" yaml:"fields"`
}

type fieldPatch struct {
	Label       string         `json:"label" yaml:"label"`
	Placeholder string         `json:"placeholder" yaml:"placeholder"`
	Span        *int           `json:"span" yaml:"span"`
	Props       map[string]any `json:"props" yaml:"props"`
}

// NewPresetTransformer parses a preset document. format is "json" or "yaml".
func NewPresetTransformer(data []byte, format string) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	switch strings.ToLower(format) {
	case "json":
		if err := json.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("preset transformer: parse document: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("preset transformer: parse document: %w", err)
		}
	default:
		return nil, fmt.Errorf("preset transformer: unsupported format %q", format)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document, picking the decoder
// from the file extension.
func NewPresetTransformerFromFS(fsys fs.FS, name string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", name, err)
	}
	return NewPresetTransformer(data, strings.TrimPrefix(path.Ext(name), "."))
}

// Transform applies the patches. Paths naming descriptors the schema does not
// contain are skipped, since collaborators may legitimately omit them.
func (t *PresetTransformer) Transform(ctx context.Context, schema *model.Schema) error {
	if schema == nil {
		return errors.New("preset transformer: schema is nil")
	}
	for fieldPath, patch := range t.document.Fields {
		if err := ctx.Err(); err != nil {
			return err
		}
		desc := findByPath(schema.Fields, fieldPath)
		if desc == nil {
			continue
		}
		applyPatch(desc, patch)
	}
	return nil
}

func applyPatch(desc *model.Descriptor, patch fieldPatch) {
	if patch.Label != "" {
		desc.Name = patch.Label
	}
	if patch.Span != nil {
		desc.Span = model.Fixed(*patch.Span)
	}
	if patch.Placeholder == "" && len(patch.Props) == 0 {
		return
	}
	props := make(model.Props, len(desc.Props)+len(patch.Props)+1)
	for key, value := range desc.Props {
		props[key] = value
	}
	for key, value := range patch.Props {
		props[key] = value
	}
	if patch.Placeholder != "" {
		props[model.PropPlaceholder] = patch.Placeholder
	}
	desc.Props = props
}

func findByPath(fields []model.Descriptor, fieldPath string) *model.Descriptor {
	segments := strings.Split(strings.TrimSpace(fieldPath), ".")
	for len(segments) > 0 {
		var next *model.Descriptor
		for i := range fields {
			if fields[i].Field == segments[0] {
				next = &fields[i]
				break
			}
		}
		if next == nil {
			return nil
		}
		if len(segments) == 1 {
			return next
		}
		next.Children = append([]model.Descriptor(nil), next.Children...)
		fields = next.Children
		segments = segments[1:]
	}
	return nil
}
