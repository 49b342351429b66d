package pickers

import (
	"github.com/goliatone/go-taskform/pkg/model"
	"github.com/goliatone/go-taskform/pkg/selection"
)

// Namespace is a Kubernetes namespace together with the cluster it lives on.
type Namespace struct {
	Name    string `json:"name" yaml:"name" mapstructure:"name"`
	Cluster string `json:"cluster" yaml:"cluster" mapstructure:"cluster"`
}

// Key is the value stored in the selection state.
func (n Namespace) Key() string {
	if n.Cluster == "" {
		return n.Name
	}
	return n.Name + "(" + n.Cluster + ")"
}

// StaticNamespaces offers a fixed namespace list as a select descriptor.
type StaticNamespaces struct {
	Namespaces []Namespace
}

// Namespace implements NamespaceGenerator.
func (s StaticNamespaces) Namespace(ctx Context) []model.Descriptor {
	options := make([]model.Option, 0, len(s.Namespaces))
	for _, ns := range s.Namespaces {
		options = append(options, model.Option{Value: ns.Key(), Label: ns.Key()})
	}
	desc := model.Descriptor{
		Type:  model.FieldTypeSelect,
		Field: selection.FieldNamespace,
		Name:  ctx.Label("project.node.namespace_cluster"),
		Span:  model.Fixed(model.GridColumns),
		Props: model.Props{
			model.PropPlaceholder: ctx.Label("project.node.namespace_cluster_tips"),
		},
		Options: options,
	}
	if ctx.State.Namespace != "" {
		desc.Value = ctx.State.Namespace
	}
	return []model.Descriptor{desc}
}

// DefaultResources describes the resource reference selector bound to
// resourceList.
type DefaultResources struct{}

// Resources implements ResourceGenerator. A disabled request yields nothing.
func (DefaultResources) Resources(ctx Context, req ResourceRequest) []model.Descriptor {
	if !req.Enabled {
		return nil
	}
	props := model.Props{
		model.PropMultiple:    req.Limit != 1,
		model.PropPlaceholder: ctx.Label("project.node.resources_tips"),
	}
	if req.Limit > 0 {
		props[model.PropLimit] = req.Limit
	}
	desc := model.Descriptor{
		Type:  model.FieldTypeResources,
		Field: selection.FieldResourceList,
		Name:  ctx.Label("project.node.resources"),
		Span:  req.Span,
		Props: props,
	}
	if len(ctx.State.ResourceList) > 0 {
		desc.Value = append([]int(nil), ctx.State.ResourceList...)
	}
	return []model.Descriptor{desc}
}

// DefaultCustomParams describes the custom parameter list as a single
// composite descriptor. Its children are the columns of one row.
type DefaultCustomParams struct{}

// CustomParams implements CustomParamsGenerator.
func (DefaultCustomParams) CustomParams(ctx Context, req CustomParamsRequest) []model.Descriptor {
	if req.Field == "" {
		return nil
	}

	prop := model.Descriptor{
		Type:  model.FieldTypeInput,
		Field: "prop",
		Span:  model.Fixed(10),
		Props: model.Props{model.PropPlaceholder: ctx.Label("project.node.prop_tips")},
		Validate: &model.Validate{
			Trigger:  []string{model.TriggerInput, model.TriggerBlur},
			Required: model.Flag{Value: true},
			Message:  ctx.Label("project.node.prop_tips"),
		},
	}
	value := model.Descriptor{
		Type:  model.FieldTypeInput,
		Field: "value",
		Span:  model.Fixed(10),
		Props: model.Props{model.PropPlaceholder: ctx.Label("project.node.value_tips")},
	}

	children := []model.Descriptor{prop, value}
	if !req.Simple {
		prop.Span = model.Fixed(6)
		value.Span = model.Fixed(6)
		children = []model.Descriptor{
			prop,
			{
				Type:    model.FieldTypeSelect,
				Field:   "direct",
				Name:    ctx.Label("project.node.direct"),
				Span:    model.Fixed(4),
				Options: optionList("IN", "OUT"),
			},
			{
				Type:    model.FieldTypeSelect,
				Field:   "type",
				Name:    ctx.Label("project.node.type"),
				Span:    model.Fixed(4),
				Options: optionList("VARCHAR", "INTEGER", "LONG", "FLOAT", "DOUBLE", "DATE", "TIME", "TIMESTAMP", "BOOLEAN", "LIST", "FILE"),
			},
			value,
		}
	}

	desc := model.Descriptor{
		Type:     model.FieldTypeCustomParameters,
		Field:    req.Field,
		Name:     ctx.Label("project.node.custom_parameters"),
		Span:     model.Fixed(model.GridColumns),
		Children: children,
	}
	if len(ctx.State.LocalParams) > 0 && req.Field == selection.FieldLocalParams {
		desc.Value = append([]selection.Property(nil), ctx.State.LocalParams...)
	}
	return []model.Descriptor{desc}
}

func optionList(values ...string) []model.Option {
	out := make([]model.Option, len(values))
	for i, v := range values {
		out[i] = model.Option{Value: v, Label: v}
	}
	return out
}
