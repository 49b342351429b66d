package pickers

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-taskform/pkg/model"
	"github.com/goliatone/go-taskform/pkg/selection"
	"github.com/goliatone/go-taskform/pkg/signals"
)

func echoContext(state selection.State) Context {
	return Context{
		State:   state,
		Signals: signals.Derive(state),
		T:       func(key string) string { return "t:" + key },
	}
}

func TestStaticNamespaces(t *testing.T) {
	t.Parallel()

	state := selection.Default()
	state.Namespace = "etl(prod)"

	got := StaticNamespaces{Namespaces: []Namespace{
		{Name: "etl", Cluster: "prod"},
		{Name: "sandbox"},
	}}.Namespace(echoContext(state))

	if len(got) != 1 {
		t.Fatalf("expected one descriptor, got %d", len(got))
	}
	desc := got[0]
	if desc.Type != model.FieldTypeSelect || desc.Field != selection.FieldNamespace {
		t.Fatalf("unexpected descriptor %+v", desc)
	}
	if desc.Name != "t:project.node.namespace_cluster" {
		t.Fatalf("expected translated name, got %q", desc.Name)
	}
	wantOptions := []model.Option{
		{Value: "etl(prod)", Label: "etl(prod)"},
		{Value: "sandbox", Label: "sandbox"},
	}
	if diff := cmp.Diff(wantOptions, desc.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if desc.Value != "etl(prod)" {
		t.Fatalf("expected seeded value, got %v", desc.Value)
	}
}

func TestNamespaceKey(t *testing.T) {
	t.Parallel()

	tests := map[string]Namespace{
		"etl(prod)": {Name: "etl", Cluster: "prod"},
		"sandbox":   {Name: "sandbox"},
	}
	for want, ns := range tests {
		if got := ns.Key(); got != want {
			t.Fatalf("Key() for %+v = %q, want %q", ns, got, want)
		}
	}
}

func TestDefaultResources(t *testing.T) {
	t.Parallel()

	ctx := echoContext(selection.Default())

	if got := (DefaultResources{}).Resources(ctx, ResourceRequest{Span: model.Fixed(24), Enabled: false, Limit: 1}); got != nil {
		t.Fatalf("expected disabled picker to return nothing, got %+v", got)
	}

	got := DefaultResources{}.Resources(ctx, ResourceRequest{
		Span:    model.SpanOf(signals.ResourceEditorSpan),
		Enabled: true,
		Limit:   1,
	})
	if len(got) != 1 {
		t.Fatalf("expected one descriptor, got %d", len(got))
	}
	desc := got[0]
	if desc.Field != selection.FieldResourceList || desc.Type != model.FieldTypeResources {
		t.Fatalf("unexpected descriptor %+v", desc)
	}
	if desc.Span != model.SpanOf(signals.ResourceEditorSpan) {
		t.Fatalf("expected span reference to be forwarded, got %+v", desc.Span)
	}
	if desc.Props[model.PropMultiple] != false || desc.Props[model.PropLimit] != 1 {
		t.Fatalf("unexpected props %+v", desc.Props)
	}
}

func TestDefaultCustomParamsModes(t *testing.T) {
	t.Parallel()

	ctx := echoContext(selection.Default())

	simple := DefaultCustomParams{}.CustomParams(ctx, CustomParamsRequest{Field: selection.FieldLocalParams, Simple: true})
	if len(simple) != 1 {
		t.Fatalf("expected one descriptor, got %d", len(simple))
	}
	if got := childFields(simple[0]); !cmp.Equal(got, []string{"prop", "value"}) {
		t.Fatalf("unexpected simple columns %v", got)
	}

	full := DefaultCustomParams{}.CustomParams(ctx, CustomParamsRequest{Field: selection.FieldLocalParams})
	if got := childFields(full[0]); !cmp.Equal(got, []string{"prop", "direct", "type", "value"}) {
		t.Fatalf("unexpected full columns %v", got)
	}

	if got := (DefaultCustomParams{}).CustomParams(ctx, CustomParamsRequest{}); got != nil {
		t.Fatalf("expected unbound request to return nothing, got %+v", got)
	}
}

func TestFuncAdapters(t *testing.T) {
	t.Parallel()

	var ns NamespaceGenerator = NamespaceFunc(func(Context) []model.Descriptor {
		return []model.Descriptor{{Field: "ns"}}
	})
	var res ResourceGenerator = ResourceFunc(func(_ Context, req ResourceRequest) []model.Descriptor {
		return []model.Descriptor{{Field: "res", Span: req.Span}}
	})
	var params CustomParamsGenerator = CustomParamsFunc(func(Context, CustomParamsRequest) []model.Descriptor {
		return nil
	})

	ctx := Context{}
	if got := ns.Namespace(ctx); got[0].Field != "ns" {
		t.Fatalf("unexpected namespace output %+v", got)
	}
	if got := res.Resources(ctx, ResourceRequest{Span: model.Fixed(6)}); got[0].Span.Value != 6 {
		t.Fatalf("unexpected resource output %+v", got)
	}
	if got := params.CustomParams(ctx, CustomParamsRequest{}); len(got) != 0 {
		t.Fatalf("expected empty tail, got %+v", got)
	}
	if got := ctx.Label("plain"); got != "plain" {
		t.Fatalf("expected key echo without lookup, got %q", got)
	}
}

func childFields(desc model.Descriptor) []string {
	out := make([]string, len(desc.Children))
	for i, child := range desc.Children {
		out[i] = child.Field
	}
	return out
}
