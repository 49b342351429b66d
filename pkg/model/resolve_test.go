package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-taskform/pkg/signals"
)

func TestSpanResolve(t *testing.T) {
	t.Parallel()

	sig := signals.Signals{ConfigEditorSpan: signals.Full, MasterSpan: signals.Half}

	cases := []struct {
		name string
		span Span
		want int
	}{
		{name: "unset defaults to full row", span: Span{}, want: GridColumns},
		{name: "literal", span: Fixed(18), want: 18},
		{name: "literal clamped", span: Fixed(40), want: GridColumns},
		{name: "reference", span: SpanOf(signals.MasterSpan), want: signals.Half},
		{name: "hidden reference", span: SpanOf(signals.ResourceEditorSpan), want: 0},
		{name: "reference wins over literal", span: Span{Value: 6, Ref: signals.ConfigEditorSpan}, want: signals.Full},
	}

	for _, tc := range cases {
		if got := tc.span.Resolve(sig); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestFlagResolve(t *testing.T) {
	t.Parallel()

	if (Flag{Value: true}).Resolve(signals.Signals{}) != true {
		t.Fatalf("expected literal flag to resolve true")
	}
	if FlagOf(signals.UseCustom).Resolve(signals.Signals{UseCustom: false}) {
		t.Fatalf("expected reference to follow signals")
	}
	if !FlagOf(signals.UseCustom).Resolve(signals.Signals{UseCustom: true}) {
		t.Fatalf("expected reference to follow signals")
	}
}

func TestDescriptorResolve(t *testing.T) {
	t.Parallel()

	desc := Descriptor{
		Type:  FieldTypeEditor,
		Field: "rawScript",
		Name:  "Script",
		Span:  SpanOf(signals.ConfigEditorSpan),
		Validate: &Validate{
			Trigger:  []string{TriggerInput, TriggerTrigger},
			Required: FlagOf(signals.UseCustom),
			Message:  "required",
		},
		Children: []Descriptor{{Type: FieldTypeInput, Field: "prop", Name: "Prop", Span: Fixed(10)}},
	}

	hidden := desc.Resolve(signals.Signals{})
	if !hidden.Hidden || hidden.Span != 0 || hidden.Required {
		t.Fatalf("expected hidden optional descriptor, got %+v", hidden)
	}

	shown := desc.Resolve(signals.Signals{ConfigEditorSpan: signals.Full, UseCustom: true})
	want := Resolved{
		Type:     FieldTypeEditor,
		Field:    "rawScript",
		Name:     "Script",
		Span:     signals.Full,
		Required: true,
		Trigger:  []string{TriggerInput, TriggerTrigger},
		Message:  "required",
		Options:  nil,
		Children: []Resolved{{Type: FieldTypeInput, Field: "prop", Name: "Prop", Span: 10}},
	}
	if diff := cmp.Diff(want, shown); diff != "" {
		t.Fatalf("resolved mismatch (-want +got):\n%s", diff)
	}

	if got := Visible([]Resolved{hidden, shown}); len(got) != 1 || got[0].Field != "rawScript" || got[0].Hidden {
		t.Fatalf("unexpected visible set: %+v", got)
	}
}
