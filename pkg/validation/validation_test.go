package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-taskform/pkg/model"
	"github.com/goliatone/go-taskform/pkg/signals"
)

func TestParseLeadingInt(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{in: "4096", want: 4096, ok: true},
		{in: "  12", want: 12, ok: true},
		{in: "-3", want: -3, ok: true},
		{in: "+7", want: 7, ok: true},
		{in: "2048m", want: 2048, ok: true},
		{in: "abc", ok: false},
		{in: "", ok: false},
		{in: "-", ok: false},
		{in: "m2048", ok: false},
	}

	for _, tc := range cases {
		got, ok := ParseLeadingInt(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("ParseLeadingInt(%q) = %d, %v; want %d, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestIntegerValidator(t *testing.T) {
	t.Parallel()

	validate := Integer("memory should be a positive integer")

	if err := validate(""); err != nil {
		t.Fatalf("expected empty input to pass, got %v", err)
	}
	if err := validate("4096"); err != nil {
		t.Fatalf("expected 4096 to pass, got %v", err)
	}
	err := validate("abc")
	if err == nil || err.Error() != "memory should be a positive integer" {
		t.Fatalf("expected positive integer error, got %v", err)
	}
}

func TestRequiredWhen(t *testing.T) {
	t.Parallel()

	active := true
	validate := RequiredWhen(func() bool { return active }, "script required")

	if err := validate(""); err == nil {
		t.Fatalf("expected error while active")
	}
	if err := validate("echo hi"); err != nil {
		t.Fatalf("expected value to pass, got %v", err)
	}
	active = false
	if err := validate(""); err != nil {
		t.Fatalf("expected inactive validator to pass, got %v", err)
	}
}

func TestApplyAttachesMessages(t *testing.T) {
	t.Parallel()

	schema := model.Schema{
		Signals: signals.Signals{ConfigEditorSpan: signals.Full, UseCustom: true},
		Fields: []model.Descriptor{
			{
				Type:  model.FieldTypeInput,
				Field: "jobManagerMemory",
				Span:  model.Fixed(12),
				Validate: &model.Validate{
					Validator: Integer("bad memory"),
				},
			},
			{
				Type:  model.FieldTypeEditor,
				Field: "rawScript",
				Span:  model.SpanOf(signals.ConfigEditorSpan),
				Validate: &model.Validate{
					Required:  model.FlagOf(signals.UseCustom),
					Message:   "script required",
					Validator: RequiredWhen(func() bool { return true }, "script required"),
				},
			},
			{
				Type:  model.FieldTypeResources,
				Field: "resourceList",
				Span:  model.SpanOf(signals.ResourceEditorSpan),
				Validate: &model.Validate{
					Required: model.Flag{Value: true},
				},
			},
		},
	}

	got := Apply(schema, map[string]any{"jobManagerMemory": "abc", "rawScript": ""}, "required")

	if diff := cmp.Diff([]string{"bad memory"}, got.Fields[0].Errors); diff != "" {
		t.Fatalf("memory errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"script required"}, got.Fields[1].Errors); diff != "" {
		t.Fatalf("script errors mismatch (-want +got):\n%s", diff)
	}
	if len(got.Fields[2].Errors) != 0 {
		t.Fatalf("expected hidden descriptor to be skipped, got %v", got.Fields[2].Errors)
	}
	if len(schema.Fields[0].Errors) != 0 {
		t.Fatalf("Apply mutated its input")
	}
	if Valid(got.Fields) {
		t.Fatalf("expected Valid to report errors")
	}

	mapping := Collect(got.Fields)
	want := map[string][]string{
		"jobManagerMemory": {"bad memory"},
		"rawScript":        {"script required"},
	}
	if diff := cmp.Diff(want, mapping.Fields); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestAttachRoutesUnknownPathsToForm(t *testing.T) {
	t.Parallel()

	fields := []model.Descriptor{{Field: "image"}, {Field: "slot"}}
	out, form := Attach(fields, map[string][]string{
		"/image":   {"image not found", " image not found "},
		"slot[0]":  {"too many"},
		"__all__":  {"quota exceeded"},
		"unmapped": {""},
	})

	if diff := cmp.Diff([]string{"image not found"}, out[0].Errors); diff != "" {
		t.Fatalf("image errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"too many"}, out[1].Errors); diff != "" {
		t.Fatalf("slot errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"quota exceeded"}, form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
	if len(fields[0].Errors) != 0 {
		t.Fatalf("Attach mutated its input")
	}
}
