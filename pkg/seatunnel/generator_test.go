package seatunnel

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/goliatone/go-taskform/pkg/i18n"
	"github.com/goliatone/go-taskform/pkg/model"
	"github.com/goliatone/go-taskform/pkg/pickers"
	"github.com/goliatone/go-taskform/pkg/reactive"
	"github.com/goliatone/go-taskform/pkg/selection"
	"github.com/goliatone/go-taskform/pkg/signals"
	"github.com/goliatone/go-taskform/pkg/testsupport"
)

func intPtr(v int) *int { return &v }

func TestFieldsFixedOrder(t *testing.T) {
	t.Parallel()

	gen := New()
	got := testsupport.FieldNames(gen.Fields(selection.Default()))
	want := []string{
		"namespace",
		"image",
		"imagePullPolicy",
		"jobManagerMemory",
		"taskManagerMemory",
		"slot",
		"taskManager",
		"useCustom",
		"rawScript",
		"resourceList",
		"localParams",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldAttributes(t *testing.T) {
	t.Parallel()

	state := selection.Default()
	state.Slot = intPtr(3)
	state.TaskManager = intPtr(2)
	state.TaskManagerMemory = "2048"
	state.ImagePullPolicy = ""

	fields := New().Fields(state)
	sig := signals.Derive(state)

	image := testsupport.FindDescriptor(t, fields, "image")
	if image.Span.Resolve(sig) != 18 || image.Required(sig) {
		t.Fatalf("unexpected image descriptor %+v", image)
	}

	policy := testsupport.FindDescriptor(t, fields, "imagePullPolicy")
	if policy.Span.Resolve(sig) != 6 || policy.Value != "IfNotPresent" {
		t.Fatalf("unexpected pull policy descriptor %+v", policy)
	}
	if diff := cmp.Diff(ImagePullPolicyOptions(), policy.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	slot := testsupport.FindDescriptor(t, fields, "slot")
	if slot.Type != model.FieldTypeInputNumber || slot.Value != 3 || slot.Props[model.PropMin] != 1 {
		t.Fatalf("unexpected slot descriptor %+v", slot)
	}
	if got := testsupport.FindDescriptor(t, fields, "taskManager").Value; got != 2 {
		t.Fatalf("expected taskManager seeded with 2, got %v", got)
	}
	if got := testsupport.FindDescriptor(t, fields, "taskManagerMemory").Value; got != "2048" {
		t.Fatalf("expected taskManagerMemory seeded, got %v", got)
	}

	toggle := testsupport.FindDescriptor(t, fields, "useCustom")
	if toggle.Type != model.FieldTypeSwitch || toggle.Span.IsSet() || toggle.Validate != nil {
		t.Fatalf("unexpected toggle descriptor %+v", toggle)
	}
}

func TestImagePullPolicyOptions(t *testing.T) {
	t.Parallel()

	want := []model.Option{
		{Value: "IfNotPresent", Label: "IfNotPresent"},
		{Value: "Always", Label: "Always"},
		{Value: "Never", Label: "Never"},
	}
	if diff := cmp.Diff(want, ImagePullPolicyOptions()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryValidators(t *testing.T) {
	t.Parallel()

	fields := New().Fields(selection.Default())
	for _, tc := range []struct {
		field  string
		prefix string
	}{
		{field: "jobManagerMemory", prefix: "Please enter JobManager memory"},
		{field: "taskManagerMemory", prefix: "TaskManager memory size"},
	} {
		validate := testsupport.FindDescriptor(t, fields, tc.field).Validate.Validator
		if err := validate(""); err != nil {
			t.Fatalf("%s: expected empty value to pass, got %v", tc.field, err)
		}
		if err := validate("4096"); err != nil {
			t.Fatalf("%s: expected 4096 to pass, got %v", tc.field, err)
		}
		err := validate("abc")
		if err == nil {
			t.Fatalf("%s: expected abc to fail", tc.field)
		}
		if want := tc.prefix + " should be a positive integer"; err.Error() != want {
			t.Fatalf("%s: expected %q, got %q", tc.field, want, err.Error())
		}
	}
}

func TestOnlyJobManagerMemoryHasLowerBound(t *testing.T) {
	t.Parallel()

	fields := New().Fields(selection.Default())
	if got := testsupport.FindDescriptor(t, fields, "jobManagerMemory").Props[model.PropMin]; got != 1 {
		t.Fatalf("expected jobManagerMemory min 1, got %v", got)
	}
	if _, ok := testsupport.FindDescriptor(t, fields, "taskManagerMemory").Props[model.PropMin]; ok {
		t.Fatalf("expected taskManagerMemory without a lower bound")
	}
}

func TestRawScriptFollowsUseCustom(t *testing.T) {
	t.Parallel()

	gen := New()

	on := selection.Default()
	on.UseCustom = true
	schema := gen.Generate(on)
	script := testsupport.FindDescriptor(t, schema.Fields, "rawScript")
	if script.Span.Resolve(schema.Signals) != 24 || !script.Required(schema.Signals) {
		t.Fatalf("expected visible required script, got span=%d", script.Span.Resolve(schema.Signals))
	}
	if err := script.Validate.Validator(""); err == nil || err.Error() != "Please enter script(required)" {
		t.Fatalf("expected script_tips error, got %v", err)
	}
	if res := testsupport.FindDescriptor(t, schema.Fields, "resourceList"); res.Span.Resolve(schema.Signals) != 0 {
		t.Fatalf("expected hidden resource picker while custom")
	}

	off := selection.Default()
	off.UseCustom = false
	schema = gen.Generate(off)
	script = testsupport.FindDescriptor(t, schema.Fields, "rawScript")
	if script.Span.Resolve(schema.Signals) != 0 || script.Required(schema.Signals) {
		t.Fatalf("expected hidden optional script")
	}
	if err := script.Validate.Validator(""); err != nil {
		t.Fatalf("expected inactive validator, got %v", err)
	}
	if res := testsupport.FindDescriptor(t, schema.Fields, "resourceList"); res.Span.Resolve(schema.Signals) != 24 {
		t.Fatalf("expected full width resource picker")
	}
}

func TestEndToEndSparkClusterMesos(t *testing.T) {
	t.Parallel()

	state := selection.State{
		StartupScript: "spark-submit",
		DeployMode:    selection.DeployModeCluster,
		Master:        selection.MasterMesos,
		UseCustom:     false,
	}
	schema := New().Generate(state)

	want := signals.Signals{
		ConfigEditorSpan:   0,
		ResourceEditorSpan: 24,
		FlinkSpan:          0,
		DeployModeSpan:     24,
		MasterSpan:         12,
		MasterURLSpan:      12,
		OthersSpan:         0,
		ShowClient:         true,
		ShowLocal:          false,
		UseCustom:          false,
	}
	if diff := cmp.Diff(want, schema.Signals); diff != "" {
		t.Fatalf("signals mismatch (-want +got):\n%s", diff)
	}
	if got := testsupport.FindDescriptor(t, schema.Fields, "rawScript"); got.Span.Resolve(schema.Signals) != 0 || got.Required(schema.Signals) {
		t.Fatalf("expected hidden optional script")
	}
	if got := testsupport.FindDescriptor(t, schema.Fields, "resourceList"); got.Span.Resolve(schema.Signals) != 24 {
		t.Fatalf("expected visible resource picker")
	}
}

func TestCollaboratorsAreSpliced(t *testing.T) {
	t.Parallel()

	var gotReq pickers.ResourceRequest
	gen := New(
		WithNamespacePicker(pickers.NamespaceFunc(func(pickers.Context) []model.Descriptor {
			return []model.Descriptor{{Type: model.FieldTypeSelect, Field: "ns-a"}, {Type: model.FieldTypeSelect, Field: "ns-b"}}
		})),
		WithResourcePicker(pickers.ResourceFunc(func(_ pickers.Context, req pickers.ResourceRequest) []model.Descriptor {
			gotReq = req
			return []model.Descriptor{{Field: "res", Span: req.Span}}
		})),
		WithCustomParams(pickers.CustomParamsFunc(func(pickers.Context, pickers.CustomParamsRequest) []model.Descriptor {
			return nil
		})),
	)

	names := testsupport.FieldNames(gen.Fields(selection.Default()))
	if names[0] != "ns-a" || names[1] != "ns-b" {
		t.Fatalf("expected namespace output first, got %v", names)
	}
	if last := names[len(names)-1]; last != "res" {
		t.Fatalf("expected empty custom parameter tail, got last=%q", last)
	}
	want := pickers.ResourceRequest{Span: model.SpanOf(signals.ResourceEditorSpan), Enabled: true, Limit: 1}
	if diff := cmp.Diff(want, gotReq); diff != "" {
		t.Fatalf("resource request mismatch (-want +got):\n%s", diff)
	}
}

func TestLocaleAndTranslator(t *testing.T) {
	t.Parallel()

	gen := New()
	zh := gen.ForLocale("zh")
	if zh == gen || zh.Locale() != "zh" || gen.Locale() != "en" {
		t.Fatalf("ForLocale should return an independent copy")
	}
	if got := testsupport.FindDescriptor(t, zh.Fields(selection.Default()), "image").Name; got != "镜像" {
		t.Fatalf("expected zh label, got %q", got)
	}

	keys := New(WithTranslator(nil))
	if got := testsupport.FindDescriptor(t, keys.Fields(selection.Default()), "image").Name; got != "project.node.image" {
		t.Fatalf("expected key echo, got %q", got)
	}

	custom := New(
		WithTranslator(i18n.TranslatorFunc(func(string, string, ...any) (string, error) {
			return "", i18n.ErrMissingTranslation
		})),
		WithMissingHandler(func(_, key string, _ error) string { return "<" + key + ">" }),
	)
	if got := testsupport.FindDescriptor(t, custom.Fields(selection.Default()), "image").Name; got != "<project.node.image>" {
		t.Fatalf("expected missing handler output, got %q", got)
	}
}

func TestDecoratorsRunInOrder(t *testing.T) {
	t.Parallel()

	var calls []string
	gen := New(
		WithLogger(zap.NewNop()),
		WithDecorators(
			model.DecoratorFunc(func(s *model.Schema) error {
				calls = append(calls, "first")
				s.Fields = s.Fields[:1]
				return nil
			}),
			model.DecoratorFunc(func(*model.Schema) error {
				calls = append(calls, "second")
				return errors.New("ignored")
			}),
		),
	)

	schema := gen.Generate(selection.Default())
	if len(schema.Fields) != 1 {
		t.Fatalf("expected decorator to trim fields, got %d", len(schema.Fields))
	}
	if diff := cmp.Diff([]string{"first", "second"}, calls); diff != "" {
		t.Fatalf("decorator order mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateAttachesErrors(t *testing.T) {
	t.Parallel()

	state := selection.Default()
	state.UseCustom = true
	state.JobManagerMemory = "lots"

	schema := New().Validate(state)

	if got := testsupport.FindDescriptor(t, schema.Fields, "jobManagerMemory").Errors; len(got) != 1 {
		t.Fatalf("expected one memory error, got %v", got)
	}
	if diff := cmp.Diff([]string{"Please enter script(required)"}, testsupport.FindDescriptor(t, schema.Fields, "rawScript").Errors); diff != "" {
		t.Fatalf("script errors mismatch (-want +got):\n%s", diff)
	}

	state.UseCustom = false
	schema = New().Validate(state)
	if got := testsupport.FindDescriptor(t, schema.Fields, "rawScript").Errors; len(got) != 0 {
		t.Fatalf("expected hidden script to skip validation, got %v", got)
	}
}

func TestLiveRebuildsOnStoreUpdate(t *testing.T) {
	t.Parallel()

	store := reactive.NewStore(selection.Default())
	live := New().Bind(store)
	defer live.Close()

	var seen []bool
	cancel := live.Subscribe(func(s model.Schema) {
		seen = append(seen, s.Signals.UseCustom)
	})

	if !live.Schema().Signals.UseCustom {
		t.Fatalf("expected initial schema built from store")
	}

	store.Update(func(s *selection.State) { s.UseCustom = false })
	schema := live.Schema()
	if testsupport.FindDescriptor(t, schema.Fields, "rawScript").Span.Resolve(schema.Signals) != 0 {
		t.Fatalf("expected script hidden after toggle")
	}

	cancel()
	store.Update(func(s *selection.State) { s.UseCustom = true })
	if diff := cmp.Diff([]bool{false}, seen); diff != "" {
		t.Fatalf("listener calls mismatch (-want +got):\n%s", diff)
	}
	if !live.Schema().Signals.UseCustom {
		t.Fatalf("expected schema to keep tracking after listener removal")
	}

	live.Close()
	store.Update(func(s *selection.State) { s.UseCustom = false })
	if !live.Schema().Signals.UseCustom {
		t.Fatalf("expected closed projection to stop tracking")
	}
}

func TestGenerateFromStateFixtures(t *testing.T) {
	t.Parallel()

	gen := New()

	spark := gen.Validate(testsupport.MustLoadState(t, filepath.Join("..", "testsupport", "testdata", "spark_cluster_mesos.yaml")))
	if spark.Signals.MasterURLSpan != signals.Half || spark.Signals.ConfigEditorSpan != signals.Hidden {
		t.Fatalf("unexpected spark signals %+v", spark.Signals)
	}
	resources := testsupport.FindDescriptor(t, spark.Fields, selection.FieldResourceList)
	if diff := cmp.Diff([]int{7}, resources.Value); diff != "" {
		t.Fatalf("resource value mismatch (-want +got):\n%s", diff)
	}
	if len(resources.Errors) != 0 {
		t.Fatalf("expected no resource errors, got %v", resources.Errors)
	}

	flink := gen.Validate(testsupport.MustLoadState(t, filepath.Join("..", "testsupport", "testdata", "flink_custom.json")))
	if flink.Signals.FlinkSpan != signals.Full || flink.Signals.DeployModeSpan != signals.Hidden {
		t.Fatalf("unexpected flink signals %+v", flink.Signals)
	}
	script := testsupport.FindDescriptor(t, flink.Fields, selection.FieldRawScript)
	if len(script.Errors) != 0 || script.Value != `env { job.mode = "BATCH" }` {
		t.Fatalf("unexpected script descriptor %+v", script)
	}
	if slot := testsupport.FindDescriptor(t, flink.Fields, selection.FieldSlot); slot.Value != 2 {
		t.Fatalf("expected seeded slot, got %v", slot.Value)
	}
}
