// Package seatunnel builds the field descriptors of the SeaTunnel task form.
// The generator derives the layout signals from a selection snapshot and
// assembles the descriptors in a fixed order, splicing in the output of the
// namespace, resource and custom parameter collaborators.
package seatunnel

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-taskform/pkg/i18n"
	"github.com/goliatone/go-taskform/pkg/model"
	"github.com/goliatone/go-taskform/pkg/pickers"
	"github.com/goliatone/go-taskform/pkg/selection"
	"github.com/goliatone/go-taskform/pkg/signals"
	"github.com/goliatone/go-taskform/pkg/validation"
)

// Image pull policies accepted by the Kubernetes runtime.
const (
	ImagePullPolicyIfNotPresent = selection.ImagePullPolicyIfNotPresent
	ImagePullPolicyAlways       = "Always"
	ImagePullPolicyNever        = "Never"
)

const (
	imageSpan      = 18
	pullPolicySpan = 6
	resourceLimit  = 1
)

// ImagePullPolicyOptions returns the pull policy choices. Each value doubles as
// its label.
func ImagePullPolicyOptions() []model.Option {
	return []model.Option{
		{Value: ImagePullPolicyIfNotPresent, Label: ImagePullPolicyIfNotPresent},
		{Value: ImagePullPolicyAlways, Label: ImagePullPolicyAlways},
		{Value: ImagePullPolicyNever, Label: ImagePullPolicyNever},
	}
}

// Generator produces the SeaTunnel descriptor sequence. It is safe for
// concurrent use once constructed.
type Generator struct {
	namespaces   pickers.NamespaceGenerator
	resources    pickers.ResourceGenerator
	customParams pickers.CustomParamsGenerator
	translator   i18n.Translator
	onMissing    i18n.MissingHandler
	locale       string
	logger       *zap.Logger
	decorators   []model.Decorator
}

// New constructs a generator. Without options it uses the bundled catalog,
// an empty namespace list and the default resource and custom parameter
// collaborators.
func New(opts ...Option) *Generator {
	g := &Generator{
		namespaces:   pickers.StaticNamespaces{},
		resources:    pickers.DefaultResources{},
		customParams: pickers.DefaultCustomParams{},
		locale:       i18n.DefaultLocale,
		logger:       zap.NewNop(),
	}
	if catalog, err := i18n.Default(); err == nil {
		g.translator = catalog
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Locale reports the locale labels are resolved in.
func (g *Generator) Locale() string {
	return g.locale
}

// ForLocale returns a copy of the generator resolving labels in locale.
func (g *Generator) ForLocale(locale string) *Generator {
	if locale == "" || locale == g.locale {
		return g
	}
	clone := *g
	clone.locale = locale
	clone.decorators = append([]model.Decorator(nil), g.decorators...)
	return &clone
}

// Generate derives the signals for state and returns them with the
// descriptor sequence built from the same snapshot.
func (g *Generator) Generate(state selection.State) model.Schema {
	state = state.Clone()
	sig := signals.Derive(state)
	schema := model.Schema{
		Fields:  g.build(state, sig),
		Signals: sig,
	}

	for _, decorator := range g.decorators {
		if err := decorator.Decorate(&schema); err != nil {
			g.logger.Warn("schema decorator failed", zap.Error(err))
		}
	}

	g.logger.Debug("generated seatunnel schema",
		zap.String("startup_script", state.StartupScript),
		zap.Bool("use_custom", state.UseCustom),
		zap.Int("fields", len(schema.Fields)),
	)
	return schema
}

// Fields returns only the descriptor sequence for state.
func (g *Generator) Fields(state selection.State) []model.Descriptor {
	return g.Generate(state).Fields
}

func (g *Generator) build(state selection.State, sig signals.Signals) []model.Descriptor {
	t := i18n.Lookup(g.translator, g.locale, g.onMissing)
	ctx := pickers.Context{State: state, Signals: sig, T: t}

	fields := make([]model.Descriptor, 0, 16)
	fields = append(fields, g.namespaces.Namespace(ctx)...)
	fields = append(fields,
		imageField(state, t),
		pullPolicyField(state, t),
		withMin(memoryField(selection.FieldJobManagerMemory, state.JobManagerMemory, "project.node.job_manager_memory",
			"project.node.job_manager_memory_tips", "project.node.job_manager_memory_tips", t), 1),
		memoryField(selection.FieldTaskManagerMemory, state.TaskManagerMemory, "project.node.task_manager_memory",
			"project.node.task_manager_memory_tips", "project.node.task_manager_memory", t),
		countField(selection.FieldSlot, state.Slot, "project.node.slot_number", "project.node.slot_number_tips", t),
		countField(selection.FieldTaskManager, state.TaskManager, "project.node.task_manager_number", "project.node.task_manager_number_tips", t),
		useCustomField(state, t),
		rawScriptField(state, t),
	)
	fields = append(fields, g.resources.Resources(ctx, pickers.ResourceRequest{
		Span:    model.SpanOf(signals.ResourceEditorSpan),
		Enabled: true,
		Limit:   resourceLimit,
	})...)
	fields = append(fields, g.customParams.CustomParams(ctx, pickers.CustomParamsRequest{
		Field:  selection.FieldLocalParams,
		Simple: true,
	})...)
	return fields
}

func imageField(state selection.State, t i18n.Func) model.Descriptor {
	desc := model.Descriptor{
		Type:  model.FieldTypeInput,
		Field: selection.FieldImage,
		Name:  t("project.node.image"),
		Span:  model.Fixed(imageSpan),
		Props: model.Props{model.PropPlaceholder: t("project.node.image_tips")},
		Validate: &model.Validate{
			Trigger: []string{model.TriggerInput, model.TriggerBlur},
			Message: t("project.node.image_tips"),
		},
	}
	if state.Image != "" {
		desc.Value = state.Image
	}
	return desc
}

func pullPolicyField(state selection.State, t i18n.Func) model.Descriptor {
	value := state.ImagePullPolicy
	if value == "" {
		value = ImagePullPolicyIfNotPresent
	}
	return model.Descriptor{
		Type:    model.FieldTypeSelect,
		Field:   selection.FieldImagePullPolicy,
		Name:    t("project.node.image_pull_policy"),
		Span:    model.Fixed(pullPolicySpan),
		Options: ImagePullPolicyOptions(),
		Validate: &model.Validate{
			Trigger: []string{model.TriggerInput, model.TriggerBlur},
			Message: t("project.node.image_pull_policy_tips"),
		},
		Value: value,
	}
}

// memoryField builds a free-text memory size input. errPrefix is joined with
// the shared positive integer suffix when the value does not start with an
// integer.
func memoryField(field, value, nameKey, placeholderKey, errPrefix string, t i18n.Func) model.Descriptor {
	desc := model.Descriptor{
		Type:  model.FieldTypeInput,
		Field: field,
		Name:  t(nameKey),
		Span:  model.Fixed(signals.Half),
		Props: model.Props{model.PropPlaceholder: t(placeholderKey)},
		Validate: &model.Validate{
			Trigger:   []string{model.TriggerInput, model.TriggerBlur},
			Validator: validation.Integer(t(errPrefix) + t("project.node.positive_integer_tips")),
		},
	}
	if value != "" {
		desc.Value = value
	}
	return desc
}

// withMin sets the lower bound prop on desc.
func withMin(desc model.Descriptor, lower int) model.Descriptor {
	desc.Props[model.PropMin] = lower
	return desc
}

func countField(field string, value *int, nameKey, placeholderKey string, t i18n.Func) model.Descriptor {
	desc := model.Descriptor{
		Type:  model.FieldTypeInputNumber,
		Field: field,
		Name:  t(nameKey),
		Span:  model.Fixed(signals.Half),
		Props: model.Props{
			model.PropPlaceholder: t(placeholderKey),
			model.PropMin:         1,
		},
	}
	if value != nil {
		desc.Value = *value
	}
	return desc
}

func useCustomField(state selection.State, t i18n.Func) model.Descriptor {
	return model.Descriptor{
		Type:  model.FieldTypeSwitch,
		Field: selection.FieldUseCustom,
		Name:  t("project.node.custom_config"),
		Value: state.UseCustom,
	}
}

func rawScriptField(state selection.State, t i18n.Func) model.Descriptor {
	useCustom := state.UseCustom
	message := t("project.node.script_tips")
	desc := model.Descriptor{
		Type:  model.FieldTypeEditor,
		Field: selection.FieldRawScript,
		Name:  t("project.node.script"),
		Span:  model.SpanOf(signals.ConfigEditorSpan),
		Validate: &model.Validate{
			Trigger:   []string{model.TriggerInput, model.TriggerTrigger},
			Required:  model.FlagOf(signals.UseCustom),
			Message:   message,
			Validator: validation.RequiredWhen(func() bool { return useCustom }, message),
		},
	}
	if state.RawScript != "" {
		desc.Value = state.RawScript
	}
	return desc
}

// Validate generates the schema for state and attaches descriptor-level
// errors for the values the state currently holds.
func (g *Generator) Validate(state selection.State) model.Schema {
	schema := g.Generate(state)
	return validation.Apply(schema, state.Values(), g.Label("project.node.required_tips"))
}

// Label resolves key in the generator's locale with its missing key handling.
func (g *Generator) Label(key string) string {
	return i18n.Lookup(g.translator, g.locale, g.onMissing)(key)
}
