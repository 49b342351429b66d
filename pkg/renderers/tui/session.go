// Package tui walks the SeaTunnel task form in a terminal. A Session binds a
// generator to a reactive store and prompts descriptor by descriptor; every
// answer is written back to the store, so the next prompt is chosen from the
// schema rebuilt for the updated selections.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-taskform/pkg/model"
	"github.com/goliatone/go-taskform/pkg/reactive"
	"github.com/goliatone/go-taskform/pkg/seatunnel"
	"github.com/goliatone/go-taskform/pkg/selection"
	"github.com/goliatone/go-taskform/pkg/signals"
	"github.com/goliatone/go-taskform/pkg/validation"
)

// Session collects task selections interactively.
type Session struct {
	gen         *seatunnel.Generator
	store       *reactive.Store
	driver      PromptDriver
	askLauncher bool
	maxAttempts int
	theme       Theme
	logger      *zap.Logger
}

// NewSession prepares a session over store. A nil store starts from the
// default selections.
func NewSession(gen *seatunnel.Generator, store *reactive.Store, opts ...Option) *Session {
	if gen == nil {
		gen = seatunnel.New()
	}
	if store == nil {
		store = reactive.NewStore(selection.Default())
	}
	s := &Session{
		gen:         gen,
		store:       store,
		driver:      NewSurveyDriver(nil),
		maxAttempts: defaultMaxAttempts,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Run prompts until every visible bound descriptor has been answered once and
// returns the resulting selections.
func (s *Session) Run(ctx context.Context) (selection.State, error) {
	live := s.gen.Bind(s.store)
	defer live.Close()

	if s.askLauncher {
		if err := s.promptLauncher(ctx); err != nil {
			return selection.State{}, err
		}
	}

	asked := make(map[string]struct{})
	for {
		if err := ctx.Err(); err != nil {
			return selection.State{}, err
		}
		schema := live.Schema()
		desc, ok := nextField(schema, asked)
		if !ok {
			break
		}
		asked[desc.Field] = struct{}{}
		if err := s.promptField(ctx, desc, schema.Signals); err != nil {
			return selection.State{}, fmt.Errorf("tui: field %s: %w", desc.Field, err)
		}
	}

	state := s.store.Snapshot()
	s.logger.Debug("prompt session finished",
		zap.String("startup_script", state.StartupScript),
		zap.Int("answered", len(asked)),
	)
	return state, nil
}

func nextField(schema model.Schema, asked map[string]struct{}) (model.Descriptor, bool) {
	for _, desc := range schema.Fields {
		if desc.Field == "" || desc.Span.Resolve(schema.Signals) == 0 {
			continue
		}
		if _, done := asked[desc.Field]; done {
			continue
		}
		return desc, true
	}
	return model.Descriptor{}, false
}

func (s *Session) promptLauncher(ctx context.Context) error {
	state := s.store.Snapshot()
	launchers := []string{selection.LauncherGeneric, selection.LauncherFlink, selection.LauncherSpark}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      s.gen.Label("project.node.startup_script"),
		Options:      launchers,
		DefaultIndex: indexOf(launchers, state.StartupScript),
	})
	if err != nil {
		return err
	}
	if idx >= 0 {
		if err := s.set(selection.FieldStartupScript, launchers[idx]); err != nil {
			return err
		}
	}

	sig := s.store.Signals()
	if sig.DeployModeSpan > 0 {
		modes := deployModes(sig)
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      s.gen.Label("project.node.deploy_mode"),
			Options:      modes,
			DefaultIndex: indexOf(modes, s.store.Snapshot().DeployMode),
		})
		if err != nil {
			return err
		}
		if idx >= 0 {
			if err := s.set(selection.FieldDeployMode, modes[idx]); err != nil {
				return err
			}
		}
	}

	sig = s.store.Signals()
	if sig.MasterSpan > 0 {
		masters := []string{selection.MasterYarn, selection.MasterSpark, selection.MasterMesos, selection.MasterLocal}
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      s.gen.Label("project.node.master"),
			Options:      masters,
			DefaultIndex: indexOf(masters, s.store.Snapshot().Master),
		})
		if err != nil {
			return err
		}
		if idx >= 0 {
			if err := s.set(selection.FieldMaster, masters[idx]); err != nil {
				return err
			}
		}
	}

	sig = s.store.Signals()
	if sig.MasterURLSpan > 0 {
		if err := s.promptText(ctx, selection.FieldMasterURL, "project.node.master_url", s.store.Snapshot().MasterURL); err != nil {
			return err
		}
	}
	if sig.OthersSpan > 0 {
		if err := s.promptText(ctx, selection.FieldOthers, "project.node.others", s.store.Snapshot().Others); err != nil {
			return err
		}
	}
	return nil
}

func deployModes(sig signals.Signals) []string {
	modes := []string{selection.DeployModeCluster}
	if sig.ShowClient {
		modes = append(modes, selection.DeployModeClient)
	}
	if sig.ShowLocal {
		modes = append(modes, selection.DeployModeLocal)
	}
	return modes
}

func (s *Session) promptText(ctx context.Context, field, labelKey, current string) error {
	answer, err := s.driver.Input(ctx, InputConfig{
		Message: s.gen.Label(labelKey),
		Default: current,
	})
	if err != nil {
		return err
	}
	return s.set(field, answer)
}

func (s *Session) promptField(ctx context.Context, desc model.Descriptor, sig signals.Signals) error {
	switch desc.Type {
	case model.FieldTypeSwitch:
		current, _ := desc.Value.(bool)
		answer, err := s.driver.Confirm(ctx, ConfirmConfig{Message: desc.Name, Default: current})
		if err != nil {
			return err
		}
		return s.set(desc.Field, answer)
	case model.FieldTypeSelect:
		return s.promptSelect(ctx, desc)
	case model.FieldTypeCustomParameters:
		return s.promptCustomParams(ctx, desc)
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		answer, err := s.ask(ctx, desc)
		if err != nil {
			return err
		}
		if problem := s.check(desc, sig, answer); problem != "" {
			if err := s.driver.Info(ctx, s.theme.ErrorPrefix+problem); err != nil {
				return err
			}
			continue
		}
		if desc.Type == model.FieldTypeResources {
			if problem := s.checkResources(desc, answer); problem != "" {
				if err := s.driver.Info(ctx, s.theme.ErrorPrefix+problem); err != nil {
					return err
				}
				continue
			}
		}
		if err := s.set(desc.Field, answer); err != nil {
			if infoErr := s.driver.Info(ctx, s.theme.ErrorPrefix+err.Error()); infoErr != nil {
				return infoErr
			}
			continue
		}
		return nil
	}
	return ErrTooManyAttempts
}

func (s *Session) ask(ctx context.Context, desc model.Descriptor) (string, error) {
	current := validation.Stringify(desc.Value)
	if desc.Type == model.FieldTypeEditor {
		syntax, _ := desc.Props[model.PropMode].(string)
		if syntax == "" {
			syntax = "shell"
		}
		return s.driver.TextArea(ctx, TextAreaConfig{
			Message: desc.Name,
			Default: current,
			Help:    placeholder(desc),
			Syntax:  syntax,
		})
	}
	cfg := InputConfig{
		Message: desc.Name,
		Default: current,
		Help:    placeholder(desc),
	}
	if desc.Validate != nil && desc.Validate.Validator != nil {
		cfg.Validator = desc.Validate.Validator
	}
	return s.driver.Input(ctx, cfg)
}

// check mirrors the required and validator rules the descriptor carries.
func (s *Session) check(desc model.Descriptor, sig signals.Signals, answer string) string {
	if desc.Required(sig) && strings.TrimSpace(answer) == "" {
		if desc.Validate != nil && strings.TrimSpace(desc.Validate.Message) != "" {
			return desc.Validate.Message
		}
		return s.gen.Label("project.node.required_tips")
	}
	if desc.Validate != nil && desc.Validate.Validator != nil {
		if err := desc.Validate.Validator(answer); err != nil {
			return err.Error()
		}
	}
	if desc.Type == model.FieldTypeInputNumber && strings.TrimSpace(answer) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil {
			return desc.Name + s.gen.Label("project.node.positive_integer_tips")
		}
		if minValue, ok := desc.Props[model.PropMin].(int); ok && n < minValue {
			return desc.Name + s.gen.Label("project.node.positive_integer_tips")
		}
	}
	return ""
}

func (s *Session) checkResources(desc model.Descriptor, answer string) string {
	limit, ok := desc.Props[model.PropLimit].(int)
	if !ok || limit <= 0 {
		return ""
	}
	count := 0
	for _, part := range strings.Split(answer, ",") {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	if count > limit {
		return fmt.Sprintf("%s (max %d)", desc.Name, limit)
	}
	return ""
}

func (s *Session) promptSelect(ctx context.Context, desc model.Descriptor) error {
	if len(desc.Options) == 0 {
		s.logger.Debug("skipping select without options", zap.String("field", desc.Field))
		return nil
	}
	labels := make([]string, len(desc.Options))
	current := validation.Stringify(desc.Value)
	defaultIndex := -1
	for i, option := range desc.Options {
		labels[i] = option.Label
		if option.Value == current {
			defaultIndex = i
		}
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      desc.Name,
		Options:      labels,
		DefaultIndex: defaultIndex,
		Help:         placeholder(desc),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(desc.Options) {
		return nil
	}
	return s.set(desc.Field, desc.Options[idx].Value)
}

func (s *Session) promptCustomParams(ctx context.Context, desc model.Descriptor) error {
	existing, _ := desc.Value.([]selection.Property)
	params := append([]selection.Property(nil), existing...)
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		seen[p.Prop] = struct{}{}
	}

	for {
		more, err := s.driver.Confirm(ctx, ConfirmConfig{Message: s.gen.Label("project.node.add_custom_parameter")})
		if err != nil {
			return err
		}
		if !more {
			break
		}
		var property selection.Property
		for _, child := range desc.Children {
			answer, err := s.promptChild(ctx, child)
			if err != nil {
				return err
			}
			switch child.Field {
			case "prop":
				property.Prop = strings.TrimSpace(answer)
			case "direct":
				property.Direct = answer
			case "type":
				property.Type = answer
			case "value":
				property.Value = answer
			}
		}
		if property.Prop == "" {
			continue
		}
		if _, dup := seen[property.Prop]; dup {
			if err := s.driver.Info(ctx, s.theme.ErrorPrefix+s.gen.Label("project.node.prop_repeat")); err != nil {
				return err
			}
			continue
		}
		seen[property.Prop] = struct{}{}
		params = append(params, property)
	}

	if len(params) == 0 {
		return nil
	}
	return s.set(desc.Field, params)
}

func (s *Session) promptChild(ctx context.Context, child model.Descriptor) (string, error) {
	if child.Type == model.FieldTypeSelect && len(child.Options) > 0 {
		labels := make([]string, len(child.Options))
		for i, option := range child.Options {
			labels[i] = option.Label
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: child.Name, Options: labels})
		if err != nil {
			return "", err
		}
		if idx < 0 {
			return "", nil
		}
		return child.Options[idx].Value, nil
	}

	message := child.Name
	if message == "" {
		message = placeholder(child)
	}
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		answer, err := s.driver.Input(ctx, InputConfig{Message: message})
		if err != nil {
			return "", err
		}
		if child.Validate != nil && child.Validate.Required.Value && strings.TrimSpace(answer) == "" {
			if err := s.driver.Info(ctx, s.theme.ErrorPrefix+child.Validate.Message); err != nil {
				return "", err
			}
			continue
		}
		return answer, nil
	}
	return "", ErrTooManyAttempts
}

func (s *Session) set(field string, value any) error {
	var setErr error
	s.store.Update(func(state *selection.State) {
		setErr = state.Set(field, value)
	})
	return setErr
}

func placeholder(desc model.Descriptor) string {
	if text, ok := desc.Props[model.PropPlaceholder].(string); ok {
		return text
	}
	return ""
}

// Encode serializes state in the requested format.
func Encode(state selection.State, format OutputFormat) ([]byte, error) {
	switch format {
	case "", OutputFormatJSON:
		return json.MarshalIndent(state, "", "  ")
	case OutputFormatYAML:
		return yaml.Marshal(state)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOutput, format)
	}
}

// IsAborted reports whether err came from the user cancelling a prompt.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}
