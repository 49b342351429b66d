package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-taskform/pkg/orchestrator"
	"github.com/goliatone/go-taskform/pkg/render"
	"github.com/goliatone/go-taskform/pkg/renderers/openapi"
	"github.com/goliatone/go-taskform/pkg/validation"
)

// ErrValidationFailed is returned when the selections do not pass the form
// rules.
var ErrValidationFailed = errors.New("selections failed validation")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check selections against the form rules",
	Long: `Check a selections document against the task form rules and report
every field that fails. With --schema the document is also checked against the
exported JSON schema (types, enums and bounds).

Examples:
  taskform validate --state task.yaml
  taskform validate --state task.json --schema --json`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

var (
	validateState  string
	validateJSON   bool
	validateSchema bool
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateState, "state", "s", "", "Selections document (file path or http(s) URL)")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Print the report as JSON")
	validateCmd.Flags().BoolVar(&validateSchema, "schema", false, "Also check the document against the exported schema")
}

type validateReport struct {
	validation.ErrorMapping
	Schema *validation.SchemaValidationResult `json:"schema,omitempty"`
}

func (r validateReport) failed(rulesValid bool) bool {
	return !rulesValid || (r.Schema != nil && !r.Schema.Valid)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := currentConfig()
	if err != nil {
		return err
	}

	state, err := loadState(ctx, cfg, validateState)
	if err != nil {
		return fail("load state", err)
	}
	orch, err := newOrchestrator(cfg, logger)
	if err != nil {
		return fail("build orchestrator", err)
	}

	schema, err := orch.Schema(ctx, orchestrator.Request{State: state, Validate: true})
	if err != nil {
		return fail("validate", err)
	}
	report := validateReport{ErrorMapping: validation.Collect(schema.Fields)}

	if validateSchema {
		doc, err := json.Marshal(state)
		if err != nil {
			return err
		}
		result, err := openapi.New().Check(ctx, schema, render.RenderOptions{}, doc)
		if err != nil {
			return fail("schema check", err)
		}
		report.Schema = &result
	}

	failed := report.failed(validation.Valid(schema.Fields))
	out := cmd.OutOrStdout()
	if validateJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, string(data)); err != nil {
			return err
		}
	} else {
		printReport(out, report, failed)
	}

	if failed {
		return ErrValidationFailed
	}
	return nil
}

func printReport(out io.Writer, report validateReport, failed bool) {
	fields := make([]string, 0, len(report.Fields))
	for field := range report.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		for _, msg := range report.Fields[field] {
			fmt.Fprintf(out, "%s: %s\n", field, msg)
		}
	}
	for _, msg := range report.Form {
		fmt.Fprintf(out, "form: %s\n", msg)
	}
	if report.Schema != nil {
		for _, issue := range report.Schema.Issues {
			target := issue.Field
			if target == "" {
				target = "document"
			}
			fmt.Fprintf(out, "schema %s: %s\n", target, issue.Message)
		}
	}
	if !failed {
		fmt.Fprintln(out, "selections are valid")
	}
}
