package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-taskform/pkg/orchestrator"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the task form schema",
	Long: `Render the task form schema for a set of selections.

Examples:
  taskform render
  taskform render --state task.yaml --format html --output form.html
  taskform render --state https://example.com/task.json --validate --locale zh`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

var (
	renderState    string
	renderFormat   string
	renderOutput   string
	renderValidate bool
	renderTheme    string
	renderVariant  string
)

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderState, "state", "s", "", "Selections document (file path or http(s) URL)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "json", "Renderer (json|html|openapi)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (default stdout)")
	renderCmd.Flags().BoolVar(&renderValidate, "validate", false, "Attach validation errors for the selections")
	renderCmd.Flags().StringVar(&renderTheme, "theme", "", "Theme name")
	renderCmd.Flags().StringVar(&renderVariant, "variant", "", "Theme variant")
}

func runRender(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := currentConfig()
	if err != nil {
		return err
	}

	state, err := loadState(ctx, cfg, renderState)
	if err != nil {
		return fail("load state", err)
	}
	orch, err := newOrchestrator(cfg, logger)
	if err != nil {
		return fail("build orchestrator", err)
	}

	out, err := orch.Generate(ctx, orchestrator.Request{
		State:        state,
		Renderer:     renderFormat,
		Validate:     renderValidate,
		ThemeName:    renderTheme,
		ThemeVariant: renderVariant,
	})
	if err != nil {
		return fail("render", err)
	}

	logger.Debug("rendered schema", zap.String("format", renderFormat), zap.Int("bytes", len(out)))
	return writeOutput(cmd.OutOrStdout(), renderOutput, out)
}
