package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-taskform/pkg/reactive"
	"github.com/goliatone/go-taskform/pkg/renderers/tui"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Fill in the task form interactively",
	Long: `Walk through the task form in the terminal. Fields appear and disappear as
answers change, the same way they do in the web form. The resulting
selections are printed as JSON or YAML.

Examples:
  taskform prompt
  taskform prompt --launcher --output-format yaml --output task.yaml
  taskform prompt --state defaults.yaml`,
	Args: cobra.NoArgs,
	RunE: runPrompt,
}

var (
	promptState        string
	promptLauncher     bool
	promptOutputFormat string
	promptOutput       string
)

// newPromptDriver is replaced in tests.
var newPromptDriver = func(out io.Writer) tui.PromptDriver {
	return tui.NewSurveyDriver(out)
}

func init() {
	rootCmd.AddCommand(promptCmd)

	promptCmd.Flags().StringVarP(&promptState, "state", "s", "", "Initial selections (file path or http(s) URL)")
	promptCmd.Flags().BoolVar(&promptLauncher, "launcher", false, "Also ask for the launcher, deploy mode and master")
	promptCmd.Flags().StringVar(&promptOutputFormat, "output-format", string(tui.OutputFormatJSON), "Output format (json|yaml)")
	promptCmd.Flags().StringVarP(&promptOutput, "output", "o", "", "Output file (default stdout)")
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := currentConfig()
	if err != nil {
		return err
	}

	initial, err := loadState(ctx, cfg, promptState)
	if err != nil {
		return fail("load state", err)
	}
	gen, err := newGenerator(cfg, logger)
	if err != nil {
		return fail("build generator", err)
	}

	session := tui.NewSession(gen, reactive.NewStore(initial),
		tui.WithPromptDriver(newPromptDriver(cmd.ErrOrStderr())),
		tui.WithLauncherPrompt(promptLauncher),
		tui.WithLogger(logger),
	)
	state, err := session.Run(ctx)
	if tui.IsAborted(err) {
		logger.Info("prompt aborted")
		fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
		return nil
	}
	if err != nil {
		return fail("prompt", err)
	}

	out, err := tui.Encode(state, tui.OutputFormat(promptOutputFormat))
	if err != nil {
		return err
	}
	logger.Debug("prompt complete", zap.String("format", promptOutputFormat))
	return writeOutput(cmd.OutOrStdout(), promptOutput, out)
}
