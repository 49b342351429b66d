// Package cmd wires the taskform command line: schema rendering, state
// validation, the interactive prompt and the HTTP service.
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-taskform/internal/config"
	"github.com/goliatone/go-taskform/internal/logging"
)

// VersionInfo is stamped at build time through SetVersionInfo.
type VersionInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

var versionInfo = VersionInfo{
	Version:   "dev",
	Commit:    "none",
	BuildDate: "unknown",
}

var (
	cfgFile   string
	logLevel  string
	logFormat string
	locale    string

	appConfig *config.Config
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "taskform",
	Short: "SeaTunnel task form schema generator",
	Long: `taskform builds the SeaTunnel task form schema from a set of selections.

The schema can be rendered as JSON, HTML or a JSON Schema document, filled in
interactively from a terminal, or served over HTTP.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (YAML)")
	pf.StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	pf.StringVar(&logFormat, "log-format", "", "Log format (json|console)")
	pf.StringVar(&locale, "locale", "", "Form locale (en|zh)")
}

// SetVersionInfo records build metadata reported by the version command.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, cfgFile, flagOverrides())
	if err != nil {
		return err
	}
	l, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	appConfig = cfg
	logger = l
	logger.Debug("configuration loaded",
		zap.String("config", cfgFile),
		zap.String("locale", cfg.Form.Locale),
	)
	return nil
}

func flagOverrides() map[string]any {
	overrides := map[string]any{}
	logCfg := map[string]any{}
	if logLevel != "" {
		logCfg["level"] = logLevel
	}
	if logFormat != "" {
		logCfg["format"] = logFormat
	}
	if len(logCfg) > 0 {
		overrides["logging"] = logCfg
	}
	if locale != "" {
		overrides["form"] = map[string]any{"locale": locale}
	}
	return overrides
}

func currentConfig() (*config.Config, error) {
	if appConfig == nil {
		return nil, errors.New("cmd: configuration not loaded")
	}
	return appConfig, nil
}

// ExitCode maps an Execute error onto a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrValidationFailed):
		return 2
	default:
		return 1
	}
}

func fail(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
