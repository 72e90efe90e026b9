package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhtml/internal/configloader"
	"github.com/yaklabco/mdhtml/internal/logging"
	"github.com/yaklabco/mdhtml/pkg/config"
	"github.com/yaklabco/mdhtml/pkg/langdetect"
	"github.com/yaklabco/mdhtml/pkg/markdown"
	"github.com/yaklabco/mdhtml/pkg/reporter"
)

// engineFlags are the flags shared by render and compare.
type engineFlags struct {
	maxDepth       int
	headingIDs     bool
	detectLanguage bool
	ignore         []string
	jobs           int
	format         string
}

func (f *engineFlags) register(cmd *cobra.Command, formats string) {
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", config.DefaultMaxDepth, "maximum blockquote nesting depth")
	cmd.Flags().BoolVar(&f.headingIDs, "heading-ids", false, "add id attributes to headings")
	cmd.Flags().BoolVar(&f.detectLanguage, "detect-language", false,
		"infer a language class for fenced code without an info string")
	cmd.Flags().StringSliceVar(&f.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&f.format, "format", "text", "output format: "+formats)
}

// apply copies explicitly set flags into cfg. Unset flags stay zero so
// lower precedence sources keep their values.
func (f *engineFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if flags.Changed("heading-ids") {
		cfg.HeadingIDs = config.Bool(f.headingIDs)
	}
	if flags.Changed("detect-language") {
		cfg.DetectLanguage = config.Bool(f.detectLanguage)
	}
	if flags.Changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if flags.Changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if flags.Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
}

// loadConfig merges all configuration sources with the CLI overrides.
func loadConfig(cmd *cobra.Command, workDir string, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.FromContext(commandContext(cmd))

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldPaths, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldMaxDepth, cfg.MaxDepth,
		logging.FieldHeadingIDs, cfg.HeadingIDsEnabled(),
		logging.FieldDetectLanguage, cfg.DetectLanguageEnabled(),
		logging.FieldJobs, cfg.Jobs,
	)

	return cfg, nil
}

// engineOptions derives renderer options from the configuration.
func engineOptions(cfg *config.Config) markdown.Options {
	opts := markdown.Options{
		MaxDepth:   cfg.MaxDepth,
		HeadingIDs: cfg.HeadingIDsEnabled(),
	}
	if cfg.DetectLanguageEnabled() {
		opts.LanguageHint = langdetect.Hint
	}
	return opts
}

// reporterOptions builds reporter options for the configured format.
func reporterOptions(cmd *cobra.Command, cfg *config.Config, workDir string) (reporter.Options, error) {
	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return reporter.Options{}, errors.Join(errUsage, err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	return reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: true,
		Verbose:     verbose,
		WorkingDir:  workDir,
	}, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func workingDir() (string, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return workDir, nil
}
