package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhtml/internal/logging"
	"github.com/yaklabco/mdhtml/pkg/config"
	"github.com/yaklabco/mdhtml/pkg/diff"
	"github.com/yaklabco/mdhtml/pkg/fsutil"
	"github.com/yaklabco/mdhtml/pkg/markdown"
	"github.com/yaklabco/mdhtml/pkg/reference"
	"github.com/yaklabco/mdhtml/pkg/reporter"
	"github.com/yaklabco/mdhtml/pkg/runner"
)

// engineLabel names the mdhtml side of a comparison diff.
const engineLabel = "mdhtml"

type compareFlags struct {
	engineFlags

	flavor string
}

func newCompareCommand() *cobra.Command {
	flags := &compareFlags{}

	cmd := &cobra.Command{
		Use:   "compare [paths...]",
		Short: "Diff mdhtml output against a CommonMark reference renderer",
		Long: `Render each Markdown file with mdhtml and with the goldmark reference
renderer, and print a unified diff wherever the HTML differs.

mdhtml implements a subset of CommonMark, so differences are expected for
constructs outside that subset. The exit status is 1 when any file differs.

Examples:
  mdhtml compare README.md          # Show conformance gaps for one file
  mdhtml compare docs/ --flavor gfm # Compare against GitHub Flavored Markdown
  mdhtml compare --format json      # Machine readable diffs`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args, flags)
		},
	}

	flags.register(cmd, "text, diff, json")
	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorCommonMark),
		"reference flavor: commonmark, gfm")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string, flags *compareFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{}
	flags.apply(cmd, cliCfg)
	if cmd.Flags().Changed("flavor") {
		cliCfg.Flavor = config.Flavor(flags.flavor)
	}

	workDir, err := workingDir()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, workDir, cliCfg)
	if err != nil {
		return err
	}

	files, err := runner.Discover(ctx, runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: cfg.Ignore,
	})
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}

	job := compareJob{
		engine: markdown.NewRenderer(engineOptions(cfg)),
		reference: reference.New(reference.Options{
			Flavor:     string(cfg.Flavor),
			HeadingIDs: cfg.HeadingIDsEnabled(),
		}),
	}

	logger.Debug("comparing",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldFlavor, job.reference.Flavor(),
	)

	comparisons, err := runner.ForEach(ctx, files, cfg.Jobs, job.compare)
	if err != nil {
		return err
	}

	repOpts, err := reporterOptions(cmd, cfg, workDir)
	if err != nil {
		return err
	}

	rep, err := reporter.NewComparison(repOpts)
	if err != nil {
		return errors.Join(errUsage, err)
	}

	differ, err := rep.ReportComparisons(ctx, comparisons)
	if err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	logger.Debug("compare complete",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldDifferences, differ,
	)

	switch {
	case differ > 0:
		return ErrDifferencesFound
	case hasComparisonErrors(comparisons):
		return ErrRenderFailed
	default:
		return nil
	}
}

// compareJob renders one file with both renderers.
type compareJob struct {
	engine    *markdown.Renderer
	reference *reference.Renderer
}

func (j *compareJob) compare(ctx context.Context, path string) reporter.Comparison {
	cmp := reporter.Comparison{Path: path}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		cmp.Error = err
		return cmp
	}

	got := j.engine.Render(string(content))

	want, err := j.reference.Render(ctx, string(content))
	if err != nil {
		cmp.Error = fmt.Errorf("reference render: %w", err)
		return cmp
	}

	cmp.Diff = diff.Generate(path, []byte(got), []byte(want)).WithLabels(engineLabel, j.reference.Flavor())
	return cmp
}

func hasComparisonErrors(comparisons []reporter.Comparison) bool {
	for _, cmp := range comparisons {
		if cmp.Error != nil {
			return true
		}
	}
	return false
}
