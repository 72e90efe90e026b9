package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdhtml/internal/logging"
	"github.com/yaklabco/mdhtml/pkg/cache"
	"github.com/yaklabco/mdhtml/pkg/config"
	"github.com/yaklabco/mdhtml/pkg/markdown"
	"github.com/yaklabco/mdhtml/pkg/reporter"
	"github.com/yaklabco/mdhtml/pkg/runner"
)

// stdinPath is the path argument that selects standard input.
const stdinPath = "-"

type renderFlags struct {
	engineFlags

	outDir    string
	extension string
	stdout    bool
	noCache   bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render Markdown files to HTML",
		Long:  renderLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	flags.register(cmd, "text, json")
	cmd.Flags().StringVarP(&flags.outDir, "out-dir", "o", "", "write HTML under this directory, mirroring the source tree")
	cmd.Flags().StringVar(&flags.extension, "extension", config.DefaultExtension, "output file extension")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "write HTML to standard output instead of files")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "ignore the render cache")
	cmd.Flags().BoolP("verbose", "v", false, "list unchanged files too")

	return cmd
}

const renderLongDescription = `Render Markdown files to HTML.

By default, renders all .md and .markdown files in the current directory
and subdirectories, writing each result next to its source. Specify paths
to render specific files or directories.

With no paths and piped input, or with the path "-", standard input is
rendered to standard output.

Examples:
  mdhtml render                     # Render current directory
  mdhtml render docs/ -o public     # Render docs into public/
  mdhtml render README.md --stdout  # Print the HTML for one file
  cat notes.md | mdhtml render      # Render standard input
  mdhtml render --format json       # Machine readable report`

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{Stdout: flags.stdout}
	flags.apply(cmd, cliCfg)
	if cmd.Flags().Changed("out-dir") {
		cliCfg.OutputDir = flags.outDir
	}
	if cmd.Flags().Changed("extension") {
		cliCfg.Extension = flags.extension
	}
	if flags.noCache {
		cliCfg.Cache.Enabled = config.Bool(false)
	}

	workDir, err := workingDir()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, workDir, cliCfg)
	if err != nil {
		return err
	}

	opts := engineOptions(cfg)
	renderer := markdown.NewRenderer(opts)

	if readsStdin(cmd, args) {
		return renderStdin(cmd, renderer)
	}

	runOpts := runner.Options{
		Paths:           args,
		WorkingDir:      workDir,
		Extensions:      runner.DefaultExtensions(),
		ExcludeGlobs:    cfg.Ignore,
		Jobs:            cfg.Jobs,
		OutputDir:       cfg.OutputDir,
		OutputExtension: cfg.OutputExtension(),
		Collect:         cfg.Stdout,
		RenderOptions:   opts,
	}

	if cfg.CacheEnabled() && !cfg.Stdout {
		renderCache, err := cache.Open(cfg.CachePath(workDir))
		if err != nil {
			logger.Warn("render cache unavailable", logging.FieldError, err)
		} else {
			defer func() {
				if err := renderCache.Close(); err != nil {
					logger.Warn("close render cache", logging.FieldError, err)
				}
			}()
			runOpts.Cache = renderCache
			logger.Debug("using render cache", logging.FieldCache, renderCache.Path())
		}
	}

	logger.Debug("starting render run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldOutputDir, runOpts.OutputDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(renderer).Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("render run failed"), err)
	}

	repOpts, err := reporterOptions(cmd, cfg, workDir)
	if err != nil {
		return err
	}

	if cfg.Stdout {
		if err := writeCollected(cmd.OutOrStdout(), result); err != nil {
			return err
		}
		// HTML owns stdout; the report moves to stderr.
		repOpts.Writer = cmd.ErrOrStderr()
		repOpts.ShowSummary = false
	}

	rep, err := reporter.New(repOpts)
	if err != nil {
		return errors.Join(errUsage, err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if result.HasErrors() {
		return ErrRenderFailed
	}

	return nil
}

// readsStdin reports whether the command should render standard input:
// either "-" was given, or no paths were given and input is piped.
func readsStdin(cmd *cobra.Command, args []string) bool {
	if len(args) == 1 && args[0] == stdinPath {
		return true
	}
	if len(args) > 0 {
		return false
	}

	file, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return true
	}
	if term.IsTerminal(int(file.Fd())) {
		return false
	}

	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeNamedPipe != 0 || info.Mode().IsRegular()
}

func renderStdin(cmd *cobra.Command, renderer *markdown.Renderer) error {
	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read standard input: %w", err)
	}

	logging.FromContext(commandContext(cmd)).Debug("rendering standard input", logging.FieldBytesIn, len(src))

	if _, err := io.WriteString(cmd.OutOrStdout(), renderer.Render(string(src))); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// writeCollected prints the HTML of every rendered file in path order.
func writeCollected(w io.Writer, result *runner.Result) error {
	for _, file := range result.Files {
		if file.Error != nil {
			continue
		}
		if _, err := io.WriteString(w, file.HTML); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
