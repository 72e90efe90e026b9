package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/mdhtml/internal/logging"
	"github.com/yaklabco/mdhtml/pkg/cache"
	"github.com/yaklabco/mdhtml/pkg/fsutil"
	"github.com/yaklabco/mdhtml/pkg/markdown"
)

// ErrOutsideWorkingDir is returned for a source that cannot be mirrored
// under the output directory because it lies outside the working directory.
var ErrOutsideWorkingDir = errors.New("source is outside the working directory")

// Runner renders Markdown files with one engine configuration.
type Runner struct {
	Renderer *markdown.Renderer
}

// New creates a Runner using renderer.
func New(renderer *markdown.Renderer) *Runner {
	return &Runner{Renderer: renderer}
}

// Run discovers files under opts.Paths and renders them concurrently.
// Outcomes are returned in path order whether or not individual files fail.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	job := renderJob{
		renderer:    r.Renderer,
		opts:        opts,
		workDir:     workDir,
		fingerprint: Fingerprint(opts.RenderOptions, opts.outputExtension()),
	}
	if opts.OutputDir != "" {
		job.outputDir = opts.OutputDir
		if !filepath.IsAbs(job.outputDir) {
			job.outputDir = filepath.Join(workDir, job.outputDir)
		}
	}

	logger := logging.FromContext(ctx)
	logger.Debug("rendering", logging.FieldFilesDiscovered, len(files), logging.FieldJobs, opts.Jobs)

	outcomes, runErr := ForEach(ctx, files, opts.Jobs, job.process)

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	for _, outcome := range outcomes {
		// Zero outcomes belong to files skipped after cancellation.
		if outcome.Path != "" {
			result.accumulate(outcome)
		}
	}

	logger.Debug("render complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesRendered, result.Stats.FilesRendered,
		logging.FieldFilesCached, result.Stats.FilesCached,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
	)

	return result, runErr
}

// Fingerprint identifies the settings that influence rendered bytes.
// Cached renderings made under a different fingerprint are stale.
func Fingerprint(opts markdown.Options, outputExtension string) string {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = markdown.DefaultMaxDepth
	}

	key := fmt.Sprintf("engine=1;max_depth=%d;heading_ids=%t;language_hint=%t;ext=%s",
		maxDepth, opts.HeadingIDs, opts.LanguageHint != nil, outputExtension)
	return fsutil.Hash([]byte(key))
}

// OutputPath returns where the rendering of source is written.
// source and workDir must be absolute; outputDir may be empty.
func OutputPath(source, workDir, outputDir, extension string) (string, error) {
	stem := strings.TrimSuffix(source, filepath.Ext(source))
	if outputDir == "" {
		return stem + extension, nil
	}

	rel, err := filepath.Rel(workDir, stem)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideWorkingDir, source)
	}

	return filepath.Join(outputDir, rel+extension), nil
}

// renderJob is the per-run state shared by all workers.
type renderJob struct {
	renderer    *markdown.Renderer
	opts        Options
	workDir     string
	outputDir   string
	fingerprint string
}

func (j *renderJob) process(ctx context.Context, path string) FileOutcome {
	start := time.Now()
	outcome := FileOutcome{Path: path}
	ctx = logging.WithFields(ctx, logging.FieldPath, path)
	logger := logging.FromContext(ctx)

	defer func() {
		outcome.Duration = time.Since(start)
	}()

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.BytesIn = len(content)

	outcome.Output, err = OutputPath(path, j.workDir, j.outputDir, j.opts.outputExtension())
	if err != nil {
		outcome.Error = err
		return outcome
	}

	useCache := j.opts.Cache != nil && !j.opts.Collect
	if useCache {
		entry, hit, err := j.opts.Cache.Lookup(ctx, cache.Key{
			Source:      path,
			Output:      outcome.Output,
			SourceHash:  info.Hash,
			OptionsHash: j.fingerprint,
		})
		switch {
		case err != nil:
			logger.Warn("cache lookup failed", logging.FieldError, err)
		case hit:
			logger.Debug("unchanged", logging.FieldOutput, entry.Output)
			outcome.Cached = true
			return outcome
		}
	}

	html := j.renderer.Render(string(content))
	outcome.BytesOut = len(html)

	if j.opts.Collect {
		outcome.HTML = html
		return outcome
	}

	if err := fsutil.WriteAtomic(ctx, outcome.Output, []byte(html), 0); err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", outcome.Output, err)
		return outcome
	}
	outcome.Written = true
	logger.Debug("rendered", logging.FieldOutput, outcome.Output, logging.FieldBytesOut, outcome.BytesOut)

	if useCache {
		err := j.opts.Cache.Store(ctx, cache.Entry{
			Source:      path,
			Output:      outcome.Output,
			SourceHash:  info.Hash,
			OptionsHash: j.fingerprint,
			OutputHash:  fsutil.Hash([]byte(html)),
		})
		if err != nil {
			logger.Warn("cache store failed", logging.FieldError, err)
		}
	}

	return outcome
}
