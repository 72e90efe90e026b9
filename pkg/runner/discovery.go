package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Discover finds Markdown files matching opts.
// It returns a sorted, duplicate free list of absolute file paths.
// Hidden files and directories are skipped during directory walks, but a
// hidden file named explicitly in Paths is kept.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	walker := &walker{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		excludes:   opts.ExcludeGlobs,
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := walker.walk(absPath); err != nil {
				return nil, err
			}
			continue
		}

		if walker.accepts(absPath) {
			walker.add(absPath)
		}
	}

	sort.Strings(walker.files)
	return walker.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walker accumulates discovered files across several roots.
type walker struct {
	ctx        context.Context //nolint:containedctx // Scoped to one Discover call.
	workDir    string
	extensions []string
	excludes   []string
	follow     bool
	seen       map[string]struct{}
	files      []string
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

func (w *walker) rel(path string) string {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// accepts reports whether path has a Markdown extension and is not excluded.
func (w *walker) accepts(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	matched := false
	for _, candidate := range w.extensions {
		if strings.ToLower(candidate) == ext {
			matched = true
			break
		}
	}

	return matched && !w.excluded(w.rel(path))
}

func (w *walker) excluded(relPath string) bool {
	for _, pattern := range w.excludes {
		if MatchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (path != root && w.excluded(w.rel(path))) {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return w.symlink(path)
		}

		if w.accepts(path) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}

	return nil
}

// symlink handles a symlink met during a walk. File links are treated as
// files; directory links are walked only when following is enabled.
func (w *walker) symlink(path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // Broken links are skipped.
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // Inaccessible targets are skipped.
	}

	if !info.IsDir() {
		if w.accepts(path) {
			w.add(path)
		}
		return nil
	}

	if !w.follow || w.excluded(w.rel(path)) {
		return nil
	}

	// Walk the target; WalkDir does not descend through a symlinked root.
	return w.walk(target)
}

// MatchGlob reports whether relPath matches pattern.
//
// Patterns use forward slashes. "*", "?" and "[...]" match within one path
// segment and "**" matches any number of segments, including none. A
// pattern without a slash is also tried against the base name, so "*.tmp.md"
// excludes that file anywhere in the tree.
func MatchGlob(relPath, pattern string) bool {
	relPath = filepath.ToSlash(relPath)
	pattern = filepath.ToSlash(pattern)

	if !strings.Contains(pattern, "/") && pattern != "**" {
		if ok, err := path.Match(pattern, path.Base(relPath)); err == nil && ok {
			return true
		}
	}

	return matchSegments(strings.Split(pattern, "/"), strings.Split(relPath, "/"))
}

func matchSegments(pattern, segments []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for skip := 0; skip <= len(segments); skip++ {
				if matchSegments(rest, segments[skip:]) {
					return true
				}
			}
			return false
		}

		if len(segments) == 0 {
			return false
		}

		ok, err := path.Match(pattern[0], segments[0])
		if err != nil || !ok {
			return false
		}

		pattern, segments = pattern[1:], segments[1:]
	}

	return len(segments) == 0
}
