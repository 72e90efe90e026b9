// Package runner renders trees of Markdown files concurrently.
package runner

import (
	"github.com/yaklabco/mdhtml/pkg/cache"
	"github.com/yaklabco/mdhtml/pkg/markdown"
)

// Options controls discovery and rendering.
type Options struct {
	// Paths are the user-specified files or directories to process.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to compute the tree mirrored under OutputDir.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of source extensions (lowercase, with leading
	// dot) considered Markdown. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns, relative to WorkingDir, used to skip
	// files or whole directories. "**" matches any number of segments.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// OutputDir receives rendered files, mirroring the source layout
	// relative to WorkingDir. Empty writes each output beside its source.
	OutputDir string

	// OutputExtension replaces the source extension. Defaults to ".html".
	OutputExtension string

	// Collect keeps rendered HTML in the outcomes instead of writing files.
	Collect bool

	// Cache, when set, skips sources whose previous rendering is still valid.
	// It is ignored when Collect is set.
	Cache *cache.Cache

	// RenderOptions are the engine options, used for the cache fingerprint.
	RenderOptions markdown.Options
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) outputExtension() string {
	if o.OutputExtension == "" {
		return ".html"
	}
	return o.OutputExtension
}
