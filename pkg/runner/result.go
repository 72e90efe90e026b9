package runner

import "time"

// FileOutcome describes what happened to one source file.
type FileOutcome struct {
	// Path is the absolute source path.
	Path string

	// Output is the path the HTML was (or would be) written to.
	Output string

	// HTML holds the rendering when Options.Collect is set.
	HTML string

	// Cached is true when a valid earlier rendering was reused.
	Cached bool

	// Written is true when Output was created or replaced.
	Written bool

	BytesIn  int
	BytesOut int
	Duration time.Duration

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesRendered   int
	FilesCached     int
	FilesWritten    int
	FilesErrored    int
	BytesIn         int
	BytesOut        int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// Errors returns the per-file errors in path order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}

	var errs []error
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			errs = append(errs, outcome.Error)
		}
	}
	return errs
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.BytesIn += outcome.BytesIn
	r.Stats.BytesOut += outcome.BytesOut

	if outcome.Cached {
		r.Stats.FilesCached++
		return
	}

	r.Stats.FilesRendered++
	if outcome.Written {
		r.Stats.FilesWritten++
	}
}
