// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"

	// Configuration fields.
	FieldMaxDepth       = "max_depth"
	FieldHeadingIDs     = "heading_ids"
	FieldDetectLanguage = "detect_language"
	FieldOutputDir      = "output_dir"
	FieldFlavor         = "flavor"
	FieldJobs           = "jobs"
	FieldCache          = "cache"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesRendered   = "files_rendered"
	FieldFilesCached     = "files_cached"
	FieldFilesErrored    = "files_errored"
	FieldBytesIn         = "bytes_in"
	FieldBytesOut        = "bytes_out"
	FieldDifferences     = "differences"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
