package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdhtml/pkg/runner"
)

// jsonVersion identifies the JSON report schema.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level structure of a render report.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path       string `json:"path"`
	Output     string `json:"output,omitempty"`
	Cached     bool   `json:"cached,omitempty"`
	Written    bool   `json:"written,omitempty"`
	BytesIn    int    `json:"bytesIn"`
	BytesOut   int    `json:"bytesOut"`
	DurationMS int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesRendered   int `json:"filesRendered"`
	FilesCached     int `json:"filesCached"`
	FilesWritten    int `json:"filesWritten"`
	FilesErrored    int `json:"filesErrored"`
	BytesIn         int `json:"bytesIn"`
	BytesOut        int `json:"bytesOut"`
}

// JSONComparisonOutput is the top-level structure of a compare report.
type JSONComparisonOutput struct {
	Version string               `json:"version"`
	Files   []JSONComparisonFile `json:"files"`
	Summary JSONComparisonTotals `json:"summary"`
}

// JSONComparisonFile represents one compared file.
type JSONComparisonFile struct {
	Path      string `json:"path"`
	Differs   bool   `json:"differs"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Diff      string `json:"diff,omitempty"`
	Error     string `json:"error,omitempty"`
}

// JSONComparisonTotals contains aggregate compare statistics.
type JSONComparisonTotals struct {
	FilesCompared int `json:"filesCompared"`
	FilesDiffer   int `json:"filesDiffer"`
	FilesErrored  int `json:"filesErrored"`
	Additions     int `json:"additions"`
	Deletions     int `json:"deletions"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)
	if err := r.encode(output); err != nil {
		return 0, err
	}
	return output.Summary.FilesErrored, nil
}

// ReportComparisons implements ComparisonReporter.
func (r *JSONReporter) ReportComparisons(_ context.Context, comparisons []Comparison) (int, error) {
	output := JSONComparisonOutput{
		Version: jsonVersion,
		Files:   make([]JSONComparisonFile, 0, len(comparisons)),
	}

	for _, cmp := range comparisons {
		file := JSONComparisonFile{Path: displayPath(cmp.Path, r.opts.WorkingDir)}
		output.Summary.FilesCompared++

		switch {
		case cmp.Error != nil:
			file.Error = cmp.Error.Error()
			output.Summary.FilesErrored++
		case cmp.Diff.HasChanges():
			file.Differs = true
			file.Additions = cmp.Diff.Additions
			file.Deletions = cmp.Diff.Deletions
			file.Diff = cmp.Diff.String()
			output.Summary.FilesDiffer++
			output.Summary.Additions += cmp.Diff.Additions
			output.Summary.Deletions += cmp.Diff.Deletions
		}

		output.Files = append(output.Files, file)
	}

	if err := r.encode(output); err != nil {
		return 0, err
	}
	return output.Summary.FilesDiffer, nil
}

func (r *JSONReporter) encode(v any) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:       displayPath(file.Path, r.opts.WorkingDir),
			Cached:     file.Cached,
			Written:    file.Written,
			BytesIn:    file.BytesIn,
			BytesOut:   file.BytesOut,
			DurationMS: file.Duration.Milliseconds(),
		}
		if file.Output != "" {
			fileResult.Output = displayPath(file.Output, r.opts.WorkingDir)
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesRendered:   stats.FilesRendered,
		FilesCached:     stats.FilesCached,
		FilesWritten:    stats.FilesWritten,
		FilesErrored:    stats.FilesErrored,
		BytesIn:         stats.BytesIn,
		BytesOut:        stats.BytesOut,
	}

	return output
}
