// Package diff produces line based unified diffs between two renderings of
// the same document.
package diff

import (
	"fmt"
	"strings"
)

// Op is the kind of a diff line.
type Op int

const (
	// Equal is a context line present on both sides.
	Equal Op = iota

	// Insert is a line only present on the right side.
	Insert

	// Delete is a line only present on the left side.
	Delete
)

// Prefix returns the unified diff marker for the op.
func (o Op) Prefix() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a hunk.
type Line struct {
	Op   Op
	Text string
}

// Hunk is a contiguous group of changes with surrounding context.
// Start fields are 1-based line numbers.
type Hunk struct {
	LeftStart  int
	LeftCount  int
	RightStart int
	RightCount int
	Lines      []Line
}

// Header returns the "@@ -l,n +r,m @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.LeftStart, h.LeftCount, h.RightStart, h.RightCount)
}

// Diff is a unified diff between a left and a right text.
type Diff struct {
	// Path names the compared document.
	Path string

	// LeftLabel and RightLabel annotate the "---" and "+++" headers.
	LeftLabel  string
	RightLabel string

	Hunks []Hunk

	// Additions and Deletions count changed lines over all hunks.
	Additions int
	Deletions int
}

// ContextLines is the number of unchanged lines kept around each change.
const ContextLines = 3

// Generate diffs left against right. It returns nil when both sides hold
// the same lines.
func Generate(path string, left, right []byte) *Diff {
	leftLines := splitLines(left)
	rightLines := splitLines(right)

	script := editScript(leftLines, rightLines)
	hunks := group(script, ContextLines)
	if len(hunks) == 0 {
		return nil
	}

	d := &Diff{Path: path, LeftLabel: "a", RightLabel: "b", Hunks: hunks}
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Op {
			case Insert:
				d.Additions++
			case Delete:
				d.Deletions++
			case Equal:
			}
		}
	}

	return d
}

// WithLabels sets the header labels and returns d.
func (d *Diff) WithLabels(left, right string) *Diff {
	if d != nil {
		d.LeftLabel, d.RightLabel = left, right
	}
	return d
}

// HasChanges reports whether d holds at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- %s/%s\n", d.LeftLabel, path)
	fmt.Fprintf(&builder, "+++ %s/%s\n", d.RightLabel, path)

	for _, hunk := range d.Hunks {
		builder.WriteString(hunk.Header())
		builder.WriteByte('\n')
		for _, line := range hunk.Lines {
			builder.WriteString(line.Op.Prefix())
			builder.WriteString(line.Text)
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

// splitLines splits content on "\n", dropping the empty tail after a final
// newline.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// editScript returns the line operations turning left into right, based on
// a longest common subsequence table.
func editScript(left, right []string) []Line {
	rows, cols := len(left), len(right)

	// table[i][j] is the LCS length of left[i:] and right[j:].
	table := make([][]int, rows+1)
	for i := range table {
		table[i] = make([]int, cols+1)
	}
	for i := rows - 1; i >= 0; i-- {
		for j := cols - 1; j >= 0; j-- {
			if left[i] == right[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else {
				table[i][j] = max(table[i+1][j], table[i][j+1])
			}
		}
	}

	script := make([]Line, 0, rows+cols)
	i, j := 0, 0
	for i < rows && j < cols {
		switch {
		case left[i] == right[j]:
			script = append(script, Line{Equal, left[i]})
			i++
			j++
		case table[i+1][j] >= table[i][j+1]:
			script = append(script, Line{Delete, left[i]})
			i++
		default:
			script = append(script, Line{Insert, right[j]})
			j++
		}
	}
	for ; i < rows; i++ {
		script = append(script, Line{Delete, left[i]})
	}
	for ; j < cols; j++ {
		script = append(script, Line{Insert, right[j]})
	}

	return script
}

// group cuts an edit script into hunks. Changes separated by at most
// 2*context equal lines share a hunk.
func group(script []Line, context int) []Hunk {
	var hunks []Hunk

	leftLine, rightLine := 1, 1
	idx := 0
	for idx < len(script) {
		if script[idx].Op == Equal {
			leftLine++
			rightLine++
			idx++
			continue
		}

		// Back up over leading context.
		lead := 0
		for lead < context && idx-lead-1 >= 0 && script[idx-lead-1].Op == Equal {
			lead++
		}

		hunk := Hunk{LeftStart: leftLine - lead, RightStart: rightLine - lead}
		start := idx - lead

		// Extend while the next change is within reach.
		end := idx
		for end < len(script) {
			if script[end].Op != Equal {
				end++
				continue
			}
			run := 0
			for end+run < len(script) && script[end+run].Op == Equal {
				run++
			}
			if end+run == len(script) || run > 2*context {
				end += min(run, context)
				break
			}
			end += run
		}

		for _, line := range script[start:end] {
			hunk.Lines = append(hunk.Lines, line)
			switch line.Op {
			case Equal:
				hunk.LeftCount++
				hunk.RightCount++
			case Delete:
				hunk.LeftCount++
			case Insert:
				hunk.RightCount++
			}
		}

		// Advance line counters over the consumed part past idx.
		for _, line := range script[idx:end] {
			if line.Op != Insert {
				leftLine++
			}
			if line.Op != Delete {
				rightLine++
			}
		}

		hunks = append(hunks, hunk)
		idx = end
	}

	return hunks
}
