package markdown

import "strings"

// BlockKind identifies the kind of a Block.
type BlockKind int

const (
	// KindParagraph is a run of prose lines joined with single spaces.
	KindParagraph BlockKind = iota

	// KindHeading is an ATX or setext heading.
	KindHeading

	// KindCodeBlock is a fenced or indented code block.
	KindCodeBlock

	// KindBlockquote is a run of ">" lines holding a nested Document.
	KindBlockquote

	// KindList is an unordered list.
	KindList

	// KindThematicBreak is a horizontal rule.
	KindThematicBreak

	// KindHTML is a raw HTML line emitted unmodified.
	KindHTML
)

// String returns the lowercase name of the kind.
func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindCodeBlock:
		return "code_block"
	case KindBlockquote:
		return "blockquote"
	case KindList:
		return "list"
	case KindThematicBreak:
		return "thematic_break"
	case KindHTML:
		return "html"
	default:
		return "unknown"
	}
}

// Block is one structural unit of a Document.
// Only the fields relevant to Kind are set. A Block owns copies of its text
// and never refers back to the Document it was cut from.
type Block struct {
	Kind BlockKind

	// Start and End delimit the source line range [Start, End) the block
	// was built from, relative to the Document passed to Segment.
	Start int
	End   int

	// Level is the heading level, 1 to 6.
	Level int

	// Text is the heading text, the joined paragraph text or the raw HTML line.
	Text string

	// Language is the fenced code block info string, possibly empty.
	Language string

	// Fenced distinguishes ``` code blocks from indented ones.
	Fenced bool

	// Lines holds the verbatim code block content.
	Lines []string

	// Items holds the list item texts in source order.
	Items []string

	// Inner is the dedented blockquote content.
	Inner Document
}

const (
	fenceDelimiter = "```"
	codeIndent     = "    "
	maxATXLevel    = 6
	minBreakLength = 3
)

// htmlBlockOpeners are the tag openers that make a line pass through verbatim.
//
//nolint:gochecknoglobals // Read-only lookup table.
var htmlBlockOpeners = []string{"<pre", "<code", "<script", "<style"}

// isBlockquoteLine reports whether line starts a blockquote line.
func isBlockquoteLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), ">")
}

// dedentBlockquote strips leading whitespace, one ">" and at most one space.
func dedentBlockquote(line string) string {
	line = strings.TrimLeft(line, " \t")
	line = strings.TrimPrefix(line, ">")
	return strings.TrimPrefix(line, " ")
}

// isFence reports whether line opens or closes a fenced code block.
func isFence(line string) bool {
	return strings.HasPrefix(line, fenceDelimiter)
}

// isIndentedCode reports whether line carries the 4-space code indent.
func isIndentedCode(line string) bool {
	return strings.HasPrefix(line, codeIndent)
}

// atxLevel returns the heading level of line, or 0 when line is not an ATX
// heading. Seven or more leading "#" do not form a heading.
func atxLevel(line string) int {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level > maxATXLevel {
		return 0
	}
	return level
}

// atxText extracts the heading content after the leading "#" run.
func atxText(line string, level int) string {
	text := strings.TrimSpace(line[level:])
	text = strings.TrimRight(text, "#")
	return strings.TrimSpace(text)
}

// setextLevel returns 1 for an "=" underline, 2 for a "-" underline and 0
// when underline is neither.
func setextLevel(underline string) int {
	trimmed := strings.TrimSpace(underline)
	if trimmed == "" {
		return 0
	}

	switch {
	case strings.Trim(trimmed, "=") == "":
		return 1
	case strings.Trim(trimmed, "-") == "":
		return 2 //nolint:mnd // Setext "-" underline is always level 2.
	default:
		return 0
	}
}

// isThematicBreak reports whether line is three or more repetitions of one
// of "*", "-" or "_" with nothing else but surrounding whitespace.
func isThematicBreak(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < minBreakLength {
		return false
	}

	marker := trimmed[0]
	if marker != '*' && marker != '-' && marker != '_' {
		return false
	}

	return strings.Trim(trimmed, string(marker)) == ""
}

// listItemText returns the item text when line is a list item.
// The marker must be followed by whitespace or end the line, so "**bold**"
// and "-1" are prose rather than list items.
func listItemText(line string) (string, bool) {
	stripped := strings.TrimLeft(line, " \t")
	if stripped == "" {
		return "", false
	}

	switch stripped[0] {
	case '-', '*', '+':
	default:
		return "", false
	}

	rest := stripped[1:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}

	return strings.TrimLeft(rest, " \t"), true
}

// isHTMLLine reports whether line is raw block-level HTML.
func isHTMLLine(line string) bool {
	if !strings.Contains(line, "<") {
		return false
	}

	trimmed := strings.TrimSpace(line)
	for _, opener := range htmlBlockOpeners {
		if strings.HasPrefix(trimmed, opener) {
			return true
		}
	}

	return false
}
