package markdown

import (
	"fmt"
	"strings"

	"github.com/shurcooL/sanitized_anchor_name"
)

// DefaultMaxDepth is the blockquote nesting limit used when Options.MaxDepth
// is not positive.
const DefaultMaxDepth = 32

// Options configures a Renderer. The zero value renders plain subset HTML.
type Options struct {
	// MaxDepth limits blockquote nesting. A blockquote at this depth renders
	// its content as one escaped paragraph instead of segmenting it again.
	// Values <= 0 select DefaultMaxDepth.
	MaxDepth int

	// HeadingIDs adds an id attribute derived from the heading text.
	// Repeated ids within one document get a numeric suffix.
	HeadingIDs bool

	// LanguageHint is consulted for fenced code blocks without an info
	// string. It returns the language name or "" when unsure.
	LanguageHint func(code string) string
}

// Renderer converts Markdown documents to HTML fragments.
// A Renderer is immutable and safe for concurrent use.
type Renderer struct {
	opts Options
}

// NewRenderer creates a Renderer with the given options.
func NewRenderer(opts Options) *Renderer {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Renderer{opts: opts}
}

// Options returns the effective options.
func (r *Renderer) Options() Options {
	return r.opts
}

//nolint:gochecknoglobals // Stateless default renderer.
var defaultRenderer = NewRenderer(Options{})

// Render converts src to HTML using default options.
func Render(src string) string {
	return defaultRenderer.Render(src)
}

// Render converts src to HTML.
// Rendered blocks are separated by "\n" and the result always ends with
// exactly one "\n". Empty input renders to "\n".
func (r *Renderer) Render(src string) string {
	state := &renderState{headingIDs: make(map[string]int)}
	return r.renderDocument(SplitLines(src), 0, state) + "\n"
}

// RenderDocument converts an already split Document to HTML.
func (r *Renderer) RenderDocument(doc Document) string {
	state := &renderState{headingIDs: make(map[string]int)}
	return r.renderDocument(doc, 0, state) + "\n"
}

// renderState is per-call bookkeeping shared across nested blockquotes.
type renderState struct {
	headingIDs map[string]int
}

func (r *Renderer) renderDocument(doc Document, depth int, state *renderState) string {
	blocks := Segment(doc)

	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		parts = append(parts, r.renderBlock(block, depth, state))
	}

	return strings.Join(parts, "\n")
}

// renderBlock dispatches block to the renderer for its kind.
func (r *Renderer) renderBlock(block Block, depth int, state *renderState) string {
	switch block.Kind {
	case KindHeading:
		return r.renderHeading(block, state)
	case KindCodeBlock:
		return r.renderCode(block)
	case KindBlockquote:
		return r.renderBlockquote(block, depth, state)
	case KindList:
		return renderList(block)
	case KindThematicBreak:
		return "<hr />"
	case KindHTML:
		return block.Text
	default:
		return "<p>" + Inline(block.Text) + "</p>"
	}
}

func (r *Renderer) renderHeading(block Block, state *renderState) string {
	if !r.opts.HeadingIDs {
		return fmt.Sprintf("<h%d>%s</h%d>", block.Level, Inline(block.Text), block.Level)
	}

	id := state.uniqueHeadingID(sanitized_anchor_name.Create(block.Text))
	return fmt.Sprintf(`<h%d id="%s">%s</h%d>`, block.Level, Escape(id), Inline(block.Text), block.Level)
}

// renderCode emits code content escaped and otherwise verbatim.
func (r *Renderer) renderCode(block Block) string {
	code := strings.Join(block.Lines, "\n")

	language := block.Language
	if language == "" && block.Fenced && r.opts.LanguageHint != nil && code != "" {
		language = r.opts.LanguageHint(code)
	}

	if language == "" {
		return "<pre><code>" + Escape(code) + "</code></pre>"
	}

	return `<pre><code class="language-` + Escape(language) + `">` + Escape(code) + "</code></pre>"
}

// renderBlockquote re-enters the segmenter on the dedented content.
//
// Recursion is bounded by MaxDepth: past the limit the content is emitted as
// a single escaped paragraph.
func (r *Renderer) renderBlockquote(block Block, depth int, state *renderState) string {
	if depth+1 >= r.opts.MaxDepth {
		return "<blockquote>\n" + flattenQuote(block.Inner) + "\n</blockquote>"
	}

	return "<blockquote>\n" + r.renderDocument(block.Inner, depth+1, state) + "\n</blockquote>"
}

// flattenQuote renders a too-deep blockquote body as one literal paragraph.
func flattenQuote(doc Document) string {
	var lines []string
	for _, line := range doc {
		if !isBlank(line) {
			lines = append(lines, strings.TrimSpace(line))
		}
	}

	if len(lines) == 0 {
		return ""
	}

	return "<p>" + Escape(strings.Join(lines, " ")) + "</p>"
}

func renderList(block Block) string {
	var builder strings.Builder

	builder.WriteString("<ul>\n")
	for _, item := range block.Items {
		builder.WriteString("<li>")
		builder.WriteString(Inline(item))
		builder.WriteString("</li>\n")
	}
	builder.WriteString("</ul>")

	return builder.String()
}

// uniqueHeadingID returns id, or id with a "-N" suffix when id was already
// handed out during this render.
func (s *renderState) uniqueHeadingID(id string) string {
	if id == "" {
		id = "section"
	}

	for count, found := s.headingIDs[id]; found; count, found = s.headingIDs[id] {
		candidate := fmt.Sprintf("%s-%d", id, count+1)
		if _, taken := s.headingIDs[candidate]; !taken {
			s.headingIDs[id] = count + 1
			id = candidate
		} else {
			id += "-1"
		}
	}

	s.headingIDs[id] = 0
	return id
}
