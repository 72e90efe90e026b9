package markdown

import "strings"

// Inline renders the prose of a heading, list item or paragraph.
//
// Three passes run in a fixed order, each over the output of the previous
// one: code spans, then links and images, then emphasis. Later passes see
// the markup produced by earlier ones, so link text may carry emphasis and,
// as a known limitation, code span content may too.
func Inline(text string) string {
	text = CodeSpans(text)
	text = Links(text)
	return Emphasis(text)
}

// span is the outcome of trying to parse an inline construct at a position.
// When matched is false, html holds the literal text to emit instead and
// next points just past it, so scanning always makes progress.
type span struct {
	html    string
	next    int
	matched bool
}

// literal builds an unmatched span.
func literal(text string, next int) span {
	return span{html: text, next: next}
}

// DelimiterRun is a run of one marker character.
type DelimiterRun struct {
	// Char is the repeated character: '*', '_' or '`'.
	Char byte

	// Pos is the byte offset of the first character of the run.
	Pos int

	// Len is the number of characters in the run.
	Len int
}

// End returns the offset just past the run.
func (d DelimiterRun) End() int {
	return d.Pos + d.Len
}

// delimiterRunAt returns the run of text[pos] starting at pos, counting at
// most limit characters. Callers only need to know whether the run reaches
// their widest opener, and counting a long run in full on every step would
// make scanning it quadratic.
func delimiterRunAt(text string, pos, limit int) DelimiterRun {
	run := DelimiterRun{Char: text[pos], Pos: pos}
	for run.Len < limit && run.End() < len(text) && text[run.End()] == run.Char {
		run.Len++
	}
	return run
}

// byteFinder answers "where is the next byte from chars at or after pos"
// for a scanner moving left to right. The last answer is reused while pos
// stays inside the range it covered, so a row of openers that all fail on
// the same missing closer costs one search instead of one per opener.
type byteFinder struct {
	text  string
	chars string

	// from and at bound the last search: no byte from chars occurs in
	// text[from:at], and at is the match or len(text) when there is none.
	from, at int
	valid    bool
}

func newByteFinder(text, chars string) *byteFinder {
	return &byteFinder{text: text, chars: chars}
}

// next returns the index of the first byte from chars at or after pos, or -1.
func (f *byteFinder) next(pos int) int {
	if !f.valid || pos < f.from || pos > f.at {
		f.from, f.at, f.valid = pos, len(f.text), true
		if i := strings.IndexAny(f.text[pos:], f.chars); i >= 0 {
			f.at = pos + i
		}
	}
	if f.at == len(f.text) {
		return -1
	}
	return f.at
}
