package markdown

import "strings"

// maxEmphasisRun is the longest delimiter run used as an opener.
const maxEmphasisRun = 3

// emphasisTags maps an opener width to its open and close tags.
//
//nolint:gochecknoglobals // Read-only lookup table.
var emphasisTags = [maxEmphasisRun + 1][2]string{
	1: {"<em>", "</em>"},
	2: {"<strong>", "</strong>"},
	3: {"<strong><em>", "</em></strong>"},
}

// Emphasis replaces *em*, **strong** and ***both*** (or the "_" forms).
//
// Matching is greedy and ignores CommonMark flanking rules: the first run of
// "*" or "_" opens, up to three characters of it are taken as the opener,
// and the nearest later occurrence of the identical string closes. Enclosed
// text is not scanned again. An opener without a closer is literal text.
func Emphasis(text string) string {
	if !strings.ContainsAny(text, "*_") {
		return text
	}

	var builder strings.Builder
	builder.Grow(len(text))

	for pos := 0; pos < len(text); {
		if text[pos] != '*' && text[pos] != '_' {
			builder.WriteByte(text[pos])
			pos++
			continue
		}

		result := emphasisAt(text, pos)
		builder.WriteString(result.html)
		pos = result.next
	}

	return builder.String()
}

// emphasisAt parses the emphasis opening at pos. A failed search means the
// opener never occurs again, so each opener string misses at most once.
func emphasisAt(text string, pos int) span {
	width := delimiterRunAt(text, pos, maxEmphasisRun).Len
	opener := text[pos : pos+width]
	start := pos + width

	end := strings.Index(text[start:], opener)
	if end < 0 {
		return literal(opener, start)
	}

	tags := emphasisTags[width]
	return span{
		html:    tags[0] + text[start:start+end] + tags[1],
		next:    start + end + width,
		matched: true,
	}
}
