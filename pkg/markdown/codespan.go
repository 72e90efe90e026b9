package markdown

import "strings"

// CodeSpans replaces `code` and ``code`` spans with <code> elements.
// Span content is escaped. A run of two or more backticks opens a double
// backtick span, a single backtick opens a single one. An opener without a
// closer is emitted literally together with the escaped rest of the text.
func CodeSpans(text string) string {
	if !strings.Contains(text, "`") {
		return text
	}

	var builder strings.Builder
	builder.Grow(len(text))

	for pos := 0; pos < len(text); {
		if text[pos] != '`' {
			builder.WriteByte(text[pos])
			pos++
			continue
		}

		result := codeSpanAt(text, pos)
		builder.WriteString(result.html)
		pos = result.next
	}

	return builder.String()
}

// codeSpanAt parses the code span opening at pos.
func codeSpanAt(text string, pos int) span {
	width := 1
	if delimiterRunAt(text, pos, 2).Len == 2 { //nolint:mnd // Double backtick opener.
		width = 2
	}

	delim := text[pos : pos+width]
	start := pos + width

	end := strings.Index(text[start:], delim)
	if end < 0 {
		return literal(delim+Escape(text[start:]), len(text))
	}

	return span{
		html:    "<code>" + Escape(text[start:start+end]) + "</code>",
		next:    start + end + width,
		matched: true,
	}
}
