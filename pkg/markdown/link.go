package markdown

import "strings"

// Links replaces [text](url "title") with <a> and ![alt](url) with <img>.
//
// The label runs to the first "]" with no escaping. The destination runs to
// the first space or ")". An optional double-quoted title may follow after a
// single space, and a ")" must close the construct. On any mismatch the
// "[label]" prefix consumed so far is emitted literally and scanning resumes
// right after it.
//
// Destination, title and alt text are escaped. Link text is inserted as is
// so emphasis inside it is still seen by the emphasis pass.
func Links(text string) string {
	if !strings.Contains(text, "[") {
		return text
	}

	var builder strings.Builder
	builder.Grow(len(text))

	scanner := newLinkScanner(text)
	for pos := 0; pos < len(text); {
		switch {
		case text[pos] == '!' && pos+1 < len(text) && text[pos+1] == '[':
			result := scanner.at(pos+1, true)
			builder.WriteString(result.html)
			pos = result.next
		case text[pos] == '[':
			result := scanner.at(pos, false)
			builder.WriteString(result.html)
			pos = result.next
		default:
			builder.WriteByte(text[pos])
			pos++
		}
	}

	return builder.String()
}

// linkScanner holds the forward searches shared by every link in one text.
type linkScanner struct {
	text     string
	labelEnd *byteFinder
	destEnd  *byteFinder
	titleEnd *byteFinder
}

func newLinkScanner(text string) *linkScanner {
	return &linkScanner{
		text:     text,
		labelEnd: newByteFinder(text, "]"),
		destEnd:  newByteFinder(text, ") "),
		titleEnd: newByteFinder(text, `"`),
	}
}

// at parses a link or image whose "[" sits at open.
func (s *linkScanner) at(open int, image bool) span {
	text := s.text
	prefix := "["
	if image {
		prefix = "!["
	}

	closeIdx := s.labelEnd.next(open + 1)
	if closeIdx < 0 {
		return literal(prefix, open+1)
	}

	label := text[open+1 : closeIdx]
	unmatched := literal(prefix+label+"]", closeIdx+1)

	pos := closeIdx + 1
	if pos >= len(text) || text[pos] != '(' {
		return unmatched
	}
	pos++

	urlStart := pos
	pos = s.destEnd.next(urlStart)
	if pos < 0 {
		pos = len(text)
	}
	url := strings.TrimSpace(text[urlStart:pos])

	var title string
	if pos+1 < len(text) && text[pos] == ' ' && text[pos+1] == '"' {
		titleEnd := s.titleEnd.next(pos + 2)
		if titleEnd < 0 {
			return unmatched
		}
		title = text[pos+2 : titleEnd]
		pos = titleEnd + 1
	}

	if pos >= len(text) || text[pos] != ')' {
		return unmatched
	}
	pos++

	if image {
		return span{
			html:    `<img src="` + Escape(url) + `" alt="` + Escape(label) + `" />`,
			next:    pos,
			matched: true,
		}
	}

	var builder strings.Builder
	builder.WriteString(`<a href="`)
	builder.WriteString(Escape(url))
	builder.WriteByte('"')
	if title != "" {
		builder.WriteString(` title="`)
		builder.WriteString(Escape(title))
		builder.WriteByte('"')
	}
	builder.WriteByte('>')
	builder.WriteString(label)
	builder.WriteString("</a>")

	return span{html: builder.String(), next: pos, matched: true}
}
