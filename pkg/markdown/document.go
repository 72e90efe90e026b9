package markdown

import "strings"

// Document is an ordered sequence of source lines without line terminators.
type Document []string

// SplitLines splits src into a Document.
// Line endings "\n", "\r\n" and "\r" are all recognized. A trailing line
// terminator does not produce an extra empty line, so "" and "\n" both yield
// a Document with at most one empty line.
func SplitLines(src string) Document {
	if src == "" {
		return nil
	}

	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	src = strings.TrimSuffix(src, "\n")

	return Document(strings.Split(src, "\n"))
}

// isBlank reports whether line contains only whitespace.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
