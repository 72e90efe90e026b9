package markdown

import "strings"

// htmlEscaper replaces the five HTML-significant characters.
// Replacement is single pass, so "&" is never escaped twice within one call.
//
//nolint:gochecknoglobals // Read-only replacer, safe for concurrent use.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces &, <, >, " and ' with their HTML entities.
// No entity decoding is performed: "&amp;" becomes "&amp;amp;".
func Escape(text string) string {
	return htmlEscaper.Replace(text)
}
