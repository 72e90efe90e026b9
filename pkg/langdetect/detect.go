// Package langdetect guesses the language of a code snippet so that untagged
// fenced code blocks can still carry a language class.
//
// Detection is deliberately conservative: an interpreter line or editor
// modeline is trusted first, then a small set of unambiguous signatures.
// Anything else yields "" so that the block stays untagged.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// signature recognizes one language from trimmed snippet content.
type signature struct {
	lang  string
	match func(trimmed []byte, text string) bool
}

// signatures are checked in order; the first match wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var signatures = []signature{
	{"go", func(trimmed []byte, _ string) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{"python", looksLikePython},
	{"html", func(trimmed []byte, _ string) bool {
		lower := bytes.ToLower(trimmed)
		return bytes.Contains(lower, []byte("<!doctype html")) ||
			bytes.Contains(lower, []byte("<html")) ||
			bytes.Contains(lower, []byte("<body>"))
	}},
	{"json", func(trimmed []byte, _ string) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`"`)) && bytes.Contains(trimmed, []byte(":"))
	}},
	{"dockerfile", func(trimmed []byte, text string) bool {
		return bytes.HasPrefix(trimmed, []byte("FROM ")) ||
			(strings.Contains(text, "WORKDIR ") && strings.Contains(text, "COPY "))
	}},
	{"sql", func(_ []byte, text string) bool {
		upper := strings.ToUpper(strings.TrimSpace(text))
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, verb) {
				return true
			}
		}
		return false
	}},
	{"rust", func(_ []byte, text string) bool {
		return strings.Contains(text, "fn main()") ||
			strings.Contains(text, "println!") ||
			strings.Contains(text, "let mut ")
	}},
	{"javascript", func(_ []byte, text string) bool {
		return strings.Contains(text, "=>") ||
			strings.Contains(text, "console.log") ||
			strings.HasPrefix(text, "const ")
	}},
	{"yaml", func(_ []byte, text string) bool {
		return yamlPairs(text) >= minYAMLPairs
	}},
}

// minYAMLPairs is the number of "key: value" lines needed to call it YAML.
const minYAMLPairs = 2

// Detect returns the fence tag for content, or "" when unsure.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang, safe := enry.GetLanguageByModeline(content); safe {
		return normalize(lang)
	}

	text := string(trimmed)
	for _, sig := range signatures {
		if sig.match(trimmed, text) {
			return sig.lang
		}
	}

	return ""
}

// Hint adapts Detect to the string based language hook of the renderer.
func Hint(code string) string {
	return Detect([]byte(code))
}

func looksLikePython(_ []byte, text string) bool {
	if strings.Contains(text, "def ") && strings.Contains(text, "):") {
		return true
	}
	if strings.Contains(text, "__name__") {
		return true
	}
	// "import (" is Go.
	return strings.HasPrefix(text, "from ") && strings.Contains(text, " import ")
}

// yamlPairs counts lines that look like YAML mappings or root list items.
func yamlPairs(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "- ") {
			count++
			continue
		}
		if strings.Contains(line, ": ") && !strings.ContainsAny(line, "({;") && !strings.HasPrefix(line, `"`) {
			count++
		}
	}
	return count
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(strings.ReplaceAll(lang, " ", "-"))
}
