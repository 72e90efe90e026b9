package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdhtml/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"shebang bash", "#!/bin/bash\necho hello", "bash"},
		{"shebang sh", "#!/bin/sh\necho hello", "bash"},
		{"shebang python", "#!/usr/bin/env python3\nprint('hello')", "python"},
		{"go code", "package main\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}", "go"},
		{"python code", "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()", "python"},
		{"python from import", "from os import path", "python"},
		{"javascript code", "const x = () => { return 42; };\nconsole.log(x());", "javascript"},
		{"json object", `{"key": "value", "number": 123}`, "json"},
		{"yaml content", "key: value\nother: 123\nlist:\n  - item1\n  - item2", "yaml"},
		{"rust code", "fn main() {\n    println!(\"Hello, world!\");\n}", "rust"},
		{"sql query", "SELECT * FROM users WHERE id = 1;", "sql"},
		{"html content", "<!DOCTYPE html>\n<html>\n<body></body>\n</html>", "html"},
		{"dockerfile", "FROM golang:1.21\nWORKDIR /app\nCOPY . .\nRUN go build", "dockerfile"},
		{"plain text", "just some text without any code patterns", ""},
		{"single yaml pair", "note: this is prose", ""},
		{"empty", "", ""},
		{"whitespace", "  \n\t\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, langdetect.Detect([]byte(tt.content)))
		})
	}
}

func TestDetect_ShebangTakesPrecedence(t *testing.T) {
	t.Parallel()

	// Looks like Python, declared as bash.
	assert.Equal(t, "bash", langdetect.Detect([]byte("#!/bin/bash\ndef foo():\n    pass")))
}

func TestHint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "go", langdetect.Hint("package main"))
	assert.Empty(t, langdetect.Hint("hello"))
}
