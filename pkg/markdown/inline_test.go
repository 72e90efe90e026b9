package markdown_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdhtml/pkg/markdown"
)

func TestCodeSpans(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no backticks", "plain", "plain"},
		{"single", "a `b` c", "a <code>b</code> c"},
		{"double", "``a`b``", "<code>a`b</code>"},
		{"content escaped", "`<b>&`", "<code>&lt;b&gt;&amp;</code>"},
		{"two spans", "`a` and `b`", "<code>a</code> and <code>b</code>"},
		{"unterminated single", "`open <x>", "`open &lt;x&gt;"},
		{"unterminated double", "``open", "``open"},
		{"empty span", "``", "``"},
		{"triple run", "```x```", "<code>`x</code>`"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, markdown.CodeSpans(testCase.input))
		})
	}
}

func TestLinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no brackets", "plain", "plain"},
		{"link", "[text](http://x)", `<a href="http://x">text</a>`},
		{"link with title", `[a](u "T")`, `<a href="u" title="T">a</a>`},
		{"image", `![alt](http://x "t")`, `<img src="http://x" alt="alt" />`},
		{"image alt escaped", `![a"b](u)`, `<img src="u" alt="a&quot;b" />`},
		{"url escaped", `[a](http://x?a=1&b=2)`, `<a href="http://x?a=1&amp;b=2">a</a>`},
		{"title escaped", `[a](u "<t>")`, `<a href="u" title="&lt;t&gt;">a</a>`},
		{"link text not escaped", "[*a* <b>](u)", `<a href="u">*a* <b></a>`},
		{"surrounding text", "see [x](u) now", `see <a href="u">x</a> now`},
		{"missing close bracket", "[a", "[a"},
		{"missing paren", "[a] b", "[a] b"},
		{"bracket at end", "[a]", "[a]"},
		{"missing close paren", "[a](u", "[a](u"},
		{"unterminated title", `[a](u "t)`, `[a](u "t)`},
		{"junk after url", "[a](u x)", "[a](u x)"},
		{"bang without bracket", "hi! there", "hi! there"},
		{"image unmatched", "![a", "![a"},
		{"greedy label", "[a [b](u)", `<a href="u">a [b</a>`},
		{"resume after literal", "[a] [b](u)", `[a] <a href="u">b</a>`},
		{"several unclosed labels", "[a [b [c", "[a [b [c"},
		{"destination stops at space", "[a](u [b](v)", `[a](u <a href="v">b</a>`},
		{"title search resumes past earlier quote", `[a](u "x [b](v "y")`, `[a](u "x <a href="v" title="y">b</a>`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, markdown.Links(testCase.input))
		})
	}
}

func TestEmphasis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"none", "plain", "plain"},
		{"em star", "*a*", "<em>a</em>"},
		{"em underscore", "_a_", "<em>a</em>"},
		{"strong star", "**a**", "<strong>a</strong>"},
		{"strong underscore", "__a__", "<strong>a</strong>"},
		{"strong em", "***a***", "<strong><em>a</em></strong>"},
		{"strong em underscore", "___a___", "<strong><em>a</em></strong>"},
		{"two spans", "*a* and _b_", "<em>a</em> and <em>b</em>"},
		{"unterminated", "**open", "**open"},
		{"lone star", "a*b", "a*b"},
		{"different delimiters do not pair", "*a_", "*a_"},
		{"content not rescanned", "**a *b* c**", "<strong>a *b* c</strong>"},
		{"four stars take three", "****a***", "<strong><em>*a</em></strong>"},
		{"intraword underscore", "snake_case_name", "snake<em>case</em>name"},
		{"unclosed strong before em", "**a *b*", "**a <em>b</em>"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, markdown.Emphasis(testCase.input))
		})
	}
}

func TestInline_PassOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"emphasis inside link text", "[*x*](u)", `<a href="u"><em>x</em></a>`},
		{"code span content still sees the link pass", "`[a](u)`", `<code><a href="u">a</a></code>`},
		{"prose is not escaped", "a < b", "a < b"},
		{"code then emphasis", "`a` **b**", "<code>a</code> <strong>b</strong>"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, markdown.Inline(testCase.input))
		})
	}
}

func TestInline_LongUnmatchedRuns(t *testing.T) {
	t.Parallel()

	const n = 1 << 15

	tests := []struct {
		name   string
		render func(string) string
		input  string
		want   string
	}{
		{"open brackets", markdown.Links, strings.Repeat("[", n), strings.Repeat("[", n)},
		{"open images", markdown.Links, strings.Repeat("![a](", n), strings.Repeat("![a](", n)},
		{"labels without destinations", markdown.Links, strings.Repeat("[a]", n), strings.Repeat("[a]", n)},
		{"unterminated titles", markdown.Links, "[a](u \"" + strings.Repeat("[b](v \"", n), "[a](u \"" + strings.Repeat("[b](v \"", n)},
		{"star run", markdown.Emphasis, strings.Repeat("*", 6*n), strings.Repeat("<strong><em></em></strong>", n)},
		{"backtick run", markdown.CodeSpans, strings.Repeat("`", 4*n), strings.Repeat("<code></code>", n)},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, testCase.render(testCase.input))
		})
	}
}

func BenchmarkInline(b *testing.B) {
	inputs := map[string]string{
		"prose":         strings.Repeat("plain words with a [link](http://x) and *em* ", 200),
		"open brackets": strings.Repeat("[", 1<<14),
		"star run":      strings.Repeat("*", 1<<14),
	}

	for name, input := range inputs {
		b.Run(name, func(b *testing.B) {
			for range b.N {
				markdown.Inline(input)
			}
		})
	}
}
