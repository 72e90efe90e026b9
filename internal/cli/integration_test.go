package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhtml/internal/cli"
	"github.com/yaklabco/mdhtml/pkg/reporter"
)

type cliRun struct {
	stdout string
	stderr string
	err    error
}

// sandbox creates an isolated working directory. It becomes the current
// directory and HOME so that no user or project config leaks in.
func sandbox(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))

	return dir
}

func execute(t *testing.T, stdin io.Reader, args ...string) cliRun {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := cli.NewRootCommand(testInfo)
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	cmd.SetIn(stdin)

	err := cmd.ExecuteContext(context.Background())
	return cliRun{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRender_StdinWithoutPaths(t *testing.T) {
	sandbox(t, nil)

	run := execute(t, strings.NewReader("# Hello\n\nSome *text*.\n"), "render")
	require.NoError(t, run.err)
	assert.Equal(t, "<h1>Hello</h1>\n<p>Some <em>text</em>.</p>\n", run.stdout)
}

func TestRender_StdinDash(t *testing.T) {
	sandbox(t, nil)

	run := execute(t, strings.NewReader("# Hello World\n"), "render", "-", "--heading-ids")
	require.NoError(t, run.err)
	assert.Equal(t, "<h1 id=\"hello-world\">Hello World</h1>\n", run.stdout)
}

func TestRender_WritesBesideSource(t *testing.T) {
	dir := sandbox(t, map[string]string{
		"README.md":     "# Title\n",
		"docs/guide.md": "- one\n- two\n",
		"notes.txt":     "not markdown",
	})

	run := execute(t, nil, "render", ".", "--color", "never")
	require.NoError(t, run.err)

	assert.Equal(t, "<h1>Title</h1>\n", readFile(t, filepath.Join(dir, "README.html")))
	assert.Equal(t, "<ul>\n<li>one</li>\n<li>two</li>\n</ul>\n", readFile(t, filepath.Join(dir, "docs", "guide.html")))
	assert.NoFileExists(t, filepath.Join(dir, "notes.html"))

	assert.Contains(t, run.stdout, "README.md → README.html")
	assert.Contains(t, run.stdout, "2 files rendered")
}

func TestRender_OutDirAndExtension(t *testing.T) {
	dir := sandbox(t, map[string]string{"docs/a.md": "text\n"})

	run := execute(t, nil, "render", "docs", "--out-dir", "public", "--extension", "htm")
	require.NoError(t, run.err)

	assert.Equal(t, "<p>text</p>\n", readFile(t, filepath.Join(dir, "public", "docs", "a.htm")))
	assert.NoFileExists(t, filepath.Join(dir, "docs", "a.htm"))
}

func TestRender_Stdout(t *testing.T) {
	dir := sandbox(t, map[string]string{
		"a.md": "first\n",
		"b.md": "second\n",
	})

	run := execute(t, nil, "render", ".", "--stdout")
	require.NoError(t, run.err)

	assert.Equal(t, "<p>first</p>\n<p>second</p>\n", run.stdout)
	assert.NoFileExists(t, filepath.Join(dir, "a.html"))
}

func TestRender_JSONReport(t *testing.T) {
	sandbox(t, map[string]string{"a.md": "text\n"})

	run := execute(t, nil, "render", ".", "--format", "json")
	require.NoError(t, run.err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(run.stdout), &output))
	require.Len(t, output.Files, 1)
	assert.Equal(t, "a.md", output.Files[0].Path)
	assert.Equal(t, "a.html", output.Files[0].Output)
	assert.True(t, output.Files[0].Written)
}

func TestRender_ProjectConfig(t *testing.T) {
	dir := sandbox(t, map[string]string{
		".mdhtml.yml": "heading_ids: true\nignore:\n  - \"drafts/**\"\n",
		"a.md":        "## Getting Started\n",
		"drafts/b.md": "draft\n",
	})

	run := execute(t, nil, "render", ".")
	require.NoError(t, run.err)

	assert.Equal(t, "<h2 id=\"getting-started\">Getting Started</h2>\n", readFile(t, filepath.Join(dir, "a.html")))
	assert.NoFileExists(t, filepath.Join(dir, "drafts", "b.html"))
}

func TestRender_FlagOverridesConfig(t *testing.T) {
	dir := sandbox(t, map[string]string{
		".mdhtml.yml": "heading_ids: true\n",
		"a.md":        "# Title\n",
	})

	run := execute(t, nil, "render", ".", "--heading-ids=false")
	require.NoError(t, run.err)
	assert.Equal(t, "<h1>Title</h1>\n", readFile(t, filepath.Join(dir, "a.html")))
}

func TestRender_Cache(t *testing.T) {
	dir := sandbox(t, map[string]string{
		".mdhtml.yml": "cache:\n  enabled: true\n",
		"a.md":        "text\n",
	})

	first := execute(t, nil, "render", ".", "--format", "json")
	require.NoError(t, first.err)
	assert.FileExists(t, filepath.Join(dir, ".mdhtml-cache.db"))

	second := execute(t, nil, "render", ".", "--format", "json")
	require.NoError(t, second.err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(second.stdout), &output))
	require.Len(t, output.Files, 1)
	assert.True(t, output.Files[0].Cached)
	assert.Equal(t, 1, output.Summary.FilesCached)

	third := execute(t, nil, "render", ".", "--format", "json", "--no-cache")
	require.NoError(t, third.err)
	require.NoError(t, json.Unmarshal([]byte(third.stdout), &output))
	assert.False(t, output.Files[0].Cached)
}

func TestRender_CacheNewOutDir(t *testing.T) {
	dir := sandbox(t, map[string]string{
		".mdhtml.yml": "cache:\n  enabled: true\n",
		"a.md":        "text\n",
	})

	first := execute(t, nil, "render", ".", "--out-dir", "site")
	require.NoError(t, first.err)

	second := execute(t, nil, "render", ".", "--out-dir", "public", "--format", "json")
	require.NoError(t, second.err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(second.stdout), &output))
	require.Len(t, output.Files, 1)
	assert.False(t, output.Files[0].Cached)
	assert.Equal(t, "<p>text</p>\n", readFile(t, filepath.Join(dir, "public", "a.html")))
}

func TestRender_InvalidConfig(t *testing.T) {
	sandbox(t, map[string]string{
		".mdhtml.yml": "max_depth: -1\n",
		"a.md":        "text\n",
	})

	run := execute(t, nil, "render", ".")
	require.Error(t, run.err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(run.err))
}

func TestRender_UnknownConfigKey(t *testing.T) {
	sandbox(t, map[string]string{
		".mdhtml.yml": "rules:\n  MD001: false\n",
		"a.md":        "text\n",
	})

	run := execute(t, nil, "render", ".")
	require.Error(t, run.err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(run.err))
}

func TestRender_InvalidFormat(t *testing.T) {
	sandbox(t, map[string]string{"a.md": "text\n"})

	run := execute(t, nil, "render", ".", "--format", "sarif")
	require.Error(t, run.err)
	assert.NotEqual(t, cli.ExitSuccess, cli.ExitCode(run.err))
}

func TestRender_MissingPath(t *testing.T) {
	sandbox(t, nil)

	run := execute(t, nil, "render", "missing.md")
	require.Error(t, run.err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(run.err))
}

func TestCompare_NoDifferences(t *testing.T) {
	sandbox(t, map[string]string{"a.md": "# Title\n\nplain text\n"})

	run := execute(t, nil, "compare", ".", "--color", "never")
	require.NoError(t, run.err)
	assert.Contains(t, run.stdout, "No differences.")
}

func TestCompare_Differences(t *testing.T) {
	sandbox(t, map[string]string{"a.md": "fish & chips\n"})

	run := execute(t, nil, "compare", ".", "--color", "never")
	require.ErrorIs(t, run.err, cli.ErrDifferencesFound)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(run.err))

	assert.Contains(t, run.stdout, "--- mdhtml/a.md")
	assert.Contains(t, run.stdout, "+++ commonmark/a.md")
	assert.Contains(t, run.stdout, "-<p>fish & chips</p>")
	assert.Contains(t, run.stdout, "+<p>fish &amp; chips</p>")
	assert.Contains(t, run.stdout, "1 file differs")
}

func TestCompare_JSON(t *testing.T) {
	sandbox(t, map[string]string{
		"a.md": "same\n",
		"b.md": "x < y\n",
	})

	run := execute(t, nil, "compare", ".", "--format", "json", "--flavor", "gfm")
	require.ErrorIs(t, run.err, cli.ErrDifferencesFound)

	var output reporter.JSONComparisonOutput
	require.NoError(t, json.Unmarshal([]byte(run.stdout), &output))
	require.Len(t, output.Files, 2)
	assert.False(t, output.Files[0].Differs)
	assert.True(t, output.Files[1].Differs)
	assert.Contains(t, output.Files[1].Diff, "+++ gfm/")
}

func TestInit(t *testing.T) {
	dir := sandbox(t, nil)

	run := execute(t, nil, "init")
	require.NoError(t, run.err)

	content := readFile(t, filepath.Join(dir, ".mdhtml.yml"))
	assert.Contains(t, content, "max_depth: 32")

	// The generated file must load cleanly.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A\n"), 0o644))
	require.NoError(t, execute(t, nil, "render", "a.md").err)
}

func TestInit_ExistingFileWithoutTerminal(t *testing.T) {
	dir := sandbox(t, map[string]string{".mdhtml.yml": "max_depth: 5\n"})

	run := execute(t, nil, "init")
	require.Error(t, run.err)
	assert.Contains(t, run.err.Error(), "--force")
	assert.Equal(t, "max_depth: 5\n", readFile(t, filepath.Join(dir, ".mdhtml.yml")))

	run = execute(t, nil, "init", "--force")
	require.NoError(t, run.err)
	assert.Contains(t, readFile(t, filepath.Join(dir, ".mdhtml.yml")), "max_depth: 32")
}

func TestInit_JSON(t *testing.T) {
	dir := sandbox(t, nil)

	run := execute(t, nil, "init", "--format", "json")
	require.NoError(t, run.err)

	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(readFile(t, filepath.Join(dir, ".mdhtml.json"))), &data))
	assert.InDelta(t, 32, data["max_depth"], 0)
}

func TestInit_InvalidFormat(t *testing.T) {
	sandbox(t, nil)

	run := execute(t, nil, "init", "--format", "toml")
	require.Error(t, run.err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(run.err))
}

func TestVersion(t *testing.T) {
	run := execute(t, nil, "version")
	require.NoError(t, run.err)
	assert.Contains(t, run.stdout, "test-version")
	assert.Contains(t, run.stdout, "test-commit")
}

func TestHelp(t *testing.T) {
	run := execute(t, nil, "render", "--help", "--color", "never")
	require.NoError(t, run.err)
	assert.Contains(t, run.stdout, "Usage:")
	assert.Contains(t, run.stdout, "--out-dir")
	assert.Contains(t, run.stdout, "Global Flags:")
}
