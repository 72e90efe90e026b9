package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdhtml/internal/ui/pretty"
	"github.com/yaklabco/mdhtml/pkg/runner"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	for _, rendered := range []string{
		styles.Bold.Render("x"),
		styles.Error.Render("x"),
		styles.DiffAdd.Render("x"),
		styles.Cached.Render("x"),
	} {
		assert.Equal(t, "x", rendered)
	}
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout))

	t.Setenv("NO_COLOR", "")
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "buffer is not a terminal")
	assert.False(t, pretty.IsColorEnabled("", &buf))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
}

func TestFormatRunSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{"nothing found", runner.Stats{}, "No Markdown files found.\n"},
		{
			"one file",
			runner.Stats{FilesDiscovered: 1, FilesRendered: 1, FilesWritten: 1, BytesOut: 100},
			"1 file rendered (100 B written)\n",
		},
		{
			"mixed",
			runner.Stats{FilesDiscovered: 6, FilesRendered: 3, FilesCached: 2, FilesErrored: 1, FilesWritten: 3, BytesOut: 3 * 1024},
			"3 files rendered, 2 unchanged, 1 failed (3.0 KiB written)\n",
		},
		{
			"collected only",
			runner.Stats{FilesDiscovered: 2, FilesRendered: 2},
			"2 files rendered\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatRunSummary(tt.stats))
		})
	}
}

func TestFormatDiffSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "1 file differs, 1 insertion(+)\n", styles.FormatDiffSummary(1, 1, 0))
	assert.Equal(t, "2 files differ, 3 insertions(+), 2 deletions(-)\n", styles.FormatDiffSummary(2, 3, 2))
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0 B", pretty.FormatBytes(0))
	assert.Equal(t, "1023 B", pretty.FormatBytes(1023))
	assert.Equal(t, "1.5 KiB", pretty.FormatBytes(1536))
	assert.Equal(t, "2.0 MiB", pretty.FormatBytes(2*1024*1024))
}

func TestStyleDiffLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	for _, line := range []string{"@@ -1 +1 @@", "+a", "-b", " c"} {
		assert.Equal(t, line, styles.StyleDiffLine(line))
	}
}
