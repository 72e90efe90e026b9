package cli_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhtml/internal/cli"
	"github.com/yaklabco/mdhtml/internal/configloader"
)

var testInfo = cli.BuildInfo{Version: "test-version", Commit: "test-commit", Date: "test-date"}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)

	assert.Equal(t, "mdhtml", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing global flag %q", name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"render", "compare", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	tests := map[string][]string{
		"render": {
			"out-dir", "extension", "stdout", "no-cache", "verbose",
			"max-depth", "heading-ids", "detect-language", "ignore", "jobs", "format",
		},
		"compare": {"flavor", "max-depth", "heading-ids", "ignore", "jobs", "format"},
		"init":    {"force", "format", "output"},
	}

	for name, flags := range tests {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err)

		for _, flag := range flags {
			assert.NotNil(t, subCmd.Flags().Lookup(flag), "%s: missing flag %q", name, flag)
		}
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"render failed", cli.ErrRenderFailed, cli.ExitFailure},
		{"differences", fmt.Errorf("wrapped: %w", cli.ErrDifferencesFound), cli.ExitFailure},
		{"validation", &configloader.ValidationError{Field: "jobs", Message: "bad"}, cli.ExitConfigError},
		{"missing file", fmt.Errorf("read: %w", fs.ErrNotExist), cli.ExitIOError},
		{"permission", fs.ErrPermission, cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

func TestIsReported(t *testing.T) {
	t.Parallel()

	assert.True(t, cli.IsReported(cli.ErrRenderFailed))
	assert.True(t, cli.IsReported(cli.ErrDifferencesFound))
	assert.False(t, cli.IsReported(errors.New("boom")))
	assert.False(t, cli.IsReported(nil))
}
