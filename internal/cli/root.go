// Package cli provides the Cobra command structure for mdhtml.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhtml/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdhtml command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdhtml",
		Short: "A small, predictable Markdown to HTML renderer",
		Long: `mdhtml converts a practical subset of Markdown to HTML.

It handles headings, paragraphs, block quotes, lists, code blocks,
thematic breaks, emphasis, code spans, links and images, passes raw HTML
through, and never fails on malformed input. Rendered files can be cached
between runs, and "mdhtml compare" shows where the output departs from a
CommonMark reference renderer.`,
		Version: info.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(commandContext(cmd), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newCompareCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
