package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/mdhtml/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command lipgloss.Style
	Heading lipgloss.Style
	Name    lipgloss.Style
	Flag    lipgloss.Style
	Dim     lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{Command: plain, Heading: plain, Name: plain, Flag: plain, Dim: plain}
	}

	return &HelpStyles{
		Command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Name:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter provides styled help output for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable }}
  {{ command .UseLine }}{{ end }}
{{- if .HasAvailableSubCommands }}
  {{ command .CommandPath }} [command]{{ end }}
{{- if .HasExample }}

{{ heading "Examples:" }}
{{ dim .Example }}{{ end }}
{{- if .HasAvailableSubCommands }}

{{ heading "Commands:" }}{{ range .Commands }}{{ if (or .IsAvailableCommand (eq .Name "help")) }}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}{{ end }}{{ end }}{{ end }}
{{- if .HasAvailableLocalFlags }}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}{{ end }}
{{- if .HasAvailableInheritedFlags }}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}{{ end }}
{{- if .HasAvailableSubCommands }}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.{{ end }}
`

const helpTemplate = `{{ with (or .Long .Short) }}{{ trim . }}

{{ end }}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command": h.styles.Command.Render,
		"heading": h.styles.Heading.Render,
		"name":    h.styles.Name.Render,
		"dim":     h.styles.Dim.Render,
		"flags":   h.flagUsages,
		"rpad":    rpad,
		"trim":    trimTrailingWhitespace,
	}
}

// flagUsages styles pflag's aligned usage block. Each line is
// "  -f, --flag type   description"; the flag names and type are styled,
// the alignment is kept.
func (h *HelpFormatter) flagUsages(flags *pflag.FlagSet) string {
	lines := strings.Split(strings.TrimRight(flags.FlagUsages(), "\n"), "\n")

	for idx, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		gap := strings.Index(trimmed, "  ")
		if trimmed == "" || gap < 0 {
			continue
		}

		indent := line[:len(line)-len(trimmed)]
		head, rest := trimmed[:gap], trimmed[gap:]

		var styled []string
		for _, token := range strings.Fields(head) {
			if strings.HasPrefix(token, "-") {
				name := strings.TrimSuffix(token, ",")
				styled = append(styled, h.styles.Flag.Render(name)+token[len(name):])
			} else {
				styled = append(styled, h.styles.Dim.Render(token))
			}
		}

		lines[idx] = indent + strings.Join(styled, " ") + rest
	}

	return strings.Join(lines, "\n")
}

// ApplyToCommand applies styled help templates to a Cobra command and all
// of its subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := usage.Execute(command.OutOrStderr(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
