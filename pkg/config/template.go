package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a commented configuration file template holding
// the default settings.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, `# mdhtml configuration
# See: https://github.com/yaklabco/mdhtml

# Maximum blockquote nesting before content is flattened
max_depth: %d

# Add id attributes to headings
heading_ids: false

# Infer a language class for fenced code without an info string
detect_language: false

# Reference flavor used by "mdhtml compare": commonmark or gfm
flavor: %s

# Output file extension
extension: %s

# Directory for rendered files (empty writes next to each source)
# output_dir: public

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Skip unchanged files between runs
cache:
  enabled: false
  path: %s
`, DefaultMaxDepth, FlavorCommonMark, DefaultExtension, DefaultCachePath)

	if opts.Format == "json" {
		return templateToJSON(buf.Bytes())
	}

	return buf.Bytes(), nil
}

// templateToJSON converts a YAML template to indented JSON. Comments are lost.
func templateToJSON(yamlData []byte) ([]byte, error) {
	var data map[string]any
	if err := yaml.Unmarshal(yamlData, &data); err != nil {
		return nil, fmt.Errorf("parse template yaml: %w", err)
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal template json: %w", err)
	}

	return append(out, '\n'), nil
}
