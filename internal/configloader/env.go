package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/mdhtml/pkg/config"
)

// envVarPrefix is the prefix for all mdhtml environment variables.
const envVarPrefix = "MDHTML_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"MAX_DEPTH":       {"max_depth", envTypeInt, "Blockquote nesting limit"},
	"HEADING_IDS":     {"heading_ids", envTypeBool, "Add heading ids: true or false"},
	"DETECT_LANGUAGE": {"detect_language", envTypeBool, "Infer code fence languages: true or false"},
	"FLAVOR":          {"flavor", envTypeString, "Reference flavor for compare: commonmark or gfm"},
	"OUTPUT_DIR":      {"output_dir", envTypeString, "Directory for rendered files"},
	"EXTENSION":       {"extension", envTypeString, "Output file extension"},
	"IGNORE":          {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
	"CACHE_ENABLED":   {"cache.enabled", envTypeBool, "Enable the render cache: true or false"},
	"CACHE_PATH":      {"cache.path", envTypeString, "Render cache database path"},
	"JOBS":            {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"FORMAT":          {"format", envTypeString, "Report format: text, json, or diff"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDHTML_ (e.g., MDHTML_MAX_DEPTH).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		cfg.Ignore = parseSliceValue(value)
		return nil
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "output_dir":
		cfg.OutputDir = value
	case "extension":
		cfg.Extension = value
	case "cache.path":
		cfg.Cache.Path = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "heading_ids":
		cfg.HeadingIDs = config.Bool(value)
	case "detect_language":
		cfg.DetectLanguage = config.Bool(value)
	case "cache.enabled":
		cfg.Cache.Enabled = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "max_depth":
		cfg.MaxDepth = value
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns the supported environment variables sorted by name,
// each paired with its description.
func ListEnvVars() [][2]string {
	vars := make([][2]string, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, [2]string{envVarPrefix + suffix, mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i][0] < vars[j][0] })
	return vars
}
