package configloader

import "github.com/yaklabco/mdhtml/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer booleans: override overwrites base if override is non-nil,
//     so a higher layer can switch an option back off
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.OutputDir != "" {
		result.OutputDir = override.OutputDir
	}
	if override.Extension != "" {
		result.Extension = override.Extension
	}
	if override.Cache.Path != "" {
		result.Cache.Path = override.Cache.Path
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.HeadingIDs != nil {
		result.HeadingIDs = override.HeadingIDs
	}
	if override.DetectLanguage != nil {
		result.DetectLanguage = override.DetectLanguage
	}
	if override.Cache.Enabled != nil {
		result.Cache.Enabled = override.Cache.Enabled
	}

	// Stdout is CLI-only; only "true" is meaningful.
	if override.Stdout {
		result.Stdout = true
	}

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
