// Package config defines core configuration types for mdhtml.
// These types are pure data structures with no dependency on the loader or
// on the rendering engine.
package config

import "path/filepath"

// OutputFormat specifies how run results are reported.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// Flavor selects the reference renderer used by compare.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Defaults for optional settings.
const (
	DefaultMaxDepth  = 32
	DefaultExtension = ".html"
	DefaultCachePath = ".mdhtml-cache.db"
)

// CacheConfig controls the render cache.
type CacheConfig struct {
	// Enabled turns the cache on. Nil means "not set" so that a lower
	// precedence source can still decide.
	Enabled *bool `mapstructure:"enabled" yaml:"enabled,omitempty"`

	// Path is the SQLite database file. Relative paths are resolved against
	// the working directory.
	Path string `mapstructure:"path" yaml:"path,omitempty"`
}

// Config is the root configuration structure for mdhtml.
type Config struct {
	// MaxDepth limits blockquote nesting during rendering.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth,omitempty"`

	// HeadingIDs adds slug ids to rendered headings.
	HeadingIDs *bool `mapstructure:"heading_ids" yaml:"heading_ids,omitempty"`

	// DetectLanguage infers a language class for untagged fenced code.
	DetectLanguage *bool `mapstructure:"detect_language" yaml:"detect_language,omitempty"`

	// Flavor is the reference flavor for compare ("commonmark" or "gfm").
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor,omitempty"`

	// OutputDir receives rendered files, mirroring the source tree.
	// Empty writes each file next to its source.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir,omitempty"`

	// Extension replaces the source extension on output files.
	Extension string `mapstructure:"extension" yaml:"extension,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// Cache configures the incremental render cache.
	Cache CacheConfig `mapstructure:"cache" yaml:"cache,omitempty"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// Format specifies the report format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Stdout writes rendered HTML to standard output instead of files.
	Stdout bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		MaxDepth:       DefaultMaxDepth,
		HeadingIDs:     Bool(false),
		DetectLanguage: Bool(false),
		Flavor:         FlavorCommonMark,
		Extension:      DefaultExtension,
		Cache: CacheConfig{
			Enabled: Bool(false),
			Path:    DefaultCachePath,
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// HeadingIDsEnabled reports whether heading ids are on.
func (c *Config) HeadingIDsEnabled() bool {
	return c != nil && c.HeadingIDs != nil && *c.HeadingIDs
}

// DetectLanguageEnabled reports whether fence language inference is on.
func (c *Config) DetectLanguageEnabled() bool {
	return c != nil && c.DetectLanguage != nil && *c.DetectLanguage
}

// CacheEnabled reports whether the render cache is on.
func (c *Config) CacheEnabled() bool {
	return c != nil && c.Cache.Enabled != nil && *c.Cache.Enabled
}

// CachePath returns the cache database path resolved against workDir.
func (c *Config) CachePath(workDir string) string {
	path := DefaultCachePath
	if c != nil && c.Cache.Path != "" {
		path = c.Cache.Path
	}
	if filepath.IsAbs(path) || workDir == "" {
		return path
	}
	return filepath.Join(workDir, path)
}

// OutputExtension returns the configured output extension with a leading dot.
func (c *Config) OutputExtension() string {
	if c == nil || c.Extension == "" {
		return DefaultExtension
	}
	if c.Extension[0] != '.' {
		return "." + c.Extension
	}
	return c.Extension
}
