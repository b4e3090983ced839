package config

import "path/filepath"

// SourceConfig holds corpus-file-specific configuration.
// This allows customizing processing behavior per corpus file, keyed by
// the file's path or base name.
type SourceConfig struct {
	// TextColumn overrides auto-detection of the wikitext column for this
	// corpus file. Empty means detect.
	TextColumn string `yaml:"textColumn,omitempty"`

	// TimeoutSeconds overrides the global per-article parse timeout for
	// this corpus file. If zero, the global timeout is used.
	TimeoutSeconds int `yaml:"timeoutSeconds,omitempty"`

	// Concurrency overrides the global batch concurrency for this corpus
	// file. If zero, the global concurrency is used.
	Concurrency int `yaml:"concurrency,omitempty"`

	// SkipLists overrides list handling for this corpus file.
	// nil means inherit the global setting.
	SkipLists *bool `yaml:"skipLists,omitempty"`

	// Normalize overrides NFC normalization for this corpus file.
	// nil means inherit the global setting.
	Normalize *bool `yaml:"normalize,omitempty"`

	// History overrides run history recording for this corpus file.
	// nil means inherit the global setting.
	History *bool `yaml:"history,omitempty"`
}

// File represents the structure of the .wikiextract.yml configuration file.
type File struct {
	// Sources maps corpus files to their specific configurations.
	// Keys may be paths or bare file names (e.g., "wiki_sample.parquet").
	Sources map[string]SourceConfig `yaml:"sources,omitempty"`

	// Defaults contains default source configuration applied to all corpus
	// files unless overridden in the source-specific configuration.
	Defaults SourceConfig `yaml:"defaults,omitempty"`
}

// GetSourceConfig returns the configuration for a specific corpus file.
// It merges the source-specific configuration with defaults. The lookup
// tries the path as given first, then its base name, so both
// "data/wiki_sample.parquet" and "wiki_sample.parquet" keys work.
func (cf *File) GetSourceConfig(path string) SourceConfig {
	// Start with defaults
	result := cf.Defaults

	sourceConfig, ok := cf.Sources[path]
	if !ok {
		sourceConfig, ok = cf.Sources[filepath.Base(path)]
	}

	// Override with source-specific configuration if present
	if ok {
		if sourceConfig.TextColumn != "" {
			result.TextColumn = sourceConfig.TextColumn
		}
		if sourceConfig.TimeoutSeconds != 0 {
			result.TimeoutSeconds = sourceConfig.TimeoutSeconds
		}
		if sourceConfig.Concurrency != 0 {
			result.Concurrency = sourceConfig.Concurrency
		}
		if sourceConfig.SkipLists != nil {
			result.SkipLists = sourceConfig.SkipLists
		}
		if sourceConfig.Normalize != nil {
			result.Normalize = sourceConfig.Normalize
		}
		if sourceConfig.History != nil {
			result.History = sourceConfig.History
		}
	}

	return result
}
