package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values are chosen based on typical corpus characteristics and the
// behavior of earlier extraction scripts where applicable.
const (
	// DefaultParseTimeout is the per-article wikitext parsing budget.
	// A handful of articles carry pathological markup (deeply nested
	// tables, thousands of templates) that makes parsing crawl; 30 seconds
	// is generous for normal articles and bounds the damage of bad ones.
	DefaultParseTimeout = 30 * time.Second

	// DefaultConcurrency of 4 concurrent documents balances throughput with
	// memory usage. Each in-flight document holds its full wikitext, and
	// corpus articles can be megabytes each.
	DefaultConcurrency = 4

	// DefaultProgressEvery is how many documents are processed between
	// progress log lines during batch runs.
	DefaultProgressEvery = 100

	// DefaultPreviewLimit is the number of characters of article text shown
	// by a lookup before truncation. Whole articles can be hundreds of
	// thousands of characters; 5000 is enough to judge the content.
	DefaultPreviewLimit = 5000

	// DefaultExportDir is the directory that exported text files are
	// written to when no output directory is given. Official and clone
	// variants land in official/ and clone/ beneath it.
	DefaultExportDir = "data/parsed_export"

	// AppName is the application name used for XDG directory paths.
	AppName = "wikiextract"
)

// Config holds all configuration options for wikiextract.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., ParseConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
// If the configuration grows significantly, consider refactoring into sub-structs.
type Config struct {
	// InputFile is the path of the Parquet corpus file to read.
	InputFile string

	// PageID is the page identifier to look up. Lookups compare the
	// canonical display string, so "42" matches an int64 column too.
	PageID string

	// OutputFile is the destination path for processed corpus files or
	// reports. When empty, commands write next to the input or to stdout.
	OutputFile string

	// ExportDir is the directory that per-article text files are written to.
	ExportDir string

	// TextColumn overrides auto-detection of the wikitext column for
	// single-text corpus files. Empty means detect.
	TextColumn string

	// SkipLists drops list items from parsed text instead of folding them
	// into the surrounding paragraph.
	SkipLists bool

	// Normalize applies Unicode NFC normalization during cleaning.
	Normalize bool

	// ParseTimeout is the per-article parsing budget. Articles that exceed
	// it are replaced with a timeout marker. Zero disables the timeout.
	ParseTimeout time.Duration

	// Concurrency is the number of documents processed in parallel during
	// batch runs.
	Concurrency int

	// ProgressEvery is how many documents are processed between progress
	// log lines. Zero selects the default.
	ProgressEvery int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of the fixed text format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the fixed
	// text format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// Summary restricts lookup output to the identification and length
	// lines, without the article body.
	Summary bool

	// ShowClone prints the clone text block after the official text.
	ShowClone bool

	// PreviewLimit is the number of characters of article text shown before
	// truncation. Zero disables truncation.
	PreviewLimit int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .wikiextract.yml in the current
	// directory and then in the XDG config directory.
	ConfigFilePath string

	// Sources holds per-corpus-file configurations loaded from the config
	// file. This is populated by LoadConfigFile and consulted before flags.
	Sources *File

	// DBDir is the directory path for storing the SQLite run history.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveHistory indicates whether processing runs are recorded in the
	// run history database.
	SaveHistory bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, preview
// limit). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		ParseTimeout:  DefaultParseTimeout,
		Concurrency:   DefaultConcurrency,
		ProgressEvery: DefaultProgressEvery,
		PreviewLimit:  DefaultPreviewLimit,
		ExportDir:     DefaultExportDir,
		DBDir:         XDGDataDir(),
		SaveHistory:   true,
	}
}

// XDGDataDir returns the XDG data directory for wikiextract.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/wikiextract
// On macOS: ~/Library/Application Support/wikiextract
// On Windows: %LOCALAPPDATA%\wikiextract
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for wikiextract.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/wikiextract
// On macOS: ~/Library/Application Support/wikiextract
// On Windows: %APPDATA%\wikiextract
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any processing begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have a corpus file to read
	if c.InputFile == "" {
		return ErrNoInput
	}

	// ParseTimeout must be non-negative; zero means disabled
	if c.ParseTimeout < 0 {
		return ErrInvalidTimeout
	}

	// Concurrency must be positive; zero would mean no processing
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// PreviewLimit must be non-negative; zero means no truncation
	if c.PreviewLimit < 0 {
		return ErrInvalidPreviewLimit
	}

	return nil
}
