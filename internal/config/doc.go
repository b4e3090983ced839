// Package config provides configuration structures and utilities for wikiextract.
// It defines the main configuration options for corpus processing, lookup
// output, and report generation preferences.
package config
