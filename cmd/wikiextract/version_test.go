package main

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
)

// TestGetVersion tests version string resolution.
func TestGetVersion(t *testing.T) {
	t.Parallel()

	if got := getVersion(); got == "" {
		t.Error("expected non-empty version")
	}
}

// TestGetCommit tests commit hash resolution.
func TestGetCommit(t *testing.T) {
	t.Parallel()

	got := getCommit()
	if got == "" {
		t.Error("expected non-empty commit")
	}
	if len(got) > 7 && got != "unknown" {
		t.Errorf("expected a short hash, got %q", got)
	}
}

// TestGetDate tests build date resolution.
func TestGetDate(t *testing.T) {
	t.Parallel()

	if got := getDate(); got == "" {
		t.Error("expected non-empty build date")
	}
}

// TestBuildSetting tests build info lookups.
func TestBuildSetting(t *testing.T) {
	t.Parallel()

	if got := buildSetting("no.such.setting"); got != "" {
		t.Errorf("got %q, expected empty value for an unknown key", got)
	}
}

// TestNewVersionCmd tests the version command output.
func TestNewVersionCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVersionCmd()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"wikiextract version", "commit:", "built:", "go:"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got %q", want, output)
		}
	}
	if !strings.Contains(output, runtime.Version()) {
		t.Errorf("expected the Go runtime version, got %q", output)
	}
}
