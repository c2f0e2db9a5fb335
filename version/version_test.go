package version

import (
	"bytes"
	"runtime/debug"
	"strings"
	"testing"
)

// These tests swap package state and must not run in parallel.

func withBuild(t *testing.T, version, commit, date string, info *debug.BuildInfo) {
	t.Helper()
	oldVersion, oldCommit, oldDate, oldRead := Version, Commit, Date, readBuildInfo
	t.Cleanup(func() {
		Version, Commit, Date, readBuildInfo = oldVersion, oldCommit, oldDate, oldRead
	})
	Version, Commit, Date = version, commit, date
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return info, info != nil
	}
}

func TestLdflagsWin(t *testing.T) {
	withBuild(t, "v1.2.3", "0123456789abcdef", "2025-01-01", &debug.BuildInfo{
		Main:     debug.Module{Version: "v0.0.1"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffffffffff"}},
	})

	if got := GetFullVersion(); got != "v1.2.3 (0123456, built 2025-01-01)" {
		t.Errorf("GetFullVersion() = %q", got)
	}
}

func TestBuildInfoFallback(t *testing.T) {
	withBuild(t, "dev", unknown, unknown, &debug.BuildInfo{
		GoVersion: "go1.25.0",
		Main:      debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abcdef0123456789"},
			{Key: "vcs.time", Value: "2025-06-01T10:00:00Z"},
		},
	})

	info := GetInfo()
	if info.Version != "v0.3.0" {
		t.Errorf("Version = %q, want v0.3.0", info.Version)
	}
	if info.Commit != "abcdef0123456789" {
		t.Errorf("Commit = %q", info.Commit)
	}
	if info.Date != "2025-06-01T10:00:00Z" {
		t.Errorf("Date = %q", info.Date)
	}
	if info.GoVersion != "go1.25.0" {
		t.Errorf("GoVersion = %q", info.GoVersion)
	}
}

func TestDevelopmentBuild(t *testing.T) {
	withBuild(t, "dev", unknown, unknown, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})

	if got := GetFullVersion(); got != "development" {
		t.Errorf("GetFullVersion() = %q, want development", got)
	}
	if got := GetCommit(); got != unknown {
		t.Errorf("GetCommit() = %q, want %q", got, unknown)
	}
}

func TestNoBuildInfo(t *testing.T) {
	withBuild(t, "", "", "", nil)

	if got := GetVersion(); got != "development" {
		t.Errorf("GetVersion() = %q, want development", got)
	}
	if got := GetBuildDate(); got != unknown {
		t.Errorf("GetBuildDate() = %q, want %q", got, unknown)
	}
}

func TestPrintVersion(t *testing.T) {
	withBuild(t, "v1.0.0", unknown, unknown, nil)

	var buf bytes.Buffer
	PrintVersion(&buf, "splitchunks")
	out := buf.String()
	for _, want := range []string{"splitchunks version v1.0.0", "Module: github.com/lsycxyj/disableSplitChunks", "Commit: unknown"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Go:") {
		t.Errorf("output should omit Go line without build info:\n%s", out)
	}
}
