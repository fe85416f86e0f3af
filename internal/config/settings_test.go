package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := Default()
	if s.Engine.ChunkTargetSize != 64*1024 {
		t.Fatalf("ChunkTargetSize = %d, want %d", s.Engine.ChunkTargetSize, 64*1024)
	}
	if s.Document.TabWidth != 4 {
		t.Fatalf("TabWidth = %d, want 4", s.Document.TabWidth)
	}
	if s.Logging.Level != "info" {
		t.Fatalf("Logging.Level = %q, want %q", s.Logging.Level, "info")
	}
	if s.ScanBudget() != 64*1024 {
		t.Fatalf("ScanBudget() = %d, want %d", s.ScanBudget(), 64*1024)
	}
}

func TestLoadFromMissingFileFallsBackToDefaults(t *testing.T) {
	s, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if s != Default() {
		t.Fatalf("s = %+v, want the defaults", s)
	}
}

func TestLoadFromFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[engine]
mmapCacheEntries = 10

[document]
tabWidth = 2
lineEnding = "crlf"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if s.Engine.MmapCacheEntries != 10 {
		t.Fatalf("MmapCacheEntries = %d, want 10", s.Engine.MmapCacheEntries)
	}
	if s.Document.TabWidth != 2 {
		t.Fatalf("TabWidth = %d, want 2", s.Document.TabWidth)
	}
	if s.Document.LineEnding != "crlf" {
		t.Fatalf("LineEnding = %q, want %q", s.Document.LineEnding, "crlf")
	}
	if s.Logging.Level != "debug" {
		t.Fatalf("Logging.Level = %q, want %q", s.Logging.Level, "debug")
	}
	// Untouched fields keep their defaults.
	if s.Engine.ChunkTargetSize != 64*1024 {
		t.Fatalf("ChunkTargetSize = %d, want the default %d", s.Engine.ChunkTargetSize, 64*1024)
	}
}

func TestLoadFromEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"info\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TEXTENG_LOG_LEVEL", "warning")

	s, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if s.Logging.Level != "warning" {
		t.Fatalf("Logging.Level = %q, want %q (env must win over the file)", s.Logging.Level, "warning")
	}
}

func TestUserConfigDirEndsInTexteng(t *testing.T) {
	dir, err := UserConfigDir()
	if err != nil {
		t.Fatalf("UserConfigDir failed: %v", err)
	}
	if filepath.Base(dir) != "texteng" {
		t.Fatalf("UserConfigDir() = %q, want a path ending in %q", dir, "texteng")
	}
}
