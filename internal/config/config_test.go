package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "pushguard.yaml", "threads: 4\nmax_chars: 123\nsniff_binary: true\nexclude: \"vendor/**\"\nextra_exclude_dirs: [fixtures, tmp]\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 4 {
		t.Fatalf("expected threads=4, got %#v", cfg.Threads)
	}
	if cfg.MaxChars == nil || *cfg.MaxChars != 123 {
		t.Fatalf("expected max_chars=123, got %#v", cfg.MaxChars)
	}
	if cfg.SniffBinary == nil || !*cfg.SniffBinary {
		t.Fatalf("expected sniff_binary=true")
	}
	if cfg.Exclude == nil || *cfg.Exclude != "vendor/**" {
		t.Fatalf("expected exclude=vendor/**, got %#v", cfg.Exclude)
	}
	if len(cfg.ExtraExcludeDirs) != 2 || cfg.ExtraExcludeDirs[1] != "tmp" {
		t.Fatalf("unexpected extra_exclude_dirs: %#v", cfg.ExtraExcludeDirs)
	}
	if cfg.NoColor != nil {
		t.Fatalf("unset key should stay nil")
	}
}

func TestLoadFile_EmptyAndInvalid(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadFile(writeTemp(t, dir, "empty.yml", "")); err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if _, err := LoadFile(writeTemp(t, dir, "typo.yml", "thraeds: 4\n")); err == nil {
		t.Fatal("expected error for unknown key")
	}
	if _, err := LoadFile(writeTemp(t, dir, "bad.yml", "threads: [\n")); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	// place both, expect the dotfile to be picked first by search order
	writeTemp(t, dir, "pushguard.yaml", "threads: 1\n")
	writeTemp(t, dir, ".pushguard.yaml", "threads: 7\n")
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 7 {
		t.Fatalf("expected threads=7 from .pushguard.yaml, got %#v", cfg.Threads)
	}
}

func TestLoadLocal_NoConfig(t *testing.T) {
	if _, err := LoadLocal(t.TempDir()); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig, got %v", err)
	}
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "pushguard")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeTemp(t, cfgDir, "config.yml", "threads: 9\n")
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 9 {
		t.Fatalf("expected threads=9 from global config, got %#v", cfg.Threads)
	}
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	// Simulate no HOME as well by clearing HOME; LoadGlobal should error
	t.Setenv("HOME", "")
	if _, err := LoadGlobal(); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig, got %v", err)
	}
}

func TestLoad_LocalOverridesGlobal(t *testing.T) {
	xdg := t.TempDir()
	if err := os.MkdirAll(filepath.Join(xdg, "pushguard"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeTemp(t, filepath.Join(xdg, "pushguard"), "config.yml", "threads: 2\nno_color: true\nextra_exclude_exts: [.bak]\n")
	t.Setenv("XDG_CONFIG_HOME", xdg)

	root := t.TempDir()
	writeTemp(t, root, ".pushguard.yml", "threads: 6\nextra_exclude_exts: [.tmp]\n")
	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg.Threads != 6 {
		t.Fatalf("local threads should win, got %d", *cfg.Threads)
	}
	if cfg.NoColor == nil || !*cfg.NoColor {
		t.Fatalf("global no_color should survive")
	}
	if len(cfg.ExtraExcludeExts) != 2 || cfg.ExtraExcludeExts[0] != ".bak" || cfg.ExtraExcludeExts[1] != ".tmp" {
		t.Fatalf("extra exts should concatenate, got %#v", cfg.ExtraExcludeExts)
	}
}

func TestLoad_MalformedLocalIsError(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := t.TempDir()
	writeTemp(t, root, "pushguard.yml", "threads: nope\n")
	if _, err := Load(root); err == nil {
		t.Fatal("expected error for malformed local config")
	}
}
