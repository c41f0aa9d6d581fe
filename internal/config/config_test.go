package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateRequiresManifestAndOutput(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for missing paths")
	}
}

func TestValidateRejectsMissingManifest(t *testing.T) {
	cfg := Config{
		ManifestPath: filepath.Join(t.TempDir(), "nope.html"),
		OutputRoot:   t.TempDir(),
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for unreadable manifest")
	}
}

func TestValidateFillsDefaultTags(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "memories.html")
	if err := os.WriteFile(manifest, []byte("<html></html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Config{ManifestPath: manifest, OutputRoot: t.TempDir()}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Tags.Primary != "original" || cfg.Tags.Clip != "clip" {
		t.Fatalf("unexpected tags: %+v", cfg.Tags)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MEMORG_MANIFEST", "/export/memories.html")
	t.Setenv("MEMORG_OUTPUT", "/sorted")
	t.Setenv("MEMORG_VERBOSE", "yes")

	cfg := Config{}
	cfg.ApplyEnv()

	if cfg.ManifestPath != "/export/memories.html" {
		t.Fatalf("unexpected manifest: %s", cfg.ManifestPath)
	}
	if cfg.OutputRoot != "/sorted" {
		t.Fatalf("unexpected output: %s", cfg.OutputRoot)
	}
	if !cfg.Verbose {
		t.Fatal("expected verbose from env")
	}
}

func TestApplyEnvDoesNotOverrideFlags(t *testing.T) {
	t.Setenv("MEMORG_MANIFEST", "/from-env.html")

	cfg := Config{ManifestPath: "/from-flag.html"}
	cfg.ApplyEnv()

	if cfg.ManifestPath != "/from-flag.html" {
		t.Fatalf("flag value should win, got %s", cfg.ManifestPath)
	}
}
