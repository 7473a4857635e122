package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
debug: true
documents:
  dir: /data/docs
  extensions: [".md"]
index:
  dir: /data/index
  min_chunk_chars: 80
  max_features: 2000
search:
  default_top_k: 3
  relevance_threshold: 0.1
watch:
  debounce_ms: 250
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true")
	}
	if cfg.Documents.Dir != "/data/docs" {
		t.Errorf("documents dir = %q", cfg.Documents.Dir)
	}
	if cfg.Index.MinChunkChars != 80 || cfg.Index.MaxFeatures != 2000 {
		t.Errorf("index config = %+v", cfg.Index)
	}
	if cfg.Search.DefaultTopK != 3 {
		t.Errorf("default_top_k = %d", cfg.Search.DefaultTopK)
	}
	if cfg.Search.RelevanceThreshold != 0.1 {
		t.Errorf("relevance_threshold = %v", cfg.Search.RelevanceThreshold)
	}
	if cfg.Watch.DebounceMs != 250 {
		t.Errorf("watch config = %+v", cfg.Watch)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "debug: false\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Index.MinChunkChars != DefaultMinChunkChars {
		t.Errorf("min_chunk_chars = %d, want %d", cfg.Index.MinChunkChars, DefaultMinChunkChars)
	}
	if cfg.Index.MaxFeatures != DefaultMaxFeatures {
		t.Errorf("max_features = %d, want %d", cfg.Index.MaxFeatures, DefaultMaxFeatures)
	}
	if cfg.Search.DefaultTopK != DefaultTopK {
		t.Errorf("default_top_k = %d, want %d", cfg.Search.DefaultTopK, DefaultTopK)
	}
	if cfg.Search.BroadTopK != DefaultBroadTopK {
		t.Errorf("broad_top_k = %d, want %d", cfg.Search.BroadTopK, DefaultBroadTopK)
	}
	if cfg.Search.PrefixFallbackK != DefaultPrefixFallbackK {
		t.Errorf("prefix_fallback_k = %d, want %d", cfg.Search.PrefixFallbackK, DefaultPrefixFallbackK)
	}
	if cfg.Search.RelevanceThreshold != DefaultRelevanceThreshold {
		t.Errorf("relevance_threshold = %v", cfg.Search.RelevanceThreshold)
	}
	if cfg.Search.LeadInThreshold != DefaultLeadInThreshold {
		t.Errorf("lead_in_threshold = %d", cfg.Search.LeadInThreshold)
	}
	if cfg.Watch.DebounceMs != DefaultWatchDebounceMs {
		t.Errorf("debounce_ms = %d", cfg.Watch.DebounceMs)
	}
	if len(cfg.Documents.Extensions) == 0 {
		t.Error("extensions should default to a non-empty list")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("KOTAE_DOCS_DIR", "/env/docs")
	t.Setenv("KOTAE_INDEX_DIR", "/env/index")
	cfg, err := Load(writeConfig(t, `
documents:
  dir: /file/docs
index:
  dir: /file/index
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Documents.Dir != "/env/docs" {
		t.Errorf("documents dir = %q, want env override", cfg.Documents.Dir)
	}
	if cfg.Index.Dir != "/env/index" {
		t.Errorf("index dir = %q, want env override", cfg.Index.Dir)
	}
}

func TestLoadRelativePaths(t *testing.T) {
	path := writeConfig(t, `
documents:
  dir: ./docs
index:
  dir: ./index
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	configDir := filepath.Dir(path)
	if cfg.Documents.Dir != filepath.Join(configDir, "docs") {
		t.Errorf("documents dir = %q", cfg.Documents.Dir)
	}
	if cfg.Index.Dir != filepath.Join(configDir, "index") {
		t.Errorf("index dir = %q", cfg.Index.Dir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "documents: [not a map\n")); err == nil {
		t.Error("expected error for invalid yaml")
	}
}
