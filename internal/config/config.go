// Package config provides configuration loading and structs for Kotae.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Documents DocumentsConfig `yaml:"documents"`
	Index     IndexConfig     `yaml:"index"`
	Search    SearchConfig    `yaml:"search"`
	Watch     WatchConfig     `yaml:"watch"`
}

// DocumentsConfig holds the source document directory settings.
type DocumentsConfig struct {
	Dir        string   `yaml:"dir"`
	Extensions []string `yaml:"extensions"`
}

// IndexConfig holds index build and artifact settings.
type IndexConfig struct {
	Dir           string `yaml:"dir"`
	MinChunkChars int    `yaml:"min_chunk_chars"`
	MaxFeatures   int    `yaml:"max_features"`
}

// SearchConfig holds retrieval and answer assembly settings.
type SearchConfig struct {
	// DefaultTopK is the per-filter-code result count for filtered search.
	DefaultTopK int `yaml:"default_top_k"`
	// BroadTopK is the result count for corpus-wide (unfiltered) search.
	BroadTopK int `yaml:"broad_top_k"`
	// PrefixFallbackK is the internal candidate count used when an exact
	// group-code match comes up empty and retrieval falls back to a prefix scan.
	PrefixFallbackK int `yaml:"prefix_fallback_k"`
	// RelevanceThreshold is the minimum top score below which the assembler
	// answers with the fixed not-found message. Zero means use the default.
	RelevanceThreshold float64 `yaml:"relevance_threshold"`
	// LeadInThreshold is the combined answer length above which a one-sentence
	// lead-in is prepended.
	LeadInThreshold int `yaml:"lead_in_threshold"`
}

// WatchConfig holds documents directory watch settings.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms"`
}

// Load reads and parses the config file at path, applies environment
// overrides and defaults, and expands relative paths.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnv(&cfg)
	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Documents.Dir = expandPath(cfg.Documents.Dir, configDir)
	cfg.Index.Dir = expandPath(cfg.Index.Dir, configDir)

	return &cfg, nil
}

// applyEnv overrides deployment paths from the environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("KOTAE_DOCS_DIR"); v != "" {
		cfg.Documents.Dir = v
	}
	if v := os.Getenv("KOTAE_INDEX_DIR"); v != "" {
		cfg.Index.Dir = v
	}
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
