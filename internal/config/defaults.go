package config

// Default retrieval tuning values. The relevance and lead-in thresholds are
// deliberately configurable; see SearchConfig.
const (
	DefaultMinChunkChars      = 50
	DefaultMaxFeatures        = 5000
	DefaultTopK               = 5
	DefaultBroadTopK          = 10
	DefaultPrefixFallbackK    = 20
	DefaultRelevanceThreshold = 0.05
	DefaultLeadInThreshold    = 800
	DefaultWatchDebounceMs    = 400
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Documents.Dir == "" {
		cfg.Documents.Dir = "/usr/local/var/kotae/docs"
	}
	if cfg.Documents.Extensions == nil {
		cfg.Documents.Extensions = []string{".md", ".txt"}
	}
	if cfg.Index.Dir == "" {
		cfg.Index.Dir = "/usr/local/var/kotae/index"
	}
	if cfg.Index.MinChunkChars == 0 {
		cfg.Index.MinChunkChars = DefaultMinChunkChars
	}
	if cfg.Index.MaxFeatures == 0 {
		cfg.Index.MaxFeatures = DefaultMaxFeatures
	}
	if cfg.Search.DefaultTopK == 0 {
		cfg.Search.DefaultTopK = DefaultTopK
	}
	if cfg.Search.BroadTopK == 0 {
		cfg.Search.BroadTopK = DefaultBroadTopK
	}
	if cfg.Search.PrefixFallbackK == 0 {
		cfg.Search.PrefixFallbackK = DefaultPrefixFallbackK
	}
	if cfg.Search.RelevanceThreshold == 0 {
		cfg.Search.RelevanceThreshold = DefaultRelevanceThreshold
	}
	if cfg.Search.LeadInThreshold == 0 {
		cfg.Search.LeadInThreshold = DefaultLeadInThreshold
	}
	if cfg.Watch.DebounceMs == 0 {
		cfg.Watch.DebounceMs = DefaultWatchDebounceMs
	}
}
