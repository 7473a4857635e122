// Package search provides query routing, filtered ranking, and answer assembly.
package search

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/index"
	"github.com/hyperjump/kotae/internal/models"
)

// FilterOutcome records how one filter code fared during retrieval.
type FilterOutcome struct {
	Code string
	Mode FilterMode
	Hits int
	Err  error
}

// Engine answers questions against the index held by its Holder. Stateless
// apart from the holder; safe for concurrent use.
type Engine struct {
	holder    *Holder
	scorer    Scorer
	assembler *Assembler
	cfg       *config.SearchConfig
	logger    *zap.Logger // optional; when set, logs skipped filter codes
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets a logger for retrieval diagnostics.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// WithScorer replaces the default cosine scorer.
func WithScorer(s Scorer) EngineOption {
	return func(e *Engine) { e.scorer = s }
}

// NewEngine creates an engine over holder with the given search configuration.
func NewEngine(holder *Holder, cfg *config.SearchConfig, opts ...EngineOption) *Engine {
	e := &Engine{
		holder:    holder,
		scorer:    CosineScorer{},
		assembler: NewAssembler(cfg),
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Answer routes, retrieves, and assembles a single answer for the question.
// topK <= 0 uses the configured defaults. Returns ErrNotInitialized (transient)
// when no index is loaded yet.
func (e *Engine) Answer(ctx context.Context, question string, topK int) (*models.Answer, error) {
	filters := ExtractFilters(question)
	results, outcomes, err := e.Retrieve(ctx, question, filters, topK)
	if err != nil {
		return nil, err
	}
	for _, o := range outcomes {
		if o.Err != nil && e.logger != nil {
			e.logger.Warn("filter code skipped",
				zap.String("code", o.Code),
				zap.Error(o.Err),
			)
		}
	}
	return &models.Answer{
		Answer:  e.assembler.Assemble(results),
		Results: results,
	}, nil
}

// Retrieve scores and ranks chunks for the question, highest score first.
//
// With filters: each code is searched against chunks whose group code matches
// it exactly (up to topK per code); a code with zero exact hits falls back to
// a broader candidate set filtered by group-code prefix. A failing code is
// recorded and skipped, never aborting the query. When every code comes up
// empty, or filters is empty, one corpus-wide search runs with the broader
// default k.
func (e *Engine) Retrieve(ctx context.Context, question string, filters []string, topK int) ([]*models.SearchResult, []FilterOutcome, error) {
	ix, err := e.holder.Get()
	if err != nil {
		return nil, nil, err
	}
	query := ix.Transform(question)

	perCodeK := topK
	if perCodeK <= 0 {
		perCodeK = e.cfg.DefaultTopK
	}
	corpusK := topK
	if corpusK <= 0 {
		corpusK = e.cfg.BroadTopK
	}

	var outcomes []FilterOutcome
	if len(filters) > 0 {
		var combined []*models.SearchResult
		seen := make(map[string]struct{})
		for _, code := range filters {
			results, outcome := e.searchCode(ix, query, code, perCodeK)
			outcomes = append(outcomes, outcome)
			if outcome.Err != nil {
				continue
			}
			for _, r := range results {
				if _, ok := seen[r.Chunk.ID]; ok {
					continue
				}
				seen[r.Chunk.ID] = struct{}{}
				combined = append(combined, r)
			}
		}
		if len(combined) > 0 {
			sortByScore(combined)
			return combined, outcomes, nil
		}
		// All codes empty or failed; fall through to corpus-wide search.
	}

	return e.rank(ix, query, Filter{Mode: MatchAll}, corpusK), outcomes, nil
}

// searchCode runs the fixed strategy order for one filter code: exact match,
// then prefix fallback over a broader candidate set.
func (e *Engine) searchCode(ix *index.Index, query []float64, code string, k int) ([]*models.SearchResult, FilterOutcome) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, FilterOutcome{Code: code, Err: errors.New("empty filter code")}
	}
	mode := ExactMatch
	results := e.rank(ix, query, Filter{Mode: ExactMatch, Code: code}, k)
	if len(results) == 0 {
		mode = PrefixFallback
		broad := e.rank(ix, query, Filter{Mode: MatchAll}, e.cfg.PrefixFallbackK)
		prefix := Filter{Mode: PrefixFallback, Code: code}
		for _, r := range broad {
			if prefix.Matches(r.Chunk) {
				results = append(results, r)
			}
		}
		if len(results) > k {
			results = results[:k]
		}
	}
	return results, FilterOutcome{Code: code, Mode: mode, Hits: len(results)}
}

// rank scores every chunk admitted by f and returns up to k results, score
// descending, ties kept in chunk insertion order.
func (e *Engine) rank(ix *index.Index, query []float64, f Filter, k int) []*models.SearchResult {
	var results []*models.SearchResult
	for i := 0; i < ix.Len(); i++ {
		chunk := ix.Chunk(i)
		if !f.Matches(chunk) {
			continue
		}
		results = append(results, &models.SearchResult{
			Chunk:   chunk,
			Score:   e.scorer.Score(query, ix.Vector(i)),
			DocName: chunk.DocName,
			Section: chunk.Section,
			Text:    chunk.Text,
		})
	}
	sortByScore(results)
	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results
}

// sortByScore sorts descending by score; the stable sort preserves chunk
// insertion order on ties.
func sortByScore(results []*models.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
