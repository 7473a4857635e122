package search

import (
	"strings"

	"github.com/hyperjump/kotae/internal/models"
)

// FilterMode selects how a chunk's group code is matched during retrieval.
// The retriever evaluates modes in a fixed order: ExactMatch first, then
// PrefixFallback over a broader candidate set, then MatchAll.
type FilterMode int

const (
	// MatchAll admits every chunk (corpus-wide search).
	MatchAll FilterMode = iota
	// ExactMatch admits chunks whose group code equals the filter code.
	ExactMatch
	// PrefixFallback admits chunks whose group code starts with the filter
	// code, tolerating suffix variants ("MAT235Y1") the code normalization
	// does not produce.
	PrefixFallback
)

// String returns the mode name for logs and outcome records.
func (m FilterMode) String() string {
	switch m {
	case ExactMatch:
		return "exact"
	case PrefixFallback:
		return "prefix"
	default:
		return "all"
	}
}

// Filter is one group-code matching strategy.
type Filter struct {
	Mode FilterMode
	Code string
}

// Matches reports whether the chunk passes the filter.
func (f Filter) Matches(c *models.Chunk) bool {
	switch f.Mode {
	case ExactMatch:
		return c.GroupCode == f.Code
	case PrefixFallback:
		return strings.HasPrefix(c.GroupCode, f.Code)
	default:
		return true
	}
}
