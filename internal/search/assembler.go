package search

import (
	"strings"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/models"
)

// NotFoundMessage is the fixed answer when no sufficiently relevant chunk exists.
const NotFoundMessage = "I couldn't find highly relevant information in the documents. " +
	"Please try rephrasing your question or check again later."

// answerLeadIn prefixes long combined answers.
const answerLeadIn = "Based on the available documents, here is the most relevant information:\n\n"

// Assembler builds a single answer text from ranked results. It deduplicates
// and concatenates; it never summarizes or generates.
type Assembler struct {
	// RelevanceThreshold is the minimum top score for the results to count as
	// a relevant match.
	RelevanceThreshold float64
	// LeadInThreshold is the combined length above which a lead-in sentence
	// is prepended.
	LeadInThreshold int
}

// NewAssembler creates an assembler from search configuration.
func NewAssembler(cfg *config.SearchConfig) *Assembler {
	return &Assembler{
		RelevanceThreshold: cfg.RelevanceThreshold,
		LeadInThreshold:    cfg.LeadInThreshold,
	}
}

// Assemble joins the result texts in rank order, dropping exact duplicates
// (first occurrence wins). When results are empty or the best score is below
// the relevance threshold, the fixed not-found message is returned.
func (a *Assembler) Assemble(results []*models.SearchResult) string {
	if len(results) == 0 || results[0].Score < a.RelevanceThreshold {
		return NotFoundMessage
	}
	seen := make(map[string]struct{}, len(results))
	parts := make([]string, 0, len(results))
	for _, r := range results {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		parts = append(parts, text)
	}
	answer := strings.Join(parts, "\n\n")
	if len(answer) > a.LeadInThreshold {
		answer = answerLeadIn + answer
	}
	return answer
}
