package search

import (
	"strings"
	"testing"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/models"
)

func testAssembler() *Assembler {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return NewAssembler(&cfg.Search)
}

func result(score float64, text string) *models.SearchResult {
	return &models.SearchResult{Score: score, Text: text}
}

func TestAssemble_Empty(t *testing.T) {
	a := testAssembler()
	if got := a.Assemble(nil); got != NotFoundMessage {
		t.Errorf("empty results should produce the fixed message, got %q", got)
	}
}

func TestAssemble_BelowThreshold(t *testing.T) {
	a := testAssembler()
	got := a.Assemble([]*models.SearchResult{result(0.01, "irrelevant text")})
	if got != NotFoundMessage {
		t.Errorf("low score should produce the fixed message, got %q", got)
	}
}

func TestAssemble_JoinsInRankOrder(t *testing.T) {
	a := testAssembler()
	got := a.Assemble([]*models.SearchResult{
		result(0.9, "first paragraph"),
		result(0.5, "second paragraph"),
	})
	want := "first paragraph\n\nsecond paragraph"
	if got != want {
		t.Errorf("Assemble=%q, want %q", got, want)
	}
}

func TestAssemble_DropsDuplicates(t *testing.T) {
	a := testAssembler()
	got := a.Assemble([]*models.SearchResult{
		result(0.9, "the same text"),
		result(0.8, "other text"),
		result(0.7, "the same text"),
	})
	if strings.Count(got, "the same text") != 1 {
		t.Errorf("duplicate text should appear once, got %q", got)
	}
	if !strings.Contains(got, "other text") {
		t.Errorf("non-duplicate text missing, got %q", got)
	}
}

func TestAssemble_LeadInForLongAnswers(t *testing.T) {
	a := testAssembler()
	long := strings.Repeat("x", 900)
	got := a.Assemble([]*models.SearchResult{result(0.9, long)})
	if !strings.HasPrefix(got, answerLeadIn) {
		t.Error("long answers should start with the lead-in")
	}

	short := a.Assemble([]*models.SearchResult{result(0.9, "brief")})
	if strings.HasPrefix(short, answerLeadIn) {
		t.Error("short answers should not get the lead-in")
	}
}
