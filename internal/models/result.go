package models

// SearchResult is a single ranked hit for a query. Transient; discarded after
// answer assembly.
type SearchResult struct {
	Chunk   *Chunk  `json:"-"`
	Score   float64 `json:"score"`
	DocName string  `json:"doc_name"`
	Section string  `json:"section"`
	Text    string  `json:"text"`
}

// Answer is the assembled response for one question. Results carries the
// ranked hits the answer was built from, for diagnostics and testing.
type Answer struct {
	Answer  string          `json:"answer"`
	Results []*SearchResult `json:"results,omitempty"`
}
