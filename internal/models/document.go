// Package models defines core data structures for documents, chunks, and search results.
package models

// ContentType labels what kind of text a chunk holds.
type ContentType string

const (
	// ContentTypeText is a chunk assembled from document paragraphs.
	ContentTypeText ContentType = "text"
	// ContentTypeTable is a chunk holding one pre-extracted table.
	ContentTypeTable ContentType = "table"
)

// Document is the transient build-time input: one source file's extracted
// text plus any pre-extracted table texts. Documents are not persisted; only
// the chunks derived from them are.
type Document struct {
	Name   string   // source file name, e.g. "MAT235_syllabus.md"
	Text   string   // extracted body text
	Tables []string // pre-extracted table texts; each becomes its own chunk
}

// Chunk is the atomic retrieval candidate. Created during chunking, immutable
// thereafter, owned by the index.
type Chunk struct {
	ID          string      `json:"id"`
	DocName     string      `json:"doc_name"`
	Section     string      `json:"section"` // ordinal label, e.g. "chunk-3" or "table-0"
	Text        string      `json:"text"`
	GroupCode   string      `json:"group_code"` // e.g. "MAT235", derived from the file name stem
	ContentType ContentType `json:"content_type"`
}
