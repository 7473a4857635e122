package indexer

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/hyperjump/kotae/internal/models"
)

// Chunker accumulates paragraphs into chunks of at least minChars characters.
type Chunker struct {
	minChars int
}

// NewChunker creates a chunker with the given minimum chunk length (in characters).
func NewChunker(minChars int) *Chunker {
	return &Chunker{minChars: minChars}
}

// Split splits text on blank-line paragraph boundaries and accumulates
// consecutive paragraphs until the buffer reaches minChars, then flushes it
// as one chunk (paragraphs joined with a blank line). A trailing buffer is
// flushed even when shorter than minChars. Whitespace-only paragraphs are
// dropped; text with no non-empty paragraphs yields no chunks.
func (c *Chunker) Split(text string) []string {
	parts := strings.Split(text, "\n\n")
	var chunks []string
	var buffer []string
	bufLen := 0
	for _, part := range parts {
		stripped := strings.TrimSpace(part)
		if stripped == "" {
			continue
		}
		buffer = append(buffer, stripped)
		bufLen += len(stripped)
		if bufLen >= c.minChars {
			chunks = append(chunks, strings.Join(buffer, "\n\n"))
			buffer = nil
			bufLen = 0
		}
	}
	if len(buffer) > 0 {
		chunks = append(chunks, strings.Join(buffer, "\n\n"))
	}
	return chunks
}

// ChunkDocument splits a document into chunks with metadata attached.
// Body text goes through the length-threshold logic; each table text becomes
// exactly one chunk tagged as a table, never merged or split.
func (c *Chunker) ChunkDocument(doc *models.Document) []models.Chunk {
	group := GroupCode(doc.Name)
	var chunks []models.Chunk
	for i, text := range c.Split(doc.Text) {
		chunks = append(chunks, models.Chunk{
			ID:          chunkID(doc.Name),
			DocName:     doc.Name,
			Section:     fmt.Sprintf("chunk-%d", i),
			Text:        text,
			GroupCode:   group,
			ContentType: models.ContentTypeText,
		})
	}
	for i, table := range doc.Tables {
		text := strings.TrimSpace(table)
		if text == "" {
			continue
		}
		chunks = append(chunks, models.Chunk{
			ID:          chunkID(doc.Name),
			DocName:     doc.Name,
			Section:     fmt.Sprintf("table-%d", i),
			Text:        text,
			GroupCode:   group,
			ContentType: models.ContentTypeTable,
		})
	}
	return chunks
}

// Leading course-code shape in an uppercased file name stem, e.g. "MAT235Y1".
var groupCodePattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{3}[A-Z0-9]*`)

// GroupCode derives the group code for a source file name: the uppercased
// file name stem, reduced to its leading course-code run when the stem starts
// with one ("MAT235Y1_2025_syllabus.md" -> "MAT235Y1", "notes.md" -> "NOTES").
func GroupCode(name string) string {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	upper := strings.ToUpper(stem)
	if code := groupCodePattern.FindString(upper); code != "" {
		return code
	}
	return upper
}

func chunkID(docName string) string {
	stem := strings.TrimSuffix(filepath.Base(docName), filepath.Ext(docName))
	return fmt.Sprintf("%s_%s", stem, uuid.New().String()[:8])
}
