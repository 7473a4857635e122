// Package indexer provides the offline corpus build: directory scan, chunking,
// index construction, and atomic artifact replacement.
package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/index"
	"github.com/hyperjump/kotae/internal/models"
)

// tableSuffix marks a pre-extracted table text file. "NAME.table.txt"
// attaches its content as a table of the document whose stem is NAME.
const tableSuffix = ".table.txt"

// Status is the outcome of processing one scanned file.
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusErrored Status = "errored"
)

// FileOutcome records how one scanned file fared during the build.
type FileOutcome struct {
	Path   string
	Status Status
	Chunks int
	Err    error
}

// Report summarizes a build: per-file outcomes and the total chunk count.
type Report struct {
	Outcomes   []FileOutcome
	ChunkCount int
}

// Builder scans a documents directory, chunks every document, and builds the
// index. A single Builder may be reused across rebuilds.
type Builder struct {
	chunker     *Chunker
	extensions  []string
	maxFeatures int
	logger      *zap.Logger // optional; when set, logs per-file events
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets a logger for per-file build events.
func WithLogger(l *zap.Logger) BuilderOption {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder creates a builder from document and index configuration.
func NewBuilder(docs *config.DocumentsConfig, idx *config.IndexConfig, opts ...BuilderOption) *Builder {
	b := &Builder{
		chunker:     NewChunker(idx.MinChunkChars),
		extensions:  docs.Extensions,
		maxFeatures: idx.MaxFeatures,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build scans docsDir, chunks every usable document, and builds an index over
// the result. Unreadable files are recorded as errored and skipped; the build
// continues with the rest. Returns index.ErrCorpusEmpty (wrapped) when the
// scan produces zero chunks.
func (b *Builder) Build(ctx context.Context, docsDir string) (*index.Index, *Report, error) {
	docs, report, err := b.loadDocuments(docsDir)
	if err != nil {
		return nil, nil, err
	}

	outcomeByPath := make(map[string]int, len(report.Outcomes))
	for i := range report.Outcomes {
		outcomeByPath[report.Outcomes[i].Path] = i
	}

	var chunks []models.Chunk
	for _, doc := range docs {
		docChunks := b.chunker.ChunkDocument(doc)
		chunks = append(chunks, docChunks...)
		if i, ok := outcomeByPath[doc.Name]; ok {
			report.Outcomes[i].Chunks = len(docChunks)
			if len(docChunks) == 0 {
				report.Outcomes[i].Status = StatusSkipped
			}
		}
		if b.logger != nil {
			b.logger.Debug("document chunked",
				zap.String("doc", doc.Name),
				zap.Int("chunks", len(docChunks)),
			)
		}
	}
	report.ChunkCount = len(chunks)

	ix, err := index.Build(chunks, b.maxFeatures)
	if err != nil {
		return nil, report, fmt.Errorf("build index from %s: %w", docsDir, err)
	}
	return ix, report, nil
}

// BuildAndSave builds the index and writes the artifacts to indexDir,
// replacing any previous artifacts atomically: the new artifacts are written
// to a fresh sibling directory which is then renamed into place, so a
// concurrent loader sees either the fully-old or fully-new artifact set.
func (b *Builder) BuildAndSave(ctx context.Context, docsDir, indexDir string) (*index.Index, *Report, error) {
	ix, report, err := b.Build(ctx, docsDir)
	if err != nil {
		return nil, report, err
	}

	tmpDir := fmt.Sprintf("%s.build-%d", indexDir, time.Now().UnixNano())
	if err := ix.Save(ctx, tmpDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, report, fmt.Errorf("save index artifacts: %w", err)
	}
	if err := replaceDir(tmpDir, indexDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, report, fmt.Errorf("replace index artifacts: %w", err)
	}
	if b.logger != nil {
		b.logger.Info("index built",
			zap.String("index_dir", indexDir),
			zap.Int("chunks", report.ChunkCount),
			zap.Int("vocabulary", ix.VocabSize()),
		)
	}
	return ix, report, nil
}

// replaceDir renames src into place at dst, moving any existing dst aside
// first and removing it after the swap succeeds.
func replaceDir(src, dst string) error {
	old := dst + ".old"
	_ = os.RemoveAll(old)
	if _, err := os.Stat(dst); err == nil {
		if err := os.Rename(dst, old); err != nil {
			return fmt.Errorf("move previous artifacts aside: %w", err)
		}
	}
	if err := os.Rename(src, dst); err != nil {
		// Try to restore the previous artifacts.
		_ = os.Rename(old, dst)
		return fmt.Errorf("rename into place: %w", err)
	}
	_ = os.RemoveAll(old)
	return nil
}

// loadDocuments reads every document file in docsDir (non-recursive, sorted
// by name for determinism). Table text files attach to the document sharing
// their stem or, lacking one, form a table-only document of their own.
func (b *Builder) loadDocuments(docsDir string) ([]*models.Document, *Report, error) {
	entries, err := os.ReadDir(docsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("read documents directory: %w", err)
	}

	report := &Report{}
	var docs []*models.Document
	byStem := make(map[string]*models.Document)

	// Two passes keep attachment independent of directory listing order:
	// documents first, then table files.
	for _, entry := range entries {
		if entry.IsDir() || isTableFile(entry.Name()) || !b.extensionAllowed(entry.Name()) {
			continue
		}
		path := filepath.Join(docsDir, entry.Name())
		text, err := os.ReadFile(path)
		if err != nil {
			// Recoverable: skip this document, keep building with the rest.
			report.Outcomes = append(report.Outcomes, FileOutcome{Path: entry.Name(), Status: StatusErrored, Err: err})
			if b.logger != nil {
				b.logger.Warn("document unreadable, skipping", zap.String("path", path), zap.Error(err))
			}
			continue
		}
		doc := &models.Document{Name: entry.Name(), Text: string(text)}
		docs = append(docs, doc)
		byStem[stem(entry.Name())] = doc
		report.Outcomes = append(report.Outcomes, FileOutcome{Path: entry.Name(), Status: StatusOK})
	}

	for _, entry := range entries {
		if entry.IsDir() || !isTableFile(entry.Name()) {
			continue
		}
		path := filepath.Join(docsDir, entry.Name())
		text, err := os.ReadFile(path)
		if err != nil {
			report.Outcomes = append(report.Outcomes, FileOutcome{Path: entry.Name(), Status: StatusErrored, Err: err})
			if b.logger != nil {
				b.logger.Warn("table file unreadable, skipping", zap.String("path", path), zap.Error(err))
			}
			continue
		}
		base := strings.TrimSuffix(entry.Name(), tableSuffix)
		if doc, ok := byStem[base]; ok {
			doc.Tables = append(doc.Tables, string(text))
		} else {
			doc := &models.Document{Name: entry.Name(), Tables: []string{string(text)}}
			docs = append(docs, doc)
			byStem[stem(entry.Name())] = doc
		}
		report.Outcomes = append(report.Outcomes, FileOutcome{Path: entry.Name(), Status: StatusOK})
	}

	return docs, report, nil
}

func (b *Builder) extensionAllowed(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range b.extensions {
		if strings.ToLower(strings.TrimPrefix(a, ".")) == strings.TrimPrefix(ext, ".") {
			return true
		}
	}
	return false
}

func isTableFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), tableSuffix)
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
