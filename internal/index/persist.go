package index

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/hyperjump/kotae/internal/storage"
)

// Artifact file names under the index directory. The three artifacts are
// logically independent: vocabulary + term weights, the chunk weight matrix,
// and the ordered chunk metadata list.
const (
	VocabularyFile = "vocabulary.json"
	VectorsFile    = "vectors.bin"
	ChunksFile     = "chunks.db"
)

// Save writes the three index artifacts into dir, creating it if needed.
// Save does not replace a serving index atomically by itself; callers build
// into a fresh directory and rename it into place (see indexer.Builder).
func (ix *Index) Save(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	if err := ix.saveVocabulary(filepath.Join(dir, VocabularyFile)); err != nil {
		return err
	}
	if err := ix.saveVectors(filepath.Join(dir, VectorsFile)); err != nil {
		return err
	}
	store, err := storage.NewSQLiteStore(filepath.Join(dir, ChunksFile))
	if err != nil {
		return fmt.Errorf("open chunk store: %w", err)
	}
	defer store.Close()
	if err := store.SaveChunks(ctx, ix.chunks); err != nil {
		return fmt.Errorf("save chunk metadata: %w", err)
	}
	return nil
}

// Load reconstructs an index from the artifacts in dir. Returns
// ErrIndexMissing when artifacts are absent, ErrIndexCorrupt when they are
// present but structurally inconsistent.
func Load(ctx context.Context, dir string) (*Index, error) {
	vectorizer, err := loadVocabulary(filepath.Join(dir, VocabularyFile))
	if err != nil {
		return nil, err
	}
	vectors, err := loadVectors(filepath.Join(dir, VectorsFile))
	if err != nil {
		return nil, err
	}
	chunksPath := filepath.Join(dir, ChunksFile)
	// The sqlite driver creates a missing database file on open, so absence
	// must be detected up front.
	if _, err := os.Stat(chunksPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrIndexMissing, chunksPath)
		}
		return nil, fmt.Errorf("stat chunk store: %w", err)
	}
	store, err := storage.NewSQLiteStore(chunksPath)
	if err != nil {
		return nil, fmt.Errorf("open chunk store: %w", err)
	}
	defer store.Close()
	chunks, err := store.ListChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read chunk metadata: %v", ErrIndexCorrupt, err)
	}

	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: %d vector rows but %d chunks", ErrIndexCorrupt, len(vectors), len(chunks))
	}
	for i, row := range vectors {
		if len(row) != vectorizer.Dim() {
			return nil, fmt.Errorf("%w: vector row %d has %d columns, vocabulary has %d terms",
				ErrIndexCorrupt, i, len(row), vectorizer.Dim())
		}
	}
	return &Index{
		vectorizer: vectorizer,
		vectors:    vectors,
		chunks:     chunks,
	}, nil
}

// Exists reports whether all three artifacts are present in dir.
func Exists(dir string) bool {
	for _, name := range []string{VocabularyFile, VectorsFile, ChunksFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}

func (ix *Index) saveVocabulary(path string) error {
	data, err := json.Marshal(ix.vectorizer)
	if err != nil {
		return fmt.Errorf("marshal vocabulary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write vocabulary: %w", err)
	}
	return nil
}

func loadVocabulary(path string) (*Vectorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrIndexMissing, path)
		}
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	var v Vectorizer
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: parse vocabulary: %v", ErrIndexCorrupt, err)
	}
	if len(v.Terms) != len(v.IDF) {
		return nil, fmt.Errorf("%w: %d terms but %d idf weights", ErrIndexCorrupt, len(v.Terms), len(v.IDF))
	}
	v.rebuildVocab()
	return &v, nil
}

// saveVectors writes the matrix as rows (4), cols (4), then row-major float64
// values, all little-endian.
func (ix *Index) saveVectors(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create vectors file: %w", err)
	}
	defer f.Close()
	cols := ix.vectorizer.Dim()
	if err := binary.Write(f, binary.LittleEndian, uint32(len(ix.vectors))); err != nil {
		return fmt.Errorf("write row count: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(cols)); err != nil {
		return fmt.Errorf("write column count: %w", err)
	}
	buf := make([]byte, cols*8)
	for _, row := range ix.vectors {
		for i, v := range row {
			binary.LittleEndian.PutUint64(buf[i*8:(i+1)*8], math.Float64bits(v))
		}
		if _, err := f.Write(buf); err != nil {
			return fmt.Errorf("write vector row: %w", err)
		}
	}
	return nil
}

func loadVectors(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrIndexMissing, path)
		}
		return nil, fmt.Errorf("open vectors file: %w", err)
	}
	defer f.Close()
	var rows, cols uint32
	if err := binary.Read(f, binary.LittleEndian, &rows); err != nil {
		return nil, fmt.Errorf("%w: read row count: %v", ErrIndexCorrupt, err)
	}
	if err := binary.Read(f, binary.LittleEndian, &cols); err != nil {
		return nil, fmt.Errorf("%w: read column count: %v", ErrIndexCorrupt, err)
	}
	vectors := make([][]float64, 0, rows)
	buf := make([]byte, int(cols)*8)
	for i := uint32(0); i < rows; i++ {
		if _, err := io.ReadFull(f, buf); err != nil {
			return nil, fmt.Errorf("%w: read vector row %d: %v", ErrIndexCorrupt, i, err)
		}
		row := make([]float64, cols)
		for j := range row {
			row[j] = math.Float64frombits(binary.LittleEndian.Uint64(buf[j*8 : (j+1)*8]))
		}
		vectors = append(vectors, row)
	}
	return vectors, nil
}
