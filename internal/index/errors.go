package index

import "errors"

var (
	// ErrCorpusEmpty is returned by Build when no chunks were produced from
	// the input documents. Fatal at build time; nothing is persisted.
	ErrCorpusEmpty = errors.New("corpus is empty: no chunks to index")

	// ErrIndexMissing is returned by Load when one or more artifacts are absent.
	ErrIndexMissing = errors.New("index artifacts missing")

	// ErrIndexCorrupt is returned by Load when the artifacts are present but
	// structurally inconsistent (e.g. vector row count does not match the
	// chunk metadata list).
	ErrIndexCorrupt = errors.New("index artifacts inconsistent")
)
