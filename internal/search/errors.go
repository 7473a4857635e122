package search

import "errors"

// ErrNotInitialized is returned when a query arrives before any index has
// been loaded. Transient: callers should retry after the index is built or
// loaded, not treat it as a permanent failure.
var ErrNotInitialized = errors.New("index not initialized")
