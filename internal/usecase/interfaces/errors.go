package interfaces

import "errors"

// ErrVersionConflict is returned by Save when a concurrent writer won the
// race for the same document. The caller is expected to reload and retry;
// repositories never retry on their own.
var ErrVersionConflict = errors.New("document version conflict")
