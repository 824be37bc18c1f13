// Package cache maps fingerprints to schema documents. Because a document is
// a deterministic function of its fingerprint, Store is idempotent: two
// workers computing the same fingerprint may both build and store, and the
// implementations treat the writes as equivalent rather than conflicting.
package cache

import (
	"context"

	shapegen "github.com/shapegen/shapegen"
)

// Cache is the persistence touchpoint the engine requires. File naming,
// directory layout and encoding are the implementation's concern.
type Cache interface {
	// Lookup returns the stored document for a fingerprint, or ok=false when
	// absent.
	Lookup(ctx context.Context, fp shapegen.Fingerprint) (*shapegen.Document, bool, error)
	// Store persists a document under its fingerprint. Storing an existing
	// key is a no-op or an equivalent overwrite, never an error; a partially
	// written document must never become visible.
	Store(ctx context.Context, fp shapegen.Fingerprint, doc *shapegen.Document) error
}
