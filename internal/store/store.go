// Package store persists each collection as a single named JSON document.
package store

import "context"

// DocumentStore reads and writes whole JSON documents. There is no partial
// update and no locking: two concurrent writers race and the last write
// wins. Callers follow a read-modify-write discipline, so a check performed
// against a read is not atomic with the write that follows it.
type DocumentStore interface {
	// Read unmarshals the document into out. If the document does not exist
	// yet it is first created with defaultContent.
	Read(ctx context.Context, name string, out any, defaultContent any) error
	// Write replaces the whole document.
	Write(ctx context.Context, name string, v any) error
}
