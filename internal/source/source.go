// Package source provides document intake from local directories and
// S3-compatible object stores. A source yields the raw bytes of each
// candidate file; format detection and extraction happen downstream.
package source

import "context"

// Item is one document pulled from a source.
type Item struct {
	// Path is the item's path relative to the source root.
	Path string
	// Content is the raw file content.
	Content []byte
}

// Source enumerates documents from some backing store.
type Source interface {
	// Type identifies the source kind ("filesystem", "s3").
	Type() string

	// Traverse yields items until the source is exhausted or ctx is
	// cancelled. Both channels are closed when traversal ends; the
	// error channel carries at most one error.
	Traverse(ctx context.Context) (<-chan Item, <-chan error)
}
