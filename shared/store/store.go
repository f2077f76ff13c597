// Package store wraps the document database behind a small async key-value
// contract: fetch a document by id, upsert one, append one, query a
// collection. Everything above this package treats the database as opaque.
package store

import "context"

// QueryOpts narrows and orders a collection query.
type QueryOpts struct {
	SortBy string // field name, empty for store order
	Desc   bool
	Limit  int64 // 0 for no limit
}

// Store is the document key-value contract the rest of the service consumes.
type Store interface {
	// Get decodes the document with the given id into out. The boolean is
	// false when no such document exists; that is not an error.
	Get(ctx context.Context, collection, id string, out any) (bool, error)

	// Set writes the document under the given id. With merge set, fields
	// present in doc are overlaid onto the stored document; otherwise the
	// stored document is replaced. The document is created either way.
	Set(ctx context.Context, collection, id string, doc any, merge bool) error

	// Insert appends a new document and returns its generated id.
	Insert(ctx context.Context, collection string, doc any) (string, error)

	// Query decodes every matching document into out, which must be a
	// pointer to a slice. A nil filter matches everything.
	Query(ctx context.Context, collection string, filter map[string]any, out any, opts QueryOpts) error
}
