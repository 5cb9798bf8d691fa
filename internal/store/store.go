package store

import (
	"context"
	"errors"
)

// Document is a schemaless record as persisted in a collection.
type Document map[string]any

// Store is the persistence contract for the front desk collections.
//
// It is append-only: records are inserted and queried, never updated or
// deleted. Collections are plain names ("lead", "supportticket", ...) and
// documents are validated by the domain services before they get here.
type Store interface {
	Insert(ctx context.Context, collection string, doc Document) (string, error)
	Find(ctx context.Context, collection string, filter Document, limit int) ([]Document, error)
}

var (
	ErrCollectionRequired = errors.New("store: collection is required")
	ErrDocumentRequired   = errors.New("store: document is required")
)

// FieldID is the key under which a document's generated id is surfaced on reads.
const FieldID = "_id"
