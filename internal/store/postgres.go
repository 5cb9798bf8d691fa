package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PostgresStore keeps every collection in a single documents table with a
// JSONB payload. Filters use JSONB containment, so only top-level equality
// matches are supported; that is all the services need.
type PostgresStore struct {
	db    *sql.DB
	clock func() time.Time
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, clock: time.Now}
}

// Migrate creates the documents table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS documents (
	id         UUID PRIMARY KEY,
	collection TEXT NOT NULL,
	data       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS documents_collection_created_idx
	ON documents (collection, created_at DESC);
CREATE INDEX IF NOT EXISTS documents_data_idx
	ON documents USING GIN (data jsonb_path_ops);
`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

func (s *PostgresStore) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	if collection == "" {
		return "", ErrCollectionRequired
	}
	if doc == nil {
		return "", ErrDocumentRequired
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("store: marshal document: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, collection, data, created_at) VALUES ($1, $2, $3, $4)`,
		id, collection, payload, s.clock().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("store: insert into %s: %w", collection, err)
	}
	return id, nil
}

func (s *PostgresStore) Find(ctx context.Context, collection string, filter Document, limit int) ([]Document, error) {
	if collection == "" {
		return nil, ErrCollectionRequired
	}
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT id, data FROM documents WHERE collection = $1`
	args := []any{collection}
	if len(filter) > 0 {
		payload, err := json.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("store: marshal filter: %w", err)
		}
		query += ` AND data @> $2`
		args = append(args, payload)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: find in %s: %w", collection, err)
	}
	defer rows.Close()

	out := make([]Document, 0)
	for rows.Next() {
		var id string
		var payload []byte
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, err
		}
		doc := Document{}
		if err := json.Unmarshal(payload, &doc); err != nil {
			return nil, fmt.Errorf("store: unmarshal document %s: %w", id, err)
		}
		doc[FieldID] = id
		out = append(out, doc)
	}
	return out, rows.Err()
}
