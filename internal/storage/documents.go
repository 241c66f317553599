// Package storage implements the document storage port on PostgreSQL. The
// layout is Firestore-like: documents addressed by (collection, key) holding
// a JSON object, written with per-field merge semantics.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Collection and document keys of the persisted layout.
const (
	CollectionPlaylistData = "playlist_data"
	CollectionStatus       = "status"
	CollectionParsedData   = "parsed_data"

	KeyPlaylistStatus = "playlist_status"
	KeyPointsArray    = "points_array"
	KeyCalcs          = "calcs"
)

// Document is one stored record: its key within the collection and the raw
// JSON object.
type Document struct {
	Key  string
	Data []byte
}

// Store is the document storage port. Set always merges: fields of an
// existing document that are not part of the write are preserved.
type Store interface {
	// Get returns the raw document, with found=false when it does not exist.
	Get(ctx context.Context, collection, key string) (data []byte, found bool, err error)
	// Set merge-writes the JSON-marshalable fields into the document.
	Set(ctx context.Context, collection, key string, fields any) error
	// List returns all documents of a collection in ascending key order.
	List(ctx context.Context, collection string) ([]Document, error)
}

// DocumentStore is the PostgreSQL implementation of Store.
type DocumentStore struct {
	db *sql.DB
}

// NewDocumentStore creates a document store over an open database handle.
func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Ping checks database connectivity.
func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureSchema creates the documents table if it does not exist yet.
func (s *DocumentStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			key        TEXT NOT NULL,
			data       JSONB NOT NULL DEFAULT '{}'::jsonb,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (collection, key)
		)
	`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure documents schema: %w", err)
	}

	return nil
}

// Get returns the raw JSON object stored at collection/key.
func (s *DocumentStore) Get(ctx context.Context, collection, key string) ([]byte, bool, error) {
	query := `SELECT data FROM documents WHERE collection = $1 AND key = $2`

	var data []byte
	scanErr := s.db.QueryRowContext(ctx, query, collection, key).Scan(&data)
	if scanErr == sql.ErrNoRows {
		return nil, false, nil
	}
	if scanErr != nil {
		return nil, false, fmt.Errorf("get document %s/%s: %w", collection, key, scanErr)
	}

	return data, true, nil
}

// Set merge-writes fields into the document at collection/key. Top-level
// fields in the write replace their counterparts; all other fields of the
// existing document are kept, matching Firestore-style merge writes.
func (s *DocumentStore) Set(ctx context.Context, collection, key string, fields any) error {
	payload, marshalErr := json.Marshal(fields)
	if marshalErr != nil {
		return fmt.Errorf("marshal document %s/%s: %w", collection, key, marshalErr)
	}

	query := `
		INSERT INTO documents (collection, key, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, key)
		DO UPDATE SET data = documents.data || EXCLUDED.data, updated_at = NOW()
	`

	if _, execErr := s.db.ExecContext(ctx, query, collection, key, payload); execErr != nil {
		return fmt.Errorf("set document %s/%s: %w", collection, key, execErr)
	}

	return nil
}

// List returns every document of a collection ordered by key. Day-keyed
// collections come back in chronological order.
func (s *DocumentStore) List(ctx context.Context, collection string) ([]Document, error) {
	query := `SELECT key, data FROM documents WHERE collection = $1 ORDER BY key`

	rows, queryErr := s.db.QueryContext(ctx, query, collection)
	if queryErr != nil {
		return nil, fmt.Errorf("list collection %s: %w", collection, queryErr)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if scanErr := rows.Scan(&doc.Key, &doc.Data); scanErr != nil {
			return nil, fmt.Errorf("scan document row: %w", scanErr)
		}
		docs = append(docs, doc)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("collection %s rows: %w", collection, rowsErr)
	}

	return docs, nil
}
