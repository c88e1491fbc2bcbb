// Package sqlitestore backs the label store and the triple store with
// SQLite. This is the reference single-node deployment shape; larger
// installations swap in their own store.KeyValue / store.TripleStore.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/biofinder/semsearch/pkg/semsearch/internalerr"
	"github.com/biofinder/semsearch/pkg/semsearch/store"
)

// LabelStore implements store.KeyValue on a SQLite database.
type LabelStore struct {
	db *sql.DB
}

// OpenLabelStore opens (and if needed initializes) a SQLite label store.
func OpenLabelStore(ctx context.Context, path string) (*LabelStore, error) {
	db, err := open(ctx, path)
	if err != nil {
		return nil, err
	}

	schema := `
CREATE TABLE IF NOT EXISTS labels (
	key TEXT PRIMARY KEY,
	data TEXT NOT NULL
);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init label schema: %w", err)
	}

	return &LabelStore{db: db}, nil
}

// Read implements store.KeyValue.
func (s *LabelStore) Read(ctx context.Context, key string) (string, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM labels WHERE key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("label %q: %w", key, internalerr.ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return data, nil
}

// UpsertLabel stores or replaces the entity data for a label.
func (s *LabelStore) UpsertLabel(ctx context.Context, key, data string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO labels (key, data) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET data = excluded.data`, key, data)
	return err
}

// Close implements store.KeyValue.
func (s *LabelStore) Close() error { return s.db.Close() }

// TripleStore implements store.TripleStore on a SQLite database.
type TripleStore struct {
	db *sql.DB
}

// OpenTripleStore opens (and if needed initializes) a SQLite triple store.
func OpenTripleStore(ctx context.Context, path string) (*TripleStore, error) {
	db, err := open(ctx, path)
	if err != nil {
		return nil, err
	}

	schema := `
CREATE TABLE IF NOT EXISTS triples (
	subject TEXT NOT NULL,
	predicate TEXT NOT NULL,
	object TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_triples_po ON triples(predicate, object);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init triple schema: %w", err)
	}

	return &TripleStore{db: db}, nil
}

// AddTriples implements store.TripleStore.
func (s *TripleStore) AddTriples(ctx context.Context, triples []store.Triple) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, t := range triples {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO triples (subject, predicate, object) VALUES (?, ?, ?)",
			t.Subject, t.Predicate, t.Object); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// SubjectsMatching implements store.TripleStore.
func (s *TripleStore) SubjectsMatching(ctx context.Context, predicates, objects []string, limit int) ([]string, error) {
	var (
		clauses []string
		args    []any
	)
	if len(predicates) > 0 {
		clauses = append(clauses, "predicate IN ("+placeholders(len(predicates))+")")
		for _, p := range predicates {
			args = append(args, p)
		}
	}
	if len(objects) > 0 {
		clauses = append(clauses, "object IN ("+placeholders(len(objects))+")")
		for _, o := range objects {
			args = append(args, o)
		}
	}

	query := "SELECT DISTINCT subject FROM triples"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY subject"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []string
	for rows.Next() {
		var subject string
		if err := rows.Scan(&subject); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

// Close implements store.TripleStore.
func (s *TripleStore) Close() error { return s.db.Close() }

func open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL mode for better concurrency between reader goroutines.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
