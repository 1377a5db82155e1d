package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/portfolio-content-api/internal/database"
	"github.com/portfolio-content-api/internal/models"
)

// documentRepo is the concrete implementation of DocumentRepository
type documentRepo struct {
	db     *database.DB
	newKey func() (string, error)
}

// NewDocumentRepo creates a new document repository
func NewDocumentRepo(db *database.DB) DocumentRepository {
	return &documentRepo{db: db, newKey: newPushKey}
}

// newPushKey returns a UUIDv7, which sorts by creation time
func newPushKey() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Get retrieves the snapshot at path
func (r *documentRepo) Get(ctx context.Context, path string) (models.Snapshot, error) {
	var body string
	err := r.db.QueryRowContext(ctx, r.db.Rebind("SELECT body FROM documents WHERE path = ?"), path).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AbsentSnapshot(path), nil
	}
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("get %q: %w", path, err)
	}

	// Shape problems are the normalizer's concern; an unparseable body is
	// handed on as an invalid snapshot.
	snap, _ := models.ParseSnapshot(path, []byte(body))
	return snap, nil
}

// Set replaces the document at path
func (r *documentRepo) Set(ctx context.Context, path string, snap models.Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode %q: %w", path, err)
	}
	if err := r.upsert(ctx, r.db.DB, path, body); err != nil {
		return fmt.Errorf("set %q: %w", path, err)
	}
	return nil
}

// Push appends value under a new key inside a transaction
func (r *documentRepo) Push(ctx context.Context, path string, value json.RawMessage) (string, error) {
	if !json.Valid(value) {
		return "", fmt.Errorf("push %q: value is not valid JSON", path)
	}

	key, err := r.newKey()
	if err != nil {
		return "", fmt.Errorf("push %q: generate key: %w", path, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	query := "SELECT body FROM documents WHERE path = ?"
	if r.db.Driver() == database.DriverPostgres {
		query += " FOR UPDATE"
	}

	snap := models.AbsentSnapshot(path)
	var body string
	err = tx.QueryRowContext(ctx, r.db.Rebind(query), path).Scan(&body)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return "", fmt.Errorf("push %q: read: %w", path, err)
	default:
		// An unreadable document is replaced rather than blocking writes
		snap, _ = models.ParseSnapshot(path, []byte(body))
	}

	snap.Append(key, value)
	encoded, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("push %q: encode: %w", path, err)
	}

	if err := r.upsert(ctx, tx, path, encoded); err != nil {
		return "", fmt.Errorf("push %q: write: %w", path, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("push %q: commit: %w", path, err)
	}

	if snap.Kind == models.SnapshotList {
		return snap.Entries[len(snap.Entries)-1].Key, nil
	}
	return key, nil
}

// Delete removes the document at path
func (r *documentRepo) Delete(ctx context.Context, path string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM documents WHERE path = ?"), path)
	return err
}

// Paths lists every stored path
func (r *documentRepo) Paths(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT path FROM documents ORDER BY path")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (r *documentRepo) upsert(ctx context.Context, ex execer, path string, body []byte) error {
	query := `
		INSERT INTO documents (path, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (path) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`
	_, err := ex.ExecContext(ctx, r.db.Rebind(query), path, string(body), time.Now().UTC())
	return describePQError(err)
}

// describePQError surfaces the postgres error code when there is one
func describePQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("postgres %s (%s): %w", pqErr.Code, pqErr.Code.Name(), err)
	}
	return err
}
