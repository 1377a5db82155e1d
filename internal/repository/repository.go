package repository

import (
	"context"
	"encoding/json"

	"github.com/portfolio-content-api/internal/database"
	"github.com/portfolio-content-api/internal/models"
)

// DocumentRepository is a key-path document store. Each path holds one JSON
// document; there is no schema.
type DocumentRepository interface {
	// Get returns the snapshot stored at path. A missing path is an absent
	// snapshot, not an error.
	Get(ctx context.Context, path string) (models.Snapshot, error)
	// Set replaces the document at path
	Set(ctx context.Context, path string, snap models.Snapshot) error
	// Push appends value under a new time-ordered key and returns the key
	Push(ctx context.Context, path string, value json.RawMessage) (string, error)
	// Delete removes the document at path
	Delete(ctx context.Context, path string) error
	// Paths lists every stored path
	Paths(ctx context.Context) ([]string, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Documents DocumentRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Documents: NewDocumentRepo(db),
	}
}
