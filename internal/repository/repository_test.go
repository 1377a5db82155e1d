package repository_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/portfolio-content-api/internal/config"
	"github.com/portfolio-content-api/internal/database"
	"github.com/portfolio-content-api/internal/models"
	"github.com/portfolio-content-api/internal/repository"
	"github.com/rs/zerolog"
)

func migrationsPath(t *testing.T) string {
	t.Helper()
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(currentFile)))
	return filepath.Join(projectRoot, "migrations")
}

func newSQLiteRepo(t *testing.T) repository.DocumentRepository {
	t.Helper()

	db, err := database.New(&config.DatabaseConfig{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "portfolio.db"),
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(migrationsPath(t)); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return repository.New(db).Documents
}

func TestDocumentRepo_GetMissingPathIsAbsent(t *testing.T) {
	repo := newSQLiteRepo(t)

	snap, err := repo.Get(context.Background(), "education")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if snap.Kind != models.SnapshotAbsent {
		t.Errorf("Expected absent snapshot, got %s", snap.Kind)
	}
}

func TestDocumentRepo_SetAndGet(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	in, _ := models.ParseSnapshot("skills", []byte(`{"s2":{"name":"Go"},"s1":{"name":"SQL"}}`))
	if err := repo.Set(ctx, "skills", in); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	out, err := repo.Get(ctx, "skills")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if out.Kind != models.SnapshotMapping || len(out.Entries) != 2 {
		t.Fatalf("Expected 2-entry mapping, got %s with %d entries", out.Kind, len(out.Entries))
	}
	if out.Entries[0].Key != "s2" || out.Entries[1].Key != "s1" {
		t.Errorf("Expected document order to survive storage, got %s, %s", out.Entries[0].Key, out.Entries[1].Key)
	}

	// overwrite replaces wholesale
	replacement, _ := models.ParseSnapshot("skills", []byte(`{"s3":{"name":"Redis"}}`))
	if err := repo.Set(ctx, "skills", replacement); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	out, _ = repo.Get(ctx, "skills")
	if len(out.Entries) != 1 || out.Entries[0].Key != "s3" {
		t.Errorf("Expected replacement document, got %+v", out.Entries)
	}
}

func TestDocumentRepo_PushAppendsInOrder(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	var keys []string
	for _, subject := range []string{"first", "second", "third"} {
		value, _ := json.Marshal(map[string]string{"subject": subject})
		key, err := repo.Push(ctx, "contact", value)
		if err != nil {
			t.Fatalf("Push failed: %v", err)
		}
		if key == "" {
			t.Fatal("Push returned an empty key")
		}
		keys = append(keys, key)
	}

	snap, err := repo.Get(ctx, "contact")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(snap.Entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(snap.Entries))
	}
	for i, e := range snap.Entries {
		if e.Key != keys[i] {
			t.Errorf("entry %d: expected key %s, got %s", i, keys[i], e.Key)
		}
	}

	var last map[string]string
	json.Unmarshal(snap.Entries[2].Value, &last)
	if last["subject"] != "third" {
		t.Errorf("Expected last entry to be 'third', got %v", last)
	}
}

func TestDocumentRepo_PushIntoList(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	list, _ := models.ParseSnapshot("skills", []byte(`[{"name":"Go"}]`))
	if err := repo.Set(ctx, "skills", list); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	key, err := repo.Push(ctx, "skills", json.RawMessage(`{"name":"SQL"}`))
	if err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if key != "1" {
		t.Errorf("Expected list push to return index 1, got %s", key)
	}
}

func TestDocumentRepo_PushIntoSparseListKeepsIDs(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	list, _ := models.ParseSnapshot("education", []byte(`[{"title":"A"},null,{"title":"C"}]`))
	if err := repo.Set(ctx, "education", list); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	key, err := repo.Push(ctx, "education", json.RawMessage(`{"title":"D"}`))
	if err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if key != "3" {
		t.Errorf("Expected push after a hole to return index 3, got %s", key)
	}

	got, err := repo.Get(ctx, "education")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	var keys []string
	for _, e := range got.Entries {
		keys = append(keys, e.Key)
	}
	if len(keys) != 3 || keys[0] != "0" || keys[1] != "2" || keys[2] != "3" {
		t.Errorf("Expected record ids [0 2 3], got %v", keys)
	}
}

func TestDocumentRepo_PushRejectsInvalidJSON(t *testing.T) {
	repo := newSQLiteRepo(t)

	if _, err := repo.Push(context.Background(), "contact", json.RawMessage(`{"broken"`)); err == nil {
		t.Fatal("Expected an error for invalid JSON")
	}
}

func TestDocumentRepo_PathsAndDelete(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	for _, p := range []string{"projects", "education"} {
		snap, _ := models.ParseSnapshot(p, []byte(`{}`))
		if err := repo.Set(ctx, p, snap); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	paths, err := repo.Paths(ctx)
	if err != nil {
		t.Fatalf("Paths failed: %v", err)
	}
	if len(paths) != 2 || paths[0] != "education" || paths[1] != "projects" {
		t.Errorf("Expected sorted paths [education projects], got %v", paths)
	}

	if err := repo.Delete(ctx, "projects"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	snap, _ := repo.Get(ctx, "projects")
	if snap.Kind != models.SnapshotAbsent {
		t.Errorf("Expected deleted path to be absent, got %s", snap.Kind)
	}
}
