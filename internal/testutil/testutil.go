// Package testutil provides shared test helpers for temporary libraries and
// index databases.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/zyho/litkeep/internal/index"
	"github.com/zyho/litkeep/internal/litservice"
	"github.com/zyho/litkeep/internal/models"
	"github.com/zyho/litkeep/internal/store"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDB creates a temporary SQLite index that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "litkeep-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestStore creates a store backed by a temp file and returns its directory.
func TestStore(t *testing.T) (string, *store.Store) {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "papers_data.json"))
	if err != nil {
		t.Fatal(err)
	}
	return dir, st
}

// TestService wires a service with the default topics, temp output paths,
// and the given index (which may be nil).
func TestService(t *testing.T, db *index.DB) (*litservice.Service, string) {
	t.Helper()
	dir, st := TestStore(t)
	topics, err := models.NewTopicSet(models.DefaultTopics())
	if err != nil {
		t.Fatal(err)
	}
	svc := litservice.New(st, topics,
		filepath.Join(dir, "literature_review.md"),
		filepath.Join(dir, "references.bib"),
		db, Logger())
	return svc, dir
}

// Paper returns a valid paper for tests.
func Paper(title, authors string, year int) models.Paper {
	return models.Paper{
		Title:    title,
		Authors:  authors,
		Year:     year,
		Journal:  "Journal of Testing",
		Abstract: "Abstract of " + title + ".",
	}
}
