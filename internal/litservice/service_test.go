package litservice_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zyho/litkeep/internal/apperr"
	"github.com/zyho/litkeep/internal/testutil"
)

func TestAddEntry_PersistsAndRegenerates(t *testing.T) {
	svc, dir := testutil.TestService(t, nil)
	ctx := context.Background()

	if err := svc.AddEntry(ctx, "2", testutil.Paper("Bank Runs", "Smith, J.", 2020)); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "papers_data.json"))
	if err != nil {
		t.Fatalf("data file not written: %v", err)
	}
	if !strings.Contains(string(data), "Bank Runs") {
		t.Error("entry missing from data file")
	}

	doc, err := os.ReadFile(filepath.Join(dir, "literature_review.md"))
	if err != nil {
		t.Fatalf("document not written: %v", err)
	}
	if !strings.Contains(string(doc), "## Topic 2: Russian Banking") {
		t.Errorf("document heading missing:\n%s", doc)
	}

	bib, err := os.ReadFile(filepath.Join(dir, "references.bib"))
	if err != nil {
		t.Fatalf("bibtex not written: %v", err)
	}
	if !strings.Contains(string(bib), "@article{smith2020,") {
		t.Errorf("bibtex entry missing:\n%s", bib)
	}
}

func TestAddEntry_UnknownTopic(t *testing.T) {
	svc, _ := testutil.TestService(t, nil)
	err := svc.AddEntry(context.Background(), "42", testutil.Paper("T", "A", 2020))
	if !errors.Is(err, apperr.ErrUnknownTopic) {
		t.Errorf("err = %v, want ErrUnknownTopic", err)
	}
}

func TestAddEntry_InvalidPaper(t *testing.T) {
	svc, _ := testutil.TestService(t, nil)
	p := testutil.Paper("T", "A", 2020)
	p.Abstract = "  "
	if err := svc.AddEntry(context.Background(), "1", p); err == nil {
		t.Error("expected validation error")
	}
	if svc.Store().Count() != 0 {
		t.Error("invalid entry was stored")
	}
}

func TestModifyAbstract(t *testing.T) {
	svc, _ := testutil.TestService(t, nil)
	ctx := context.Background()
	_ = svc.AddEntry(ctx, "1", testutil.Paper("T", "Smith", 2020))

	if err := svc.ModifyAbstract(ctx, "1", 0, "replacement"); err != nil {
		t.Fatalf("ModifyAbstract: %v", err)
	}
	got := svc.Store().Entries("1")
	if got[0].Abstract != "replacement" {
		t.Errorf("abstract = %q", got[0].Abstract)
	}

	err := svc.ModifyAbstract(ctx, "1", 7, "x")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFind(t *testing.T) {
	svc, _ := testutil.TestService(t, nil)
	ctx := context.Background()
	_ = svc.AddEntry(ctx, "1", testutil.Paper("A", "Smith; Jones", 2020))
	_ = svc.AddEntry(ctx, "2", testutil.Paper("B", "Lee", 2020))

	matches := svc.Find([]string{"jones"}, 2020)
	if len(matches) != 1 || matches[0].Paper.Title != "A" {
		t.Errorf("matches = %+v", matches)
	}
}

func TestSearch_NoIndex(t *testing.T) {
	svc, _ := testutil.TestService(t, nil)
	_, err := svc.Search(context.Background(), "anything", 10)
	if !errors.Is(err, apperr.ErrNoIndex) {
		t.Errorf("err = %v, want ErrNoIndex", err)
	}
}

func TestSearch_WithIndex(t *testing.T) {
	svc, _ := testutil.TestService(t, testutil.TestDB(t))
	ctx := context.Background()
	if err := svc.AddEntry(ctx, "3", testutil.Paper("Voluntary Disclosure", "Doe", 2018)); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	results, err := svc.Search(ctx, "disclosure", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Topic != "3" {
		t.Errorf("results = %+v", results)
	}
}

func TestRefresh_PicksUpExternalEdit(t *testing.T) {
	svc, dir := testutil.TestService(t, nil)
	ctx := context.Background()
	_ = svc.AddEntry(ctx, "1", testutil.Paper("Old", "Smith", 2020))

	edited := `{"1": [{"title": "Edited", "authors": "Smith", "year": 2020, "journal": "J", "abstract": "x"}]}`
	if err := os.WriteFile(filepath.Join(dir, "papers_data.json"), []byte(edited), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	got := svc.Store().Entries("1")
	if len(got) != 1 || got[0].Title != "Edited" {
		t.Errorf("entries = %+v", got)
	}
	doc, _ := os.ReadFile(filepath.Join(dir, "literature_review.md"))
	if !strings.Contains(string(doc), "Edited") {
		t.Error("document not regenerated after refresh")
	}
}

func TestWatch_RefreshesOnDataFileChange(t *testing.T) {
	svc, dir := testutil.TestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refreshed := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = svc.Watch(ctx, testutil.Logger(), func() {
			select {
			case refreshed <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher a moment to register.
	time.Sleep(100 * time.Millisecond)

	edited := `{"2": [{"title": "External", "authors": "Doe", "year": 2021, "journal": "J", "abstract": "x"}]}`
	if err := os.WriteFile(filepath.Join(dir, "papers_data.json"), []byte(edited), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-refreshed:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not refresh after data file change")
	}

	got := svc.Store().Entries("2")
	if len(got) != 1 || got[0].Title != "External" {
		t.Errorf("entries = %+v", got)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}
