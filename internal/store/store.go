// Package store persists the paper library: a mapping from topic id to an
// ordered list of paper entries, backed by a single JSON file.
//
// The whole mapping is loaded into memory at startup and rewritten in full
// after every mutation. The file is the single source of truth; renderer,
// exporter, and index only ever read snapshots of it.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/zyho/litkeep/internal/apperr"
	"github.com/zyho/litkeep/internal/author"
	"github.com/zyho/litkeep/internal/models"
)

// Store holds the in-memory library and its backing file path.
type Store struct {
	path string

	mu   sync.RWMutex
	data map[string][]models.Paper
}

// Match identifies one entry found by a cross-topic search.
type Match struct {
	TopicID string
	Index   int
	Paper   models.Paper
}

// Open loads the library from path. A missing file yields an empty library;
// a present but unparseable file is an error the caller should treat as
// fatal.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: make(map[string][]models.Paper)}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the backing file, replacing the in-memory state.
func (s *Store) Reload() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.mu.Lock()
			s.data = make(map[string][]models.Paper)
			s.mu.Unlock()
			return nil
		}
		return fmt.Errorf("store: read %s: %w", s.path, err)
	}
	data := make(map[string][]models.Paper)
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("store: parse %s: %w", s.path, err)
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Save serializes the full library and atomically overwrites the backing
// file. Serialization is deterministic (keys sorted), so saving a freshly
// loaded library is a no-op on disk content.
func (s *Store) Save() error {
	s.mu.RLock()
	raw, err := json.MarshalIndent(s.data, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("store: marshal: %w", err)
	}
	raw = append(raw, '\n')
	if err := WriteFileAtomic(s.path, raw); err != nil {
		return fmt.Errorf("store: save %s: %w", s.path, err)
	}
	return nil
}

// Add appends a paper to the topic's sequence, creating it if absent.
func (s *Store) Add(topicID string, p models.Paper) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[topicID] = append(s.data[topicID], p)
}

// Entries returns a copy of the topic's papers in insertion order.
func (s *Store) Entries(topicID string) []models.Paper {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.data[topicID]
	out := make([]models.Paper, len(entries))
	copy(out, entries)
	return out
}

// Snapshot returns a deep copy of the full mapping.
func (s *Store) Snapshot() map[string][]models.Paper {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]models.Paper, len(s.data))
	for id, entries := range s.data {
		cp := make([]models.Paper, len(entries))
		copy(cp, entries)
		out[id] = cp
	}
	return out
}

// TopicIDs returns the ids present in the data, in ascending numeric order.
// Ids that are not numeric (possible after external edits) sort after the
// numeric ones, lexically.
func (s *Store) TopicIDs() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	SortTopicIDs(ids)
	return ids
}

// Count returns the total number of entries across all topics.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, entries := range s.data {
		n += len(entries)
	}
	return n
}

// FindByAuthorsAndYear scans every topic's every entry and returns those
// whose year equals year and whose author set intersects queryNames
// (case-insensitive, trimmed). Results are in discovery order: topics in
// ascending numeric id order, entries in insertion order.
func (s *Store) FindByAuthorsAndYear(queryNames []string, year int) []Match {
	ids := s.TopicIDs()
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matches []Match
	for _, id := range ids {
		for i, p := range s.data[id] {
			if p.Year != year {
				continue
			}
			if author.MatchesAny(p.Authors, queryNames) {
				matches = append(matches, Match{TopicID: id, Index: i, Paper: p})
			}
		}
	}
	return matches
}

// SetAbstract overwrites the abstract of the entry at (topicID, index),
// leaving every other field unchanged.
func (s *Store) SetAbstract(topicID string, index int, abstract string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, ok := s.data[topicID]
	if !ok || index < 0 || index >= len(entries) {
		return fmt.Errorf("store: entry %s/%d: %w", topicID, index, apperr.ErrNotFound)
	}
	entries[index].Abstract = abstract
	return nil
}

// SortTopicIDs orders ids ascending numerically, with non-numeric ids after
// the numeric ones in lexical order.
func SortTopicIDs(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, aerr := strconv.Atoi(ids[i])
		b, berr := strconv.Atoi(ids[j])
		switch {
		case aerr == nil && berr == nil:
			return a < b
		case aerr == nil:
			return true
		case berr == nil:
			return false
		default:
			return ids[i] < ids[j]
		}
	})
}

// WriteFileAtomic writes data via a temp file in the target directory,
// fsyncs it, and renames it over path.
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".litkeep-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	success = true
	return nil
}
