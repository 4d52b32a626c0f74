// Package litservice coordinates the store, renderer, BibTeX exporter, and
// search index. Every mutation runs the same pipeline: validate, mutate the
// store, save it, regenerate the document and BibTeX file in full, and
// re-sync the index when one is attached.
package litservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zyho/litkeep/internal/apperr"
	"github.com/zyho/litkeep/internal/export"
	"github.com/zyho/litkeep/internal/index"
	"github.com/zyho/litkeep/internal/models"
	"github.com/zyho/litkeep/internal/render"
	"github.com/zyho/litkeep/internal/store"
)

// Service is the single entry point for record operations across the
// console, API, and MCP surfaces.
type Service struct {
	store   *store.Store
	topics  *models.TopicSet
	docPath string
	bibPath string
	idx     *index.DB // nil in plain interactive mode
	logger  *slog.Logger
}

// New creates a Service. idx may be nil; Search then reports
// apperr.ErrNoIndex.
func New(st *store.Store, topics *models.TopicSet, docPath, bibPath string, idx *index.DB, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:   st,
		topics:  topics,
		docPath: docPath,
		bibPath: bibPath,
		idx:     idx,
		logger:  logger,
	}
}

// Topics returns the injected topic enumeration.
func (s *Service) Topics() *models.TopicSet {
	return s.topics
}

// Store exposes read access to the underlying store.
func (s *Service) Store() *store.Store {
	return s.store
}

// AddEntry validates and appends a paper to the chosen topic, then persists
// everything.
func (s *Service) AddEntry(_ context.Context, topicID string, p models.Paper) error {
	if !s.topics.Has(topicID) {
		return fmt.Errorf("topic %q: %w", topicID, apperr.ErrUnknownTopic)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid entry: %w", err)
	}
	s.store.Add(topicID, p)
	if err := s.persist(); err != nil {
		return err
	}
	s.logger.Info("entry added",
		slog.String("topic", topicID),
		slog.String("title", p.Title),
		slog.Int("year", p.Year))
	return nil
}

// ModifyAbstract overwrites the abstract of one existing entry in place and
// persists everything. All other fields are unchanged.
func (s *Service) ModifyAbstract(_ context.Context, topicID string, entryIndex int, abstract string) error {
	if err := s.store.SetAbstract(topicID, entryIndex, abstract); err != nil {
		return err
	}
	if err := s.persist(); err != nil {
		return err
	}
	s.logger.Info("abstract updated",
		slog.String("topic", topicID),
		slog.Int("index", entryIndex))
	return nil
}

// Find scans the whole library for entries matching the query author names
// and year.
func (s *Service) Find(queryNames []string, year int) []store.Match {
	return s.store.FindByAuthorsAndYear(queryNames, year)
}

// Search runs a full-text query against the attached index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	if s.idx == nil {
		return nil, apperr.ErrNoIndex
	}
	return s.idx.Search(query, limit)
}

// Document renders the current library as Markdown without writing it.
func (s *Service) Document() []byte {
	return render.Document(s.topics, s.store.Snapshot())
}

// Rebuild regenerates the document and BibTeX outputs from the current
// library without mutating it.
func (s *Service) Rebuild(_ context.Context) error {
	return s.writeOutputs()
}

// Refresh re-reads the backing file and brings the derived outputs and the
// index back in line. Used when the data file changes externally.
func (s *Service) Refresh(_ context.Context) error {
	if err := s.store.Reload(); err != nil {
		return err
	}
	if err := s.writeOutputs(); err != nil {
		return err
	}
	return s.syncIndex()
}

// persist is the post-mutation pipeline. Any failure here is reported as-is;
// callers treat write failures as fatal.
func (s *Service) persist() error {
	if err := s.store.Save(); err != nil {
		return err
	}
	if err := s.writeOutputs(); err != nil {
		return err
	}
	return s.syncIndex()
}

func (s *Service) writeOutputs() error {
	snap := s.store.Snapshot()
	if err := render.WriteDocument(s.docPath, s.topics, snap); err != nil {
		return err
	}
	if s.bibPath != "" {
		if err := export.WriteLibrary(s.bibPath, s.topics, snap); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) syncIndex() error {
	if s.idx == nil {
		return nil
	}
	return index.Sync(s.idx, s.store, s.logger)
}
