package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/zyho/litkeep/internal/apperr"
	"github.com/zyho/litkeep/internal/litservice"
	"github.com/zyho/litkeep/internal/models"
)

// Handler holds API route handlers.
type Handler struct {
	svc *litservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *litservice.Service) *Handler {
	return &Handler{svc: svc}
}

// ListTopics handles GET /api/topics.
//
//	@Summary		List the topic enumeration with entry counts
//	@Tags			topics
//	@Produce		json
//	@Success		200	{object}	TopicListResponse
//	@Security		BearerAuth
//	@Router			/topics [get]
func (h *Handler) ListTopics(w http.ResponseWriter, _ *http.Request) {
	topics := h.svc.Topics().All()
	out := make([]TopicInfo, 0, len(topics))
	for _, t := range topics {
		out = append(out, TopicInfo{
			ID:      t.ID,
			Name:    t.Name,
			Entries: len(h.svc.Store().Entries(t.ID)),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"topics": out,
	})
}

// ListEntries handles GET /api/entries.
//
//	@Summary		List recorded papers with optional topic and year filters
//	@Tags			entries
//	@Produce		json
//	@Param			topic	query		string	false	"Filter by topic id"
//	@Param			year	query		int		false	"Filter by publication year"
//	@Success		200		{object}	EntryListResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/entries [get]
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	topicFilter := q.Get("topic")
	year := 0
	if raw := q.Get("year"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("year must be an integer"))
			return
		}
		year = n
	}

	topicIDs := h.svc.Store().TopicIDs()
	entries := make([]EntryItem, 0)
	for _, id := range topicIDs {
		if topicFilter != "" && id != topicFilter {
			continue
		}
		for i, p := range h.svc.Store().Entries(id) {
			if year != 0 && p.Year != year {
				continue
			}
			entries = append(entries, EntryItem{
				Topic:    id,
				Position: i + 1,
				Title:    p.Title,
				Authors:  p.Authors,
				Year:     p.Year,
				Journal:  p.Journal,
				Abstract: p.Abstract,
			})
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"total":   len(entries),
	})
}

// CreateEntry handles POST /api/entries.
//
//	@Summary		Record a new paper under a topic
//	@Tags			entries
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateEntryRequest	true	"Paper to record"
//	@Success		201		{object}	EntryItem
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/entries [post]
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	p := models.Paper{
		Title:    req.Title,
		Authors:  req.Authors,
		Year:     req.Year,
		Journal:  req.Journal,
		Abstract: req.Abstract,
	}
	if err := h.svc.AddEntry(r.Context(), req.Topic, p); err != nil {
		var verrs validation.Errors
		switch {
		case errors.Is(err, apperr.ErrUnknownTopic):
			writeJSON(w, http.StatusBadRequest, errorBody("unknown topic"))
		case errors.As(err, &verrs):
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		default:
			slog.Error("create entry failed", slog.String("topic", req.Topic), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, EntryItem{
		Topic:    req.Topic,
		Position: len(h.svc.Store().Entries(req.Topic)),
		Title:    p.Title,
		Authors:  p.Authors,
		Year:     p.Year,
		Journal:  p.Journal,
		Abstract: p.Abstract,
	})
}

// UpdateAbstract handles PUT /api/topics/{id}/entries/{n}/abstract.
//
//	@Summary		Replace the abstract of an entry by topic and position
//	@Tags			entries
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Topic id"
//	@Param			n		path		int						true	"Entry position (1-based)"
//	@Param			body	body		UpdateAbstractRequest	true	"New abstract"
//	@Success		200		{object}	EntryItem
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/topics/{id}/entries/{n}/abstract [put]
func (h *Handler) UpdateAbstract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	topicID := chi.URLParam(r, "id")
	pos, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || pos < 1 {
		writeJSON(w, http.StatusBadRequest, errorBody("entry position must be a positive integer"))
		return
	}

	var req UpdateAbstractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Abstract == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("abstract is required"))
		return
	}

	if err := h.svc.ModifyAbstract(r.Context(), topicID, pos-1, req.Abstract); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("update abstract failed", slog.String("topic", topicID), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}

	p := h.svc.Store().Entries(topicID)[pos-1]
	writeJSON(w, http.StatusOK, EntryItem{
		Topic:    topicID,
		Position: pos,
		Title:    p.Title,
		Authors:  p.Authors,
		Year:     p.Year,
		Journal:  p.Journal,
		Abstract: p.Abstract,
	})
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across recorded papers
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		if errors.Is(err, apperr.ErrNoIndex) {
			writeJSON(w, http.StatusServiceUnavailable, errorBody("search index unavailable"))
		} else {
			slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
	})
}

// Document handles GET /api/document.
//
//	@Summary		Get the generated literature review document
//	@Tags			document
//	@Produce		text/markdown
//	@Success		200	{string}	string
//	@Security		BearerAuth
//	@Router			/document [get]
func (h *Handler) Document(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.svc.Document()); err != nil {
		slog.Error("document write failed", slog.String("error", err.Error()))
	}
}
