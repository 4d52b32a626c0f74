package api

import (
	"github.com/zyho/litkeep/internal/index"
)

// CreateEntryRequest is the request body for recording a paper.
type CreateEntryRequest struct {
	Topic    string `json:"topic" example:"1" validate:"required"`
	Title    string `json:"title" example:"Growth in Transition" validate:"required"`
	Authors  string `json:"authors" example:"Smith, J.; Doe, A." validate:"required"`
	Year     int    `json:"year" example:"2019" validate:"required"`
	Journal  string `json:"journal" example:"Journal of Comparative Economics" validate:"required"`
	Abstract string `json:"abstract" example:"We study..."`
}

// UpdateAbstractRequest is the request body for replacing an entry's abstract.
type UpdateAbstractRequest struct {
	Abstract string `json:"abstract" example:"Revised abstract." validate:"required"`
}

// TopicInfo describes one topic and how many entries it holds.
type TopicInfo struct {
	ID      string `json:"id" example:"1" validate:"required"`
	Name    string `json:"name" example:"Transition Economies" validate:"required"`
	Entries int    `json:"entries" example:"3" validate:"required"`
}

// TopicListResponse wraps the topic enumeration.
type TopicListResponse struct {
	Topics []TopicInfo `json:"topics" validate:"required"`
}

// EntryItem is one recorded paper with its position within its topic.
type EntryItem struct {
	Topic    string `json:"topic" example:"1" validate:"required"`
	Position int    `json:"position" example:"1" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Authors  string `json:"authors" validate:"required"`
	Year     int    `json:"year" validate:"required"`
	Journal  string `json:"journal" validate:"required"`
	Abstract string `json:"abstract,omitempty"`
}

// EntryListResponse wraps entry listings.
type EntryListResponse struct {
	Entries []EntryItem `json:"entries" validate:"required"`
	Total   int         `json:"total" example:"42" validate:"required"`
}

// SearchResult is a single search hit (aliased from the index layer).
type SearchResult = index.SearchResult

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}
