package models

import (
	"fmt"
	"sort"
	"strconv"
)

// Topic is one research-subject category used to group paper entries.
type Topic struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// TopicSet is an immutable ordered topic enumeration, sorted by ascending
// numeric id. It is constructed once at startup and injected into the
// components that need it; topics are never persisted with the data.
type TopicSet struct {
	topics []Topic
	names  map[string]string
}

// DefaultTopics returns the built-in topic enumeration used when the config
// file does not override it.
func DefaultTopics() []Topic {
	return []Topic{
		{ID: "1", Name: "Transition Economies"},
		{ID: "2", Name: "Russian Banking"},
		{ID: "3", Name: "Disclosure"},
		{ID: "4", Name: "Market Discipline"},
		{ID: "5", Name: "Banking Regulation"},
	}
}

// NewTopicSet builds a TopicSet from the given topics. Ids must be decimal
// integers encoded as strings and unique; names must be non-empty.
func NewTopicSet(topics []Topic) (*TopicSet, error) {
	if len(topics) == 0 {
		return nil, fmt.Errorf("topics: at least one topic is required")
	}
	names := make(map[string]string, len(topics))
	ordered := make([]Topic, len(topics))
	copy(ordered, topics)
	for _, t := range ordered {
		if _, err := strconv.Atoi(t.ID); err != nil {
			return nil, fmt.Errorf("topics: id %q is not numeric", t.ID)
		}
		if t.Name == "" {
			return nil, fmt.Errorf("topics: topic %s has an empty name", t.ID)
		}
		if _, dup := names[t.ID]; dup {
			return nil, fmt.Errorf("topics: duplicate id %q", t.ID)
		}
		names[t.ID] = t.Name
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		a, _ := strconv.Atoi(ordered[i].ID)
		b, _ := strconv.Atoi(ordered[j].ID)
		return a < b
	})
	return &TopicSet{topics: ordered, names: names}, nil
}

// All returns the topics in ascending numeric id order.
func (ts *TopicSet) All() []Topic {
	out := make([]Topic, len(ts.topics))
	copy(out, ts.topics)
	return out
}

// Has reports whether id belongs to the enumeration.
func (ts *TopicSet) Has(id string) bool {
	_, ok := ts.names[id]
	return ok
}

// Name returns the display name for id.
func (ts *TopicSet) Name(id string) (string, bool) {
	name, ok := ts.names[id]
	return name, ok
}

// Len returns the number of topics.
func (ts *TopicSet) Len() int {
	return len(ts.topics)
}
