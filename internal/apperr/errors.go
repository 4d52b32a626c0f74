package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnknownTopic = errors.New("unknown topic")
	ErrNoIndex      = errors.New("search index not available")
)
