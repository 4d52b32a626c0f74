// Package models defines the domain types for litkeep.
package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/zyho/litkeep/internal/author"
)

// Paper represents one bibliographic entry.
//
// Authors is stored exactly as typed: a single semicolon-separated string.
// Splitting into individual names happens only at search, render, and export
// time via AuthorNames.
type Paper struct {
	Title    string `json:"title"`
	Authors  string `json:"authors"`
	Year     int    `json:"year"`
	Journal  string `json:"journal"`
	Abstract string `json:"abstract"`
}

// AuthorNames returns the semicolon-split, trimmed author names.
func (p Paper) AuthorNames() []string {
	return author.SplitList(p.Authors)
}

// Validate checks the record invariants: title, journal, and abstract
// non-empty after trimming, and at least one non-empty author. Any integer
// is a legal year, including 0.
func (p Paper) Validate() error {
	if err := validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.By(nonBlank)),
		validation.Field(&p.Authors, validation.Required, validation.By(hasAuthor)),
		validation.Field(&p.Journal, validation.Required, validation.By(nonBlank)),
		validation.Field(&p.Abstract, validation.Required, validation.By(nonBlank)),
	); err != nil {
		return err
	}
	return nil
}

func nonBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}

func hasAuthor(value interface{}) error {
	s, _ := value.(string)
	if len(author.SplitList(s)) == 0 {
		return validation.NewError("validation_no_authors", "must contain at least one author name")
	}
	return nil
}
