package models

import (
	"reflect"
	"testing"
)

func validPaper() Paper {
	return Paper{
		Title:    "Market Discipline in Transition",
		Authors:  "Smith, J.; Doe, A.",
		Year:     2020,
		Journal:  "Journal of Banking",
		Abstract: "We study market discipline.",
	}
}

func TestPaperValidate_OK(t *testing.T) {
	if err := validPaper().Validate(); err != nil {
		t.Fatalf("valid paper rejected: %v", err)
	}
}

func TestPaperValidate_YearZeroAllowed(t *testing.T) {
	p := validPaper()
	p.Year = 0
	if err := p.Validate(); err != nil {
		t.Fatalf("year 0 rejected: %v", err)
	}
}

func TestPaperValidate_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Paper)
	}{
		{"empty title", func(p *Paper) { p.Title = "" }},
		{"blank title", func(p *Paper) { p.Title = "   " }},
		{"empty authors", func(p *Paper) { p.Authors = "" }},
		{"semicolons only", func(p *Paper) { p.Authors = " ; ; " }},
		{"blank journal", func(p *Paper) { p.Journal = " " }},
		{"blank abstract", func(p *Paper) { p.Abstract = "\t" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := validPaper()
			c.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestAuthorNames(t *testing.T) {
	p := Paper{Authors: " Smith, J. ;Doe, A.; "}
	got := p.AuthorNames()
	want := []string{"Smith, J.", "Doe, A."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AuthorNames = %v, want %v", got, want)
	}
}

func TestNewTopicSet_SortsNumerically(t *testing.T) {
	ts, err := NewTopicSet([]Topic{
		{ID: "10", Name: "Ten"},
		{ID: "2", Name: "Two"},
		{ID: "1", Name: "One"},
	})
	if err != nil {
		t.Fatalf("NewTopicSet: %v", err)
	}
	all := ts.All()
	if all[0].ID != "1" || all[1].ID != "2" || all[2].ID != "10" {
		t.Errorf("order = %v, want 1,2,10", all)
	}
}

func TestNewTopicSet_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		topics []Topic
	}{
		{"empty", nil},
		{"non-numeric id", []Topic{{ID: "a", Name: "A"}}},
		{"duplicate id", []Topic{{ID: "1", Name: "A"}, {ID: "1", Name: "B"}}},
		{"empty name", []Topic{{ID: "1", Name: ""}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := NewTopicSet(c.topics); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestTopicSetLookup(t *testing.T) {
	ts, _ := NewTopicSet(DefaultTopics())
	if !ts.Has("2") {
		t.Error("expected topic 2")
	}
	if ts.Has("99") {
		t.Error("did not expect topic 99")
	}
	name, ok := ts.Name("2")
	if !ok || name != "Russian Banking" {
		t.Errorf("Name(2) = %q, %v", name, ok)
	}
}
