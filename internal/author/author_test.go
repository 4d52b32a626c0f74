package author

import (
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"Smith, J.; Doe, A.", []string{"Smith, J.", "Doe, A."}},
		{"  Smith ;; Doe ", []string{"Smith", "Doe"}},
		{"Single", []string{"Single"}},
		{" ; ; ", nil},
		{"", nil},
	}
	for _, c := range cases {
		got := SplitList(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("SplitList(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNormalizeList(t *testing.T) {
	got := NormalizeList("Smith, J.; DOE")
	want := []string{"smith, j.", "doe"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeList = %v, want %v", got, want)
	}
}

func TestMatchesAny(t *testing.T) {
	cases := []struct {
		name    string
		entry   string
		queries []string
		want    bool
	}{
		{"exact", "Smith; Jones", []string{"smith"}, true},
		{"case and whitespace", "  SMITH ; Jones", []string{" Smith "}, true},
		{"any query matches", "Jones", []string{"smith", "jones"}, true},
		{"no overlap", "Jones; Lee", []string{"smith"}, false},
		{"substring does not match", "Smithson", []string{"smith"}, false},
		{"empty entry", "", []string{"smith"}, false},
		{"empty query names skipped", "Smith", []string{"", " "}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := MatchesAny(c.entry, c.queries); got != c.want {
				t.Errorf("MatchesAny(%q, %v) = %v, want %v", c.entry, c.queries, got, c.want)
			}
		})
	}
}
