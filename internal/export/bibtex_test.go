package export

import (
	"strings"
	"testing"

	"github.com/zyho/litkeep/internal/models"
)

func testTopics(t *testing.T) *models.TopicSet {
	t.Helper()
	ts, err := models.NewTopicSet(models.DefaultTopics())
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestLibrary_BasicEntry(t *testing.T) {
	data := map[string][]models.Paper{
		"1": {{Title: "A Study", Authors: "Smith, J.; Doe, A.", Year: 2020, Journal: "J Fin", Abstract: "Text."}},
	}
	out := string(Library(testTopics(t), data))

	for _, want := range []string{
		"@article{smith2020,",
		"author = {Smith, J. and Doe, A.},",
		"title = {A Study},",
		"journal = {J Fin},",
		"year = {2020},",
		"abstract = {Text.},",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestLibrary_CitekeyCollisions(t *testing.T) {
	data := map[string][]models.Paper{
		"1": {
			{Title: "First", Authors: "Smith", Year: 2020, Journal: "J", Abstract: "x"},
			{Title: "Second", Authors: "Smith, A.", Year: 2020, Journal: "J", Abstract: "x"},
			{Title: "Third", Authors: "John Smith", Year: 2020, Journal: "J", Abstract: "x"},
		},
	}
	out := string(Library(testTopics(t), data))
	for _, key := range []string{"@article{smith2020,", "@article{smith2020a,", "@article{smith2020b,"} {
		if !strings.Contains(out, key) {
			t.Errorf("missing key %q in:\n%s", key, out)
		}
	}
}

func TestLibrary_EscapesLatex(t *testing.T) {
	data := map[string][]models.Paper{
		"1": {{Title: "Profits & Losses: 100% of R_D", Authors: "Smith", Year: 2019, Journal: "J", Abstract: "x"}},
	}
	out := string(Library(testTopics(t), data))
	if !strings.Contains(out, `Profits \& Losses: 100\% of R\_D`) {
		t.Errorf("latex escaping wrong:\n%s", out)
	}
}

func TestLibrary_EscapesBackslash(t *testing.T) {
	data := map[string][]models.Paper{
		"1": {{Title: `Pricing \alpha Spreads`, Authors: "Smith", Year: 2019, Journal: "J", Abstract: "x"}},
	}
	out := string(Library(testTopics(t), data))
	if !strings.Contains(out, `Pricing \textbackslash{}alpha Spreads`) {
		t.Errorf("backslash escaping wrong:\n%s", out)
	}
}

func TestCollisionSuffix_WidensPastZ(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "a"},
		{2, "b"},
		{26, "z"},
		{27, "aa"},
		{28, "ab"},
		{52, "az"},
		{53, "ba"},
	}
	for _, c := range cases {
		if got := collisionSuffix(c.n); got != c.want {
			t.Errorf("collisionSuffix(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestLibrary_NewlineInAbstractFlattened(t *testing.T) {
	data := map[string][]models.Paper{
		"1": {{Title: "T", Authors: "Smith", Year: 2019, Journal: "J", Abstract: "one\ntwo"}},
	}
	out := string(Library(testTopics(t), data))
	if !strings.Contains(out, "abstract = {one two},") {
		t.Errorf("abstract newline not flattened:\n%s", out)
	}
}

func TestCitekey_SurnameForms(t *testing.T) {
	seen := map[string]int{}
	cases := []struct {
		authors string
		want    string
	}{
		{"Smith, J.", "smith2020"},
		{"Ann Lee", "lee2020"},
		{"", "anon2020"},
	}
	for _, c := range cases {
		got := citekey(models.Paper{Authors: c.authors, Year: 2020}, seen)
		if got != c.want {
			t.Errorf("citekey(%q) = %q, want %q", c.authors, got, c.want)
		}
	}
}
