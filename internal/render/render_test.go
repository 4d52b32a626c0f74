package render

import (
	"strings"
	"testing"

	"github.com/zyho/litkeep/internal/models"
)

func topicSet(t *testing.T, topics ...models.Topic) *models.TopicSet {
	t.Helper()
	ts, err := models.NewTopicSet(topics)
	if err != nil {
		t.Fatalf("NewTopicSet: %v", err)
	}
	return ts
}

func TestDocument_SkipsEmptyTopics(t *testing.T) {
	ts := topicSet(t, models.Topic{ID: "1", Name: "A"}, models.Topic{ID: "2", Name: "B"})
	data := map[string][]models.Paper{
		"2": {{Title: "T", Authors: "Smith", Year: 2020, Journal: "J", Abstract: "abs"}},
	}
	out := string(Document(ts, data))
	if strings.Contains(out, "Topic 1") {
		t.Error("empty topic 1 produced a heading")
	}
	if got := strings.Count(out, "## Topic"); got != 1 {
		t.Errorf("heading count = %d, want 1", got)
	}
	if !strings.Contains(out, "## Topic 2: B") {
		t.Errorf("missing topic 2 heading in:\n%s", out)
	}
}

func TestDocument_EntryLineFormat(t *testing.T) {
	ts := topicSet(t, models.Topic{ID: "1", Name: "A"})
	data := map[string][]models.Paper{
		"1": {{Title: "The Title", Authors: "Smith, J.; Doe, A.", Year: 2019, Journal: "J Fin", Abstract: "abs"}},
	}
	out := string(Document(ts, data))
	want := "1. Smith, J.; Doe, A. (2019) J Fin: The Title"
	if !strings.Contains(out, want) {
		t.Errorf("missing entry line %q in:\n%s", want, out)
	}
	if !strings.Contains(out, "> abs") {
		t.Error("abstract not indented as blockquote")
	}
}

func TestDocument_YearSortStable(t *testing.T) {
	ts := topicSet(t, models.Topic{ID: "1", Name: "A"})
	data := map[string][]models.Paper{
		"1": {
			{Title: "Late", Authors: "A", Year: 2021, Journal: "J", Abstract: "x"},
			{Title: "EarlyFirst", Authors: "B", Year: 2019, Journal: "J", Abstract: "x"},
			{Title: "EarlySecond", Authors: "C", Year: 2019, Journal: "J", Abstract: "x"},
		},
	}
	out := string(Document(ts, data))

	first := strings.Index(out, "EarlyFirst")
	second := strings.Index(out, "EarlySecond")
	late := strings.Index(out, "Late")
	if !(first < second && second < late) {
		t.Errorf("order wrong: first=%d second=%d late=%d\n%s", first, second, late, out)
	}
	// Numbering restarts from 1 after sorting.
	if !strings.Contains(out, "1. B (2019)") || !strings.Contains(out, "3. A (2021)") {
		t.Errorf("numbering wrong:\n%s", out)
	}
}

func TestDocument_MultiParagraphAbstract(t *testing.T) {
	ts := topicSet(t, models.Topic{ID: "1", Name: "A"})
	data := map[string][]models.Paper{
		"1": {{Title: "T", Authors: "A", Year: 2020, Journal: "J", Abstract: "Para one.\nPara two."}},
	}
	out := string(Document(ts, data))
	if !strings.Contains(out, "> Para one.\n>\n> Para two.") {
		t.Errorf("paragraph break not preserved:\n%s", out)
	}
}

func TestDocument_TopicsInNumericOrder(t *testing.T) {
	ts := topicSet(t,
		models.Topic{ID: "10", Name: "Ten"},
		models.Topic{ID: "2", Name: "Two"},
	)
	data := map[string][]models.Paper{
		"10": {{Title: "T10", Authors: "A", Year: 2020, Journal: "J", Abstract: "x"}},
		"2":  {{Title: "T2", Authors: "A", Year: 2020, Journal: "J", Abstract: "x"}},
	}
	out := string(Document(ts, data))
	if strings.Index(out, "Topic 2:") > strings.Index(out, "Topic 10:") {
		t.Errorf("topic order not numeric:\n%s", out)
	}
}
