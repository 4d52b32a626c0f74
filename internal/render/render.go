// Package render regenerates the literature review document from the full
// library. Rendering is always a full overwrite, never an incremental patch.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zyho/litkeep/internal/models"
	"github.com/zyho/litkeep/internal/store"
)

// Document renders the whole library as Markdown. Topics appear in ascending
// numeric id order; topics with no entries produce no heading at all. Within
// a topic, entries are sorted by ascending year (stable, so equal years keep
// insertion order) and numbered from 1 after sorting. Each abstract is
// rendered as a blockquote-indented block under its entry line.
func Document(topics *models.TopicSet, data map[string][]models.Paper) []byte {
	var b strings.Builder
	for _, topic := range topics.All() {
		entries := data[topic.ID]
		if len(entries) == 0 {
			continue
		}
		sorted := make([]models.Paper, len(entries))
		copy(sorted, entries)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Year < sorted[j].Year
		})

		fmt.Fprintf(&b, "## Topic %s: %s\n\n", topic.ID, topic.Name)
		for i, p := range sorted {
			fmt.Fprintf(&b, "%d. %s (%d) %s: %s\n\n", i+1, p.Authors, p.Year, p.Journal, p.Title)
			b.WriteString(indentAbstract(p.Abstract))
			b.WriteString("\n\n")
		}
		// Blank separator line after each topic.
		b.WriteString("\n")
	}
	return []byte(b.String())
}

// WriteDocument renders the library and atomically overwrites path.
func WriteDocument(path string, topics *models.TopicSet, data map[string][]models.Paper) error {
	if err := store.WriteFileAtomic(path, Document(topics, data)); err != nil {
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	return nil
}

// indentAbstract turns the abstract into a blockquote. Embedded newlines are
// paragraph breaks and become quoted blank lines so the block stays joined.
func indentAbstract(abstract string) string {
	paras := strings.Split(abstract, "\n")
	for i, p := range paras {
		paras[i] = "> " + p
	}
	return strings.Join(paras, "\n>\n")
}
