// Package export writes the library to BibTeX, regenerated in full alongside
// the review document.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zyho/litkeep/internal/models"
	"github.com/zyho/litkeep/internal/store"
)

// Library renders every entry as an @article block. Topics are walked in
// ascending numeric id order and entries year-sorted, matching the document,
// so the file is deterministic for a given library.
func Library(topics *models.TopicSet, data map[string][]models.Paper) []byte {
	keys := make(map[string]int)
	var b strings.Builder
	for _, topic := range topics.All() {
		for _, p := range sortedByYear(data[topic.ID]) {
			b.WriteString(entry(p, citekey(p, keys)))
			b.WriteString("\n")
		}
	}
	return []byte(b.String())
}

// WriteLibrary renders the BibTeX file and atomically overwrites path.
func WriteLibrary(path string, topics *models.TopicSet, data map[string][]models.Paper) error {
	if err := store.WriteFileAtomic(path, Library(topics, data)); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

func sortedByYear(entries []models.Paper) []models.Paper {
	out := make([]models.Paper, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

func entry(p models.Paper, key string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@article{%s,\n", key)
	fmt.Fprintf(&b, "  author = {%s},\n", formatAuthors(p.AuthorNames()))
	fmt.Fprintf(&b, "  title = {%s},\n", escapeLatex(p.Title))
	fmt.Fprintf(&b, "  journal = {%s},\n", escapeLatex(p.Journal))
	fmt.Fprintf(&b, "  year = {%d},\n", p.Year)
	if p.Abstract != "" {
		fmt.Fprintf(&b, "  abstract = {%s},\n", escapeLatex(strings.ReplaceAll(p.Abstract, "\n", " ")))
	}
	b.WriteString("}\n")
	return b.String()
}

// citekey derives "<first-author-last-token><year>", lower-cased and reduced
// to letters and digits, with a/b/c... suffixes on collision.
func citekey(p models.Paper, seen map[string]int) string {
	base := "anon"
	if names := p.AuthorNames(); len(names) > 0 {
		first := names[0]
		// "Last, First" keeps the part before the comma; otherwise the
		// last whitespace-separated token is taken as the surname.
		if i := strings.Index(first, ","); i > 0 {
			base = first[:i]
		} else if fields := strings.Fields(first); len(fields) > 0 {
			base = fields[len(fields)-1]
		}
	}
	base = sanitizeKey(base) + fmt.Sprintf("%d", p.Year)
	n := seen[base]
	seen[base] = n + 1
	if n == 0 {
		return base
	}
	return base + collisionSuffix(n)
}

// collisionSuffix maps 1, 2, ... to a, b, ..., z, aa, ab, ... so keys stay
// unique and alphabetic no matter how many entries share a base.
func collisionSuffix(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('a' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

func sanitizeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "anon"
	}
	return b.String()
}

// formatAuthors joins names BibTeX-style with " and ".
func formatAuthors(names []string) string {
	return strings.Join(names, " and ")
}

// escapeLatex escapes special LaTeX characters. Replacer makes a single
// pass, so the backslashes it inserts are never themselves re-escaped.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\textbackslash{}`,
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
