// Package console implements the interactive data-entry surface: the menu
// loop and the field prompts with their retry semantics.
package console

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/zyho/litkeep/internal/author"
	"github.com/zyho/litkeep/internal/models"
)

// EndSentinel terminates multi-line abstract input when typed alone on a
// line (case-insensitive, surrounding whitespace ignored).
const EndSentinel = "END"

// ParagraphBreakToken is the literal token a user types to mark a paragraph
// break inside an abstract. A genuinely blank line does NOT work: all lines
// are joined with spaces and whitespace runs collapsed before the token is
// expanded, so a blank line is indistinguishable from no input. This odd
// contract is intentional and kept as-is.
const ParagraphBreakToken = "__"

var paragraphBreakRe = regexp.MustCompile(`\s*` + ParagraphBreakToken + `\s*`)

// Reader prompts on out and reads line-oriented answers from in. Each method
// loops until it has a valid value; the only errors it returns are read
// failures (EOF when stdin closes).
type Reader struct {
	sc  *bufio.Scanner
	out io.Writer
}

// NewReader creates a Reader over the given streams.
func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{sc: bufio.NewScanner(in), out: out}
}

// line reads the next raw input line.
func (r *Reader) line() (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

// ask prints prompt and returns the next line, trimmed.
func (r *Reader) ask(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	s, err := r.line()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// NonEmpty re-prompts until the trimmed answer is non-empty.
func (r *Reader) NonEmpty(prompt, emptyMsg string) (string, error) {
	for {
		s, err := r.ask(prompt)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
		fmt.Fprintln(r.out, emptyMsg)
	}
}

// Authors re-prompts until the answer contains at least one non-empty name
// after semicolon splitting, so inputs like ";;;" are caught here rather
// than by record validation later.
func (r *Reader) Authors(prompt, emptyMsg string) (string, error) {
	for {
		s, err := r.ask(prompt)
		if err != nil {
			return "", err
		}
		if len(author.SplitList(s)) > 0 {
			return s, nil
		}
		fmt.Fprintln(r.out, emptyMsg)
	}
}

// Year re-prompts until the answer parses as an integer.
func (r *Reader) Year(prompt string) (int, error) {
	for {
		s, err := r.ask(prompt)
		if err != nil {
			return 0, err
		}
		year, convErr := strconv.Atoi(s)
		if convErr == nil {
			return year, nil
		}
		fmt.Fprintln(r.out, "Invalid year. Please enter a numeric value for the year.")
	}
}

// TopicChoice prints the topic enumeration and re-prompts until the answer
// is a known topic id.
func (r *Reader) TopicChoice(topics *models.TopicSet) (string, error) {
	fmt.Fprintln(r.out, "Select a research topic by entering the corresponding number:")
	for _, t := range topics.All() {
		fmt.Fprintf(r.out, "%s. %s\n", t.ID, t.Name)
	}
	for {
		s, err := r.ask("Enter topic number: ")
		if err != nil {
			return "", err
		}
		if topics.Has(s) {
			return s, nil
		}
		fmt.Fprintln(r.out, "Invalid topic selection. Please try again.")
	}
}

// Selection re-prompts until the answer is an integer in [1, max].
func (r *Reader) Selection(prompt string, max int) (int, error) {
	for {
		s, err := r.ask(prompt)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(s)
		if convErr != nil {
			fmt.Fprintln(r.out, "Invalid selection. Please enter a numeric value.")
			continue
		}
		if n < 1 || n > max {
			fmt.Fprintln(r.out, "Selection out of range. Please try again.")
			continue
		}
		return n, nil
	}
}

// Abstract collects multi-line abstract input terminated by the END sentinel
// and re-prompts from scratch when the processed text comes out empty.
func (r *Reader) Abstract() (string, error) {
	for {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, "Enter the abstract below.")
		fmt.Fprintf(r.out, "Type %q on its own line between paragraphs to start a new one.\n", ParagraphBreakToken)
		fmt.Fprintf(r.out, "When finished, type %q on a new line.\n", EndSentinel)

		var lines []string
		for {
			line, err := r.line()
			if err != nil {
				return "", err
			}
			if strings.EqualFold(strings.TrimSpace(line), EndSentinel) {
				break
			}
			lines = append(lines, line)
		}

		abstract := ProcessAbstract(lines)
		if abstract != "" {
			return abstract, nil
		}
		fmt.Fprintln(r.out, "Abstract cannot be empty. Please try again.")
	}
}

// ProcessAbstract turns raw abstract lines into stored abstract text: lines
// are joined with single spaces, whitespace runs collapsed, and every
// occurrence of the paragraph-break token (with surrounding whitespace)
// replaced by a real newline.
func ProcessAbstract(lines []string) string {
	joined := strings.Join(lines, " ")
	collapsed := strings.Join(strings.Fields(joined), " ")
	broken := paragraphBreakRe.ReplaceAllString(collapsed, "\n")
	return strings.Trim(broken, "\n")
}
