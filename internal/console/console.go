package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/zyho/litkeep/internal/apperr"
	"github.com/zyho/litkeep/internal/author"
	"github.com/zyho/litkeep/internal/litservice"
	"github.com/zyho/litkeep/internal/models"
)

// Console runs the interactive menu loop against a service.
type Console struct {
	r   *Reader
	out io.Writer
	svc *litservice.Service
}

// New creates a Console reading from in and writing prompts to out.
func New(in io.Reader, out io.Writer, svc *litservice.Service) *Console {
	return &Console{r: NewReader(in, out), out: out, svc: svc}
}

// Run executes the menu loop until the user exits or input ends. Validation
// problems are handled in place; only I/O failures (including persistence
// failures, which are fatal) are returned.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "=== Literature Review Manager ===")

	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "Select an option:")
		fmt.Fprintln(c.out, "1. Add new paper entry")
		fmt.Fprintln(c.out, "2. Modify paper abstract")
		fmt.Fprintln(c.out, "3. Exit")

		choice, err := c.r.ask("Enter your selection (1/2/3): ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = c.addEntry(ctx)
		case "2":
			err = c.modifyAbstract(ctx)
		case "3":
			fmt.Fprintln(c.out, "Exiting. Your document has been updated.")
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid choice. Please try again.")
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// addEntry collects all fields for a new paper and hands it to the service.
// Field collectors re-prompt on their own, so fields gathered earlier are
// never lost to a later field's validation failure.
func (c *Console) addEntry(ctx context.Context) error {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Please provide the details for the new paper entry:")

	topicID, err := c.r.TopicChoice(c.svc.Topics())
	if err != nil {
		return err
	}
	title, err := c.r.NonEmpty(
		"Enter the paper's title: ",
		"Title cannot be empty. Please enter a valid title.")
	if err != nil {
		return err
	}
	authors, err := c.r.Authors(
		"Enter the author names (separated by semicolons ';'): ",
		"Authors cannot be empty. Please enter valid author names.")
	if err != nil {
		return err
	}
	year, err := c.r.Year("Enter the publication year: ")
	if err != nil {
		return err
	}
	journal, err := c.r.NonEmpty(
		"Enter the journal name: ",
		"Journal name cannot be empty. Please try again.")
	if err != nil {
		return err
	}
	abstract, err := c.r.Abstract()
	if err != nil {
		return err
	}

	p := models.Paper{
		Title:    title,
		Authors:  authors,
		Year:     year,
		Journal:  journal,
		Abstract: abstract,
	}
	if err := c.svc.AddEntry(ctx, topicID, p); err != nil {
		// The prompts enforce every field invariant up front, so a
		// validation error here means the checks drifted apart; report it
		// and return to the menu rather than abandoning the session.
		var verrs validation.Errors
		if errors.As(err, &verrs) || errors.Is(err, apperr.ErrUnknownTopic) {
			fmt.Fprintf(c.out, "Could not add the entry: %v\n", err)
			return nil
		}
		return fmt.Errorf("add entry: %w", err)
	}
	fmt.Fprintln(c.out, "Entry added successfully and document updated!")
	return nil
}

// modifyAbstract searches by author names and year, disambiguates when
// needed, and replaces the chosen entry's abstract.
func (c *Console) modifyAbstract(ctx context.Context) error {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "=== Modify Paper Abstract ===")

	rawAuthors, err := c.r.NonEmpty(
		"Enter the author name(s) to search for (separated by semicolons): ",
		"Author(s) input cannot be empty.")
	if err != nil {
		return err
	}
	queryNames := author.NormalizeList(rawAuthors)
	year, err := c.r.Year("Enter the publication year: ")
	if err != nil {
		return err
	}

	matches := c.svc.Find(queryNames, year)
	if len(matches) == 0 {
		fmt.Fprintln(c.out, "No matching paper found for the given author(s) and year.")
		return nil
	}

	chosen := matches[0]
	if len(matches) > 1 {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "Multiple matching papers found:")
		for i, m := range matches {
			name, ok := c.svc.Topics().Name(m.TopicID)
			if !ok {
				name = "Unknown Topic"
			}
			fmt.Fprintf(c.out, "%d. %s (Topic %s: %s)\n", i+1, m.Paper.Title, m.TopicID, name)
		}
		sel, selErr := c.r.Selection("Select the paper by entering the corresponding number: ", len(matches))
		if selErr != nil {
			return selErr
		}
		chosen = matches[sel-1]
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Current abstract:")
	fmt.Fprintln(c.out, chosen.Paper.Abstract)

	abstract, err := c.r.Abstract()
	if err != nil {
		return err
	}
	if err := c.svc.ModifyAbstract(ctx, chosen.TopicID, chosen.Index, abstract); err != nil {
		return fmt.Errorf("modify abstract: %w", err)
	}
	fmt.Fprintln(c.out, "Abstract updated successfully and document updated!")
	return nil
}
