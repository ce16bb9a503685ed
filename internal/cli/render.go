package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"

	"github.com/mesh-intelligence/shelf/internal/catalog"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Renderer prints operation results as text tables or, in JSON mode, as
// indented JSON documents.
type Renderer struct {
	out      io.Writer
	jsonMode bool
}

// NewRenderer returns a Renderer writing to out.
func NewRenderer(out io.Writer, jsonMode bool) *Renderer {
	return &Renderer{out: out, jsonMode: jsonMode}
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(r.out, string(data))
	return err
}

// Error prints a failed operation as a single line.
func (r *Renderer) Error(err error) {
	fmt.Fprintf(r.out, "Error: %s\n", err)
}

// Authors prints the author listing.
func (r *Renderer) Authors(list []types.AuthorSummary) error {
	if r.jsonMode {
		return r.JSON(list)
	}
	if len(list) == 0 {
		fmt.Fprintln(r.out, "No authors found.")
		return nil
	}
	r.table([]string{"ID", "NAME", "NATIONALITY", "BORN", "BOOKS"}, func(w io.Writer) {
		for _, s := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n",
				s.Author.ID, s.Author.FullName(), s.Author.Nationality,
				s.Author.BirthDate.Display(), s.BookCount)
		}
	})
	fmt.Fprintf(r.out, "Total: %d author(s)\n", len(list))
	return nil
}

// Book prints a book with its author and copies.
func (r *Renderer) Book(d *types.BookDetails) error {
	if r.jsonMode {
		return r.JSON(d)
	}
	b := d.Book
	fmt.Fprintf(r.out, "Book %d: %s\n", b.ID, b.Title)
	fmt.Fprintf(r.out, "  ISBN:      %s\n", b.ISBN)
	fmt.Fprintf(r.out, "  Published: %s\n", b.PublishedOn.Display())
	fmt.Fprintf(r.out, "  Pages:     %d\n", b.Pages)
	fmt.Fprintf(r.out, "  Author:    %s (id %d)\n", d.Author.FullName(), d.Author.ID)
	if len(b.Copies) == 0 {
		fmt.Fprintln(r.out, "  No copies.")
		return nil
	}
	fmt.Fprintf(r.out, "  Copies (%d):\n", len(b.Copies))
	r.table([]string{"  CODE", "STATUS", "LOCATION"}, func(w io.Writer) {
		for _, c := range b.Copies {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", c.Code, c.Status, c.Location)
		}
	})
	return nil
}

// Copies prints the copies found in status.
func (r *Renderer) Copies(status string, list []types.CopyListing) error {
	if r.jsonMode {
		return r.JSON(list)
	}
	if len(list) == 0 {
		fmt.Fprintf(r.out, "No copies in status %s.\n", strings.ToUpper(strings.TrimSpace(status)))
		return nil
	}
	r.table([]string{"CODE", "STATUS", "LOCATION", "BOOK"}, func(w io.Writer) {
		for _, l := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.Copy.Code, l.Copy.Status, l.Copy.Location, l.BookTitle)
		}
	})
	fmt.Fprintf(r.out, "Total: %d copy(ies)\n", len(list))
	return nil
}

// Stats prints the catalog counts.
func (r *Renderer) Stats(s types.Stats) error {
	if r.jsonMode {
		return r.JSON(s)
	}
	fmt.Fprintln(r.out, "Catalog statistics")
	fmt.Fprintf(r.out, "  Authors: %d\n", s.Authors)
	fmt.Fprintf(r.out, "  Books:   %d\n", s.Books)
	fmt.Fprintf(r.out, "  Copies:  %d\n", s.Copies)
	return nil
}

// AuthorCreated reports a stored author graph.
func (r *Renderer) AuthorCreated(a *types.Author) error {
	if r.jsonMode {
		return r.JSON(a)
	}
	fmt.Fprintf(r.out, "Author %q saved with id %d (%d book(s), %d copy(ies)).\n",
		a.FullName(), a.ID, len(a.Books), a.CopyCount())
	for _, b := range a.Books {
		fmt.Fprintf(r.out, "  Book %d: %s [%s]\n", b.ID, b.Title, b.ISBN)
	}
	return nil
}

// CopyAdded reports a copy added to an existing book.
func (r *Renderer) CopyAdded(res *catalog.NewCopyResult) error {
	if r.jsonMode {
		return r.JSON(res)
	}
	fmt.Fprintf(r.out, "Copy %s added to %q at %s (id %d).\n",
		res.Copy.Code, res.BookTitle, res.Copy.Location, res.Copy.ID)
	return nil
}

// CopyStatus reports a status change.
func (r *Renderer) CopyStatus(c *types.Copy) error {
	if r.jsonMode {
		return r.JSON(c)
	}
	fmt.Fprintf(r.out, "Copy %s is now %s.\n", c.Code, c.Status)
	return nil
}

// BookUpdated reports which book fields changed.
func (r *Renderer) BookUpdated(u *catalog.BookUpdate) error {
	if r.jsonMode {
		return r.JSON(u)
	}
	var changed []string
	if u.TitleChanged {
		changed = append(changed, fmt.Sprintf("title=%q", u.Book.Title))
	}
	if u.PagesChanged {
		changed = append(changed, fmt.Sprintf("pages=%d", u.Book.Pages))
	}
	fmt.Fprintf(r.out, "Book %d updated: %s.\n", u.Book.ID, strings.Join(changed, ", "))
	return nil
}

// CopyDeleted reports a removed copy.
func (r *Renderer) CopyDeleted(c *types.Copy) error {
	if r.jsonMode {
		return r.JSON(c)
	}
	fmt.Fprintf(r.out, "Copy %s deleted.\n", c.Code)
	return nil
}

// BookDeleted reports a removed book and its copies.
func (r *Renderer) BookDeleted(rm *catalog.BookRemoval) error {
	if r.jsonMode {
		return r.JSON(rm)
	}
	fmt.Fprintf(r.out, "Book %q deleted with %d copy(ies).\n", rm.Book.Title, rm.Copies)
	return nil
}

// AuthorDeleted reports a removed author and everything under it.
func (r *Renderer) AuthorDeleted(rm *catalog.AuthorRemoval) error {
	if r.jsonMode {
		return r.JSON(rm)
	}
	fmt.Fprintf(r.out, "Author %q deleted with %d book(s) and %d copy(ies).\n",
		rm.Author.FullName(), rm.Books, rm.Copies)
	return nil
}

// table writes a tab-aligned table with a header and an underline row,
// trimming trailing padding from every line.
func (r *Renderer) table(header []string, rows func(w io.Writer)) {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(header, "\t"))
	underline := make([]string, len(header))
	for i, h := range header {
		trimmed := strings.TrimLeft(h, " ")
		underline[i] = h[:len(h)-len(trimmed)] + strings.Repeat("-", len(trimmed))
	}
	fmt.Fprintln(w, strings.Join(underline, "\t"))
	rows(w)
	w.Flush()

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(r.out, strings.TrimRight(line, " "))
	}
}
