package catalog

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Report sheet names.
const (
	SheetAuthors = "Authors"
	SheetBooks   = "Books"
	SheetCopies  = "Copies"
)

var (
	authorHeaders = []any{"ID", "First name", "Last name", "Nationality", "Birth date", "Books"}
	bookHeaders   = []any{"ID", "Title", "ISBN", "Published", "Pages", "Author ID", "Author", "Copies"}
	copyHeaders   = []any{"ID", "Code", "Status", "Location", "Book ID", "ISBN", "Title"}
)

// Report writes the whole catalog to an xlsx workbook at path with one sheet
// per table, and returns the record counts it wrote.
func (c *Catalog) Report(ctx context.Context, path string) (types.Stats, error) {
	graphs, err := c.loadGraphs(ctx)
	if err != nil {
		return types.Stats{}, err
	}

	f, stats, err := buildReport(graphs)
	if err != nil {
		return types.Stats{}, fmt.Errorf("build report: %w", err)
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return types.Stats{}, fmt.Errorf("save report %s: %w", path, err)
	}

	c.log.Info().
		Str("path", path).
		Int64("authors", stats.Authors).
		Int64("books", stats.Books).
		Int64("copies", stats.Copies).
		Msg("report written")
	return stats, nil
}

func buildReport(graphs []*types.Author) (*excelize.File, types.Stats, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetAuthors); err != nil {
		f.Close()
		return nil, types.Stats{}, err
	}
	for _, name := range []string{SheetBooks, SheetCopies} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, types.Stats{}, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, types.Stats{}, err
	}

	w := &sheetWriter{f: f, rows: map[string]int{}}
	w.header(SheetAuthors, authorHeaders, bold)
	w.header(SheetBooks, bookHeaders, bold)
	w.header(SheetCopies, copyHeaders, bold)

	var stats types.Stats
	for _, a := range graphs {
		stats.Authors++
		w.row(SheetAuthors, []any{a.ID, a.FirstName, a.LastName, a.Nationality, dateCell(a.BirthDate), len(a.Books)})
		for _, b := range a.Books {
			stats.Books++
			w.row(SheetBooks, []any{b.ID, b.Title, b.ISBN, dateCell(b.PublishedOn), b.Pages, a.ID, a.FullName(), len(b.Copies)})
			for _, cp := range b.Copies {
				stats.Copies++
				w.row(SheetCopies, []any{cp.ID, cp.Code, string(cp.Status), cp.Location, b.ID, b.ISBN, b.Title})
			}
		}
	}
	if w.err != nil {
		f.Close()
		return nil, types.Stats{}, w.err
	}
	return f, stats, nil
}

// sheetWriter appends rows to sheets and keeps the first error.
type sheetWriter struct {
	f    *excelize.File
	rows map[string]int
	err  error
}

func (w *sheetWriter) header(sheet string, values []any, style int) {
	w.row(sheet, values)
	if w.err == nil {
		w.err = w.f.SetRowStyle(sheet, 1, 1, style)
	}
}

func (w *sheetWriter) row(sheet string, values []any) {
	if w.err != nil {
		return
	}
	w.rows[sheet]++
	cell, err := excelize.CoordinatesToCellName(1, w.rows[sheet])
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}

func dateCell(d types.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Display()
}
