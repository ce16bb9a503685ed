package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// CopiesTable reads and writes the ejemplares table.
type CopiesTable struct {
	q sqlx.ExtContext
	d dialect
}

type copyRow struct {
	ID       int64          `db:"id_ejemplar"`
	Code     string         `db:"codigo_ejemplar"`
	Status   string         `db:"estado"`
	Location sql.NullString `db:"ubicacion"`
	BookID   int64          `db:"id_libro"`
}

type copyListingRow struct {
	copyRow
	BookTitle string `db:"titulo"`
}

func (r copyRow) hydrate() *types.Copy {
	return &types.Copy{
		ID:       r.ID,
		Code:     r.Code,
		Status:   types.Status(r.Status),
		Location: r.Location.String,
		BookID:   r.BookID,
	}
}

var copyColumns = []any{colCopyID, colCode, colStatus, colLocation, colBookID}

// Insert stores the copy under bookID and returns its generated identity.
func (t *CopiesTable) Insert(ctx context.Context, c *types.Copy, bookID int64) (int64, error) {
	return insert(ctx, t.q, t.d, types.CopiesTable, colCopyID, goqu.Record{
		colCode:     c.Code,
		colStatus:   string(c.Status),
		colLocation: nullIfEmpty(c.Location),
		colBookID:   bookID,
	})
}

// GetByCode returns the copy with the given code.
func (t *CopiesTable) GetByCode(ctx context.Context, code string) (*types.Copy, error) {
	query, args, err := t.d.sql.From(types.CopiesTable).
		Select(copyColumns...).
		Where(goqu.C(colCode).Eq(code)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%w: build get copy: %w", types.ErrStoreFault, err)
	}

	var row copyRow
	if err := sqlx.GetContext(ctx, t.q, &row, query, args...); err != nil {
		return nil, classify(fmt.Sprintf("get copy %q", code), err)
	}
	return row.hydrate(), nil
}

// ByBook returns the copies of a book ordered by identity.
func (t *CopiesTable) ByBook(ctx context.Context, bookID int64) ([]*types.Copy, error) {
	query, args, err := t.d.sql.From(types.CopiesTable).
		Select(copyColumns...).
		Where(goqu.C(colBookID).Eq(bookID)).
		Order(goqu.C(colCopyID).Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%w: build list copies: %w", types.ErrStoreFault, err)
	}

	var rows []copyRow
	if err := sqlx.SelectContext(ctx, t.q, &rows, query, args...); err != nil {
		return nil, classify(fmt.Sprintf("list copies of book %d", bookID), err)
	}
	copies := make([]*types.Copy, 0, len(rows))
	for _, r := range rows {
		copies = append(copies, r.hydrate())
	}
	return copies, nil
}

// ByStatus returns the copies in status with the title of their book,
// ordered by copy code.
func (t *CopiesTable) ByStatus(ctx context.Context, status types.Status) ([]types.CopyListing, error) {
	e := goqu.T(types.CopiesTable).As("e")
	l := goqu.T(types.BooksTable).As("l")

	query, args, err := t.d.sql.From(e).
		Join(l, goqu.On(l.Col(colBookID).Eq(e.Col(colBookID)))).
		Select(
			e.Col(colCopyID), e.Col(colCode), e.Col(colStatus),
			e.Col(colLocation), e.Col(colBookID), l.Col(colTitle),
		).
		Where(e.Col(colStatus).Eq(string(status))).
		Order(e.Col(colCode).Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%w: build copies by status: %w", types.ErrStoreFault, err)
	}

	var rows []copyListingRow
	if err := sqlx.SelectContext(ctx, t.q, &rows, query, args...); err != nil {
		return nil, classify(fmt.Sprintf("list copies in %s", status), err)
	}
	out := make([]types.CopyListing, 0, len(rows))
	for _, r := range rows {
		out = append(out, types.CopyListing{Copy: *r.hydrate(), BookTitle: r.BookTitle})
	}
	return out, nil
}

// SetStatus writes a new status for the copy with id.
func (t *CopiesTable) SetStatus(ctx context.Context, id int64, status types.Status) error {
	query, args, err := t.d.sql.Update(types.CopiesTable).
		Set(goqu.Record{colStatus: string(status)}).
		Where(goqu.C(colCopyID).Eq(id)).
		Prepared(true).ToSQL()
	n, err := exec(ctx, t.q, "update copy status", query, args, err)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("update copy %d: %w", id, types.ErrNotFound)
	}
	return nil
}

// Delete removes the copy with id.
func (t *CopiesTable) Delete(ctx context.Context, id int64) error {
	query, args, err := t.d.sql.Delete(types.CopiesTable).
		Where(goqu.C(colCopyID).Eq(id)).
		Prepared(true).ToSQL()
	n, err := exec(ctx, t.q, "delete copy", query, args, err)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("delete copy %d: %w", id, types.ErrNotFound)
	}
	return nil
}

// DeleteByBook removes every copy of a book and returns how many were
// deleted.
func (t *CopiesTable) DeleteByBook(ctx context.Context, bookID int64) (int64, error) {
	query, args, err := t.d.sql.Delete(types.CopiesTable).
		Where(goqu.C(colBookID).Eq(bookID)).
		Prepared(true).ToSQL()
	return exec(ctx, t.q, "delete copies of book", query, args, err)
}

// DeleteByAuthor removes every copy of every book of an author and returns
// how many were deleted.
func (t *CopiesTable) DeleteByAuthor(ctx context.Context, authorID int64) (int64, error) {
	books := t.d.sql.From(types.BooksTable).
		Select(colBookID).
		Where(goqu.C(colAuthorID).Eq(authorID))
	query, args, err := t.d.sql.Delete(types.CopiesTable).
		Where(goqu.C(colBookID).In(books)).
		Prepared(true).ToSQL()
	return exec(ctx, t.q, "delete copies of author", query, args, err)
}
