package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// AuthorsTable reads and writes the autores table.
type AuthorsTable struct {
	q sqlx.ExtContext
	d dialect
}

type authorRow struct {
	ID          int64          `db:"id_autor"`
	FirstName   string         `db:"nombre"`
	LastName    string         `db:"apellidos"`
	Nationality sql.NullString `db:"nacionalidad"`
	BirthDate   types.Date     `db:"fecha_nacimiento"`
}

type authorSummaryRow struct {
	authorRow
	BookCount int64 `db:"num_libros"`
}

func (r authorRow) hydrate() *types.Author {
	return &types.Author{
		ID:          r.ID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Nationality: r.Nationality.String,
		BirthDate:   r.BirthDate,
	}
}

var authorColumns = []any{colAuthorID, colFirstName, colLastName, colNationality, colBirthDate}

// Insert stores the author row only and returns its generated identity.
func (t *AuthorsTable) Insert(ctx context.Context, a *types.Author) (int64, error) {
	return insert(ctx, t.q, t.d, types.AuthorsTable, colAuthorID, goqu.Record{
		colFirstName:   a.FirstName,
		colLastName:    a.LastName,
		colNationality: nullIfEmpty(a.Nationality),
		colBirthDate:   a.BirthDate,
	})
}

// Get returns the author with id, without books.
// Returns ErrNotFound when no such author exists.
func (t *AuthorsTable) Get(ctx context.Context, id int64) (*types.Author, error) {
	query, args, err := t.d.sql.From(types.AuthorsTable).
		Select(authorColumns...).
		Where(goqu.C(colAuthorID).Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%w: build get author: %w", types.ErrStoreFault, err)
	}

	var row authorRow
	if err := sqlx.GetContext(ctx, t.q, &row, query, args...); err != nil {
		return nil, classify(fmt.Sprintf("get author %d", id), err)
	}
	return row.hydrate(), nil
}

// All returns every author ordered by identity, without books.
func (t *AuthorsTable) All(ctx context.Context) ([]*types.Author, error) {
	query, args, err := t.d.sql.From(types.AuthorsTable).
		Select(authorColumns...).
		Order(goqu.C(colAuthorID).Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%w: build list authors: %w", types.ErrStoreFault, err)
	}

	var rows []authorRow
	if err := sqlx.SelectContext(ctx, t.q, &rows, query, args...); err != nil {
		return nil, classify("list authors", err)
	}
	authors := make([]*types.Author, 0, len(rows))
	for _, r := range rows {
		authors = append(authors, r.hydrate())
	}
	return authors, nil
}

// Summaries returns every author ordered by identity together with the
// number of books each one has, counted in the same query.
func (t *AuthorsTable) Summaries(ctx context.Context) ([]types.AuthorSummary, error) {
	a := goqu.T(types.AuthorsTable).As("a")
	l := goqu.T(types.BooksTable).As("l")

	cols := []any{
		a.Col(colAuthorID), a.Col(colFirstName), a.Col(colLastName),
		a.Col(colNationality), a.Col(colBirthDate),
	}
	query, args, err := t.d.sql.From(a).
		LeftJoin(l, goqu.On(l.Col(colAuthorID).Eq(a.Col(colAuthorID)))).
		Select(append(cols, goqu.COUNT(l.Col(colBookID)).As("num_libros"))...).
		GroupBy(cols...).
		Order(a.Col(colAuthorID).Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%w: build author summaries: %w", types.ErrStoreFault, err)
	}

	var rows []authorSummaryRow
	if err := sqlx.SelectContext(ctx, t.q, &rows, query, args...); err != nil {
		return nil, classify("list author summaries", err)
	}
	out := make([]types.AuthorSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, types.AuthorSummary{Author: *r.hydrate(), BookCount: int(r.BookCount)})
	}
	return out, nil
}

// Delete removes the author row. Books must already be gone.
// Returns ErrNotFound when no row was deleted.
func (t *AuthorsTable) Delete(ctx context.Context, id int64) error {
	query, args, err := t.d.sql.Delete(types.AuthorsTable).
		Where(goqu.C(colAuthorID).Eq(id)).
		Prepared(true).ToSQL()
	n, err := exec(ctx, t.q, "delete author", query, args, err)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("delete author %d: %w", id, types.ErrNotFound)
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
