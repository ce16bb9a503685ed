package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// BooksTable reads and writes the libros table.
type BooksTable struct {
	q sqlx.ExtContext
	d dialect
}

type bookRow struct {
	ID          int64         `db:"id_libro"`
	Title       string        `db:"titulo"`
	ISBN        string        `db:"isbn"`
	PublishedOn types.Date    `db:"fecha_publicacion"`
	Pages       sql.NullInt64 `db:"numero_paginas"`
	AuthorID    int64         `db:"id_autor"`
}

func (r bookRow) hydrate() *types.Book {
	return &types.Book{
		ID:          r.ID,
		Title:       r.Title,
		ISBN:        r.ISBN,
		PublishedOn: r.PublishedOn,
		Pages:       int(r.Pages.Int64),
		AuthorID:    r.AuthorID,
	}
}

var bookColumns = []any{colBookID, colTitle, colISBN, colPublishedOn, colPages, colAuthorID}

// Insert stores the book row under authorID and returns its generated
// identity. Copies are not touched.
func (t *BooksTable) Insert(ctx context.Context, b *types.Book, authorID int64) (int64, error) {
	return insert(ctx, t.q, t.d, types.BooksTable, colBookID, goqu.Record{
		colTitle:       b.Title,
		colISBN:        b.ISBN,
		colPublishedOn: b.PublishedOn,
		colPages:       b.Pages,
		colAuthorID:    authorID,
	})
}

// Get returns the book with id, without copies.
func (t *BooksTable) Get(ctx context.Context, id int64) (*types.Book, error) {
	return t.getOne(ctx, fmt.Sprintf("get book %d", id), goqu.C(colBookID).Eq(id))
}

// GetByISBN returns the book with the given ISBN, without copies.
func (t *BooksTable) GetByISBN(ctx context.Context, isbn string) (*types.Book, error) {
	return t.getOne(ctx, fmt.Sprintf("get book by isbn %q", isbn), goqu.C(colISBN).Eq(isbn))
}

func (t *BooksTable) getOne(ctx context.Context, op string, where exp.Expression) (*types.Book, error) {
	query, args, err := t.d.sql.From(types.BooksTable).
		Select(bookColumns...).
		Where(where).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%w: build %s: %w", types.ErrStoreFault, op, err)
	}

	var row bookRow
	if err := sqlx.GetContext(ctx, t.q, &row, query, args...); err != nil {
		return nil, classify(op, err)
	}
	return row.hydrate(), nil
}

// ByAuthor returns the books of an author ordered by identity.
func (t *BooksTable) ByAuthor(ctx context.Context, authorID int64) ([]*types.Book, error) {
	query, args, err := t.d.sql.From(types.BooksTable).
		Select(bookColumns...).
		Where(goqu.C(colAuthorID).Eq(authorID)).
		Order(goqu.C(colBookID).Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%w: build list books: %w", types.ErrStoreFault, err)
	}

	var rows []bookRow
	if err := sqlx.SelectContext(ctx, t.q, &rows, query, args...); err != nil {
		return nil, classify(fmt.Sprintf("list books of author %d", authorID), err)
	}
	books := make([]*types.Book, 0, len(rows))
	for _, r := range rows {
		books = append(books, r.hydrate())
	}
	return books, nil
}

// Update writes the book's title, ISBN, publication date and page count.
// Returns ErrNotFound when no row matched.
func (t *BooksTable) Update(ctx context.Context, b *types.Book) error {
	query, args, err := t.d.sql.Update(types.BooksTable).
		Set(goqu.Record{
			colTitle:       b.Title,
			colISBN:        b.ISBN,
			colPublishedOn: b.PublishedOn,
			colPages:       b.Pages,
		}).
		Where(goqu.C(colBookID).Eq(b.ID)).
		Prepared(true).ToSQL()
	n, err := exec(ctx, t.q, "update book", query, args, err)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("update book %d: %w", b.ID, types.ErrNotFound)
	}
	return nil
}

// Delete removes the book row. Copies must already be gone.
func (t *BooksTable) Delete(ctx context.Context, id int64) error {
	query, args, err := t.d.sql.Delete(types.BooksTable).
		Where(goqu.C(colBookID).Eq(id)).
		Prepared(true).ToSQL()
	n, err := exec(ctx, t.q, "delete book", query, args, err)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("delete book %d: %w", id, types.ErrNotFound)
	}
	return nil
}

// DeleteByAuthor removes every book of an author and returns how many were
// deleted. Copies must already be gone.
func (t *BooksTable) DeleteByAuthor(ctx context.Context, authorID int64) (int64, error) {
	query, args, err := t.d.sql.Delete(types.BooksTable).
		Where(goqu.C(colAuthorID).Eq(authorID)).
		Prepared(true).ToSQL()
	return exec(ctx, t.q, "delete books of author", query, args, err)
}
