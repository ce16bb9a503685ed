package catalog

import (
	"context"
	"strings"

	"github.com/mesh-intelligence/shelf/internal/store"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// CreateAuthorWithGraph persists a, its books and their copies in one
// transaction. Copies without a status are stored as available. The
// identities assigned by the store are written into the graph only after
// the transaction commits; on failure the graph keeps UnsavedID everywhere.
func (c *Catalog) CreateAuthorWithGraph(ctx context.Context, a *types.Author) (*types.Author, error) {
	if err := prepareGraph(a); err != nil {
		return nil, err
	}

	ids, err := store.WithTransactionResult(ctx, c.store, func(tx *store.Tx) (types.GraphIDs, error) {
		return tx.InsertGraph(ctx, a)
	})
	if err != nil {
		c.log.Info().Err(err).Str("author", a.FullName()).Msg("create author failed")
		return nil, err
	}

	a.AssignIDs(ids)
	c.log.Info().
		Int64("author_id", a.ID).
		Int("books", len(a.Books)).
		Int("copies", a.CopyCount()).
		Msg("author created")
	return a, nil
}

// AddCopyToExistingBook adds an available copy shelved at DefaultLocation
// to the book with isbn. Returns ErrNotFound, without writing anything, when
// no book has that ISBN.
func (c *Catalog) AddCopyToExistingBook(ctx context.Context, isbn, code string) (*NewCopyResult, error) {
	isbn = strings.TrimSpace(isbn)
	code = strings.TrimSpace(code)
	if err := validateCode(code); err != nil {
		return nil, err
	}

	type added struct {
		book *types.Book
		cp   *types.Copy
		id   int64
	}
	res, err := store.WithTransactionResult(ctx, c.store, func(tx *store.Tx) (added, error) {
		book, err := tx.Books().GetByISBN(ctx, isbn)
		if err != nil {
			return added{}, err
		}
		cp := types.NewCopy(code, types.DefaultLocation)
		book.AddCopy(cp)
		id, err := tx.Copies().Insert(ctx, cp, book.ID)
		if err != nil {
			return added{}, err
		}
		return added{book: book, cp: cp, id: id}, nil
	})
	if err != nil {
		c.log.Info().Err(err).Str("isbn", isbn).Str("code", code).Msg("add copy failed")
		return nil, err
	}

	res.cp.ID = res.id
	c.log.Info().Int64("copy_id", res.id).Int64("book_id", res.book.ID).Msg("copy added")
	return &NewCopyResult{Copy: *res.cp, BookTitle: res.book.Title}, nil
}
