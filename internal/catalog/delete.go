package catalog

import (
	"context"
	"strings"

	"github.com/mesh-intelligence/shelf/internal/store"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// DeleteCopy removes the copy with code.
func (c *Catalog) DeleteCopy(ctx context.Context, code string) (*types.Copy, error) {
	code = strings.TrimSpace(code)

	cp, err := store.WithTransactionResult(ctx, c.store, func(tx *store.Tx) (*types.Copy, error) {
		cp, err := tx.Copies().GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if err := tx.Copies().Delete(ctx, cp.ID); err != nil {
			return nil, err
		}
		return cp, nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().Str("code", cp.Code).Msg("copy deleted")
	return cp, nil
}

// DeleteBook removes book id together with its copies.
func (c *Catalog) DeleteBook(ctx context.Context, id int64) (*BookRemoval, error) {
	removal, err := store.WithTransactionResult(ctx, c.store, func(tx *store.Tx) (*BookRemoval, error) {
		book, err := tx.Books().Get(ctx, id)
		if err != nil {
			return nil, err
		}
		n, err := tx.Copies().DeleteByBook(ctx, book.ID)
		if err != nil {
			return nil, err
		}
		if err := tx.Books().Delete(ctx, book.ID); err != nil {
			return nil, err
		}
		return &BookRemoval{Book: *book, Copies: n}, nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().Int64("book_id", id).Int64("copies", removal.Copies).Msg("book deleted")
	return removal, nil
}

// DeleteAuthor removes author id, every book of the author and every copy
// of those books.
func (c *Catalog) DeleteAuthor(ctx context.Context, id int64) (*AuthorRemoval, error) {
	removal, err := store.WithTransactionResult(ctx, c.store, func(tx *store.Tx) (*AuthorRemoval, error) {
		author, err := tx.Authors().Get(ctx, id)
		if err != nil {
			return nil, err
		}
		copies, err := tx.Copies().DeleteByAuthor(ctx, author.ID)
		if err != nil {
			return nil, err
		}
		books, err := tx.Books().DeleteByAuthor(ctx, author.ID)
		if err != nil {
			return nil, err
		}
		if err := tx.Authors().Delete(ctx, author.ID); err != nil {
			return nil, err
		}
		return &AuthorRemoval{Author: *author, Books: books, Copies: copies}, nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().
		Int64("author_id", id).
		Int64("books", removal.Books).
		Int64("copies", removal.Copies).
		Msg("author deleted")
	return removal, nil
}
