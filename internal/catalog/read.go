package catalog

import (
	"context"

	"github.com/mesh-intelligence/shelf/internal/store"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// ListAllAuthors returns every author ordered by identity with the number of
// books each one has.
func (c *Catalog) ListAllAuthors(ctx context.Context) ([]types.AuthorSummary, error) {
	return store.WithTransactionResult(ctx, c.store, func(tx *store.Tx) ([]types.AuthorSummary, error) {
		return tx.Authors().Summaries(ctx)
	})
}

// FindBookByID returns the book with id, its copies and its author.
func (c *Catalog) FindBookByID(ctx context.Context, id int64) (*types.BookDetails, error) {
	return store.WithTransactionResult(ctx, c.store, func(tx *store.Tx) (*types.BookDetails, error) {
		book, err := tx.Books().Get(ctx, id)
		if err != nil {
			return nil, err
		}
		copies, err := tx.Copies().ByBook(ctx, book.ID)
		if err != nil {
			return nil, err
		}
		book.Copies = copies
		author, err := tx.Authors().Get(ctx, book.AuthorID)
		if err != nil {
			return nil, err
		}
		return &types.BookDetails{Book: *book, Author: *author}, nil
	})
}

// FindCopiesByStatus returns the copies in the status named by token,
// ordered by code, with the title of their book. An unknown token fails
// with ErrInvalidArgument before the store is touched.
func (c *Catalog) FindCopiesByStatus(ctx context.Context, token string) ([]types.CopyListing, error) {
	status, err := types.ParseStatus(token)
	if err != nil {
		return nil, err
	}
	return store.WithTransactionResult(ctx, c.store, func(tx *store.Tx) ([]types.CopyListing, error) {
		return tx.Copies().ByStatus(ctx, status)
	})
}

// Statistics counts authors, books and copies.
func (c *Catalog) Statistics(ctx context.Context) (types.Stats, error) {
	return c.store.Counts(ctx)
}
