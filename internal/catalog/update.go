package catalog

import (
	"context"
	"strings"

	"github.com/mesh-intelligence/shelf/internal/store"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// UpdateCopyStatus moves the copy with code to the status named by token.
// An unknown token fails with ErrInvalidArgument and no transaction is
// opened. An unknown code fails with ErrNotFound and nothing is committed.
func (c *Catalog) UpdateCopyStatus(ctx context.Context, code, token string) (*types.Copy, error) {
	status, err := types.ParseStatus(token)
	if err != nil {
		return nil, err
	}
	code = strings.TrimSpace(code)

	cp, err := store.WithTransactionResult(ctx, c.store, func(tx *store.Tx) (*types.Copy, error) {
		cp, err := tx.Copies().GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if err := cp.SetStatus(status); err != nil {
			return nil, err
		}
		if err := tx.Copies().SetStatus(ctx, cp.ID, cp.Status); err != nil {
			return nil, err
		}
		return cp, nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().Str("code", cp.Code).Str("status", string(cp.Status)).Msg("copy status updated")
	return cp, nil
}

// UpdateBookFields sets the title of book id when title is non-empty after
// trimming, and its page count when pages is positive. When neither applies
// the transaction is rolled back and ErrNoChanges is returned.
func (c *Catalog) UpdateBookFields(ctx context.Context, id int64, title string, pages int) (*BookUpdate, error) {
	title = strings.TrimSpace(title)

	update, err := store.WithTransactionResult(ctx, c.store, func(tx *store.Tx) (*BookUpdate, error) {
		book, err := tx.Books().Get(ctx, id)
		if err != nil {
			return nil, err
		}

		u := &BookUpdate{}
		if title != "" {
			book.Title = title
			u.TitleChanged = true
		}
		if pages > 0 {
			book.Pages = pages
			u.PagesChanged = true
		}
		if !u.TitleChanged && !u.PagesChanged {
			return nil, types.ErrNoChanges
		}

		if err := tx.Books().Update(ctx, book); err != nil {
			return nil, err
		}
		u.Book = *book
		return u, nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().
		Int64("book_id", id).
		Bool("title", update.TitleChanged).
		Bool("pages", update.PagesChanged).
		Msg("book updated")
	return update, nil
}
