package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Tx is one unit of work. Everything done through a Tx commits or rolls
// back together.
type Tx struct {
	tx      *sqlx.Tx
	dialect dialect
	log     zerolog.Logger
}

// TxFunc is the body of a unit of work.
type TxFunc func(tx *Tx) error

// WithTransaction runs fn inside a transaction. The transaction commits when
// fn returns nil and rolls back when fn returns an error or panics; a panic
// is re-raised after the rollback.
func (b *Backend) WithTransaction(ctx context.Context, fn TxFunc) (err error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrCatalogDetached
	}

	opID := newOpID()
	log := b.log.With().Str("op_id", opID).Logger()

	sqlTx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return classify("begin transaction", err)
	}
	log.Debug().Msg("transaction started")

	tx := &Tx{tx: sqlTx, dialect: b.dialect, log: log}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			log.Error().Interface("panic", p).Msg("transaction rolled back")
			panic(p)
		}
		if err != nil {
			// A failed or cancelled commit has already ended the transaction.
			if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, classify("rollback", rbErr))
			}
			log.Debug().Err(err).Msg("transaction rolled back")
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = sqlTx.Commit(); err != nil {
		return classify("commit", err)
	}
	log.Debug().Msg("transaction committed")
	return nil
}

// WithTransactionResult runs fn inside a transaction and returns its result.
// On failure the zero value is returned.
func WithTransactionResult[T any](ctx context.Context, b *Backend, fn func(tx *Tx) (T, error)) (T, error) {
	var result T
	err := b.WithTransaction(ctx, func(tx *Tx) error {
		var fnErr error
		result, fnErr = fn(tx)
		return fnErr
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// Authors returns the authors table bound to this transaction.
func (t *Tx) Authors() *AuthorsTable {
	return &AuthorsTable{q: t.tx, d: t.dialect}
}

// Books returns the books table bound to this transaction.
func (t *Tx) Books() *BooksTable {
	return &BooksTable{q: t.tx, d: t.dialect}
}

// Copies returns the copies table bound to this transaction.
func (t *Tx) Copies() *CopiesTable {
	return &CopiesTable{q: t.tx, d: t.dialect}
}

// InsertGraph inserts an unsaved author with all of its books and copies.
// The graph itself is left untouched; the assigned identities are returned
// so the caller can write them back once the transaction commits.
func (t *Tx) InsertGraph(ctx context.Context, a *types.Author) (types.GraphIDs, error) {
	authorID, err := t.Authors().Insert(ctx, a)
	if err != nil {
		return types.GraphIDs{}, err
	}

	ids := types.GraphIDs{Author: authorID, Books: make([]types.BookIDs, 0, len(a.Books))}
	for _, b := range a.Books {
		bookID, err := t.Books().Insert(ctx, b, authorID)
		if err != nil {
			return types.GraphIDs{}, err
		}
		bookIDs := types.BookIDs{Book: bookID, Copies: make([]int64, 0, len(b.Copies))}
		for _, c := range b.Copies {
			copyID, err := t.Copies().Insert(ctx, c, bookID)
			if err != nil {
				return types.GraphIDs{}, err
			}
			bookIDs.Copies = append(bookIDs.Copies, copyID)
		}
		ids.Books = append(ids.Books, bookIDs)
	}

	t.log.Debug().
		Int64("author_id", authorID).
		Int("books", len(a.Books)).
		Int("copies", a.CopyCount()).
		Msg("author graph inserted")
	return ids, nil
}

// LoadGraph reads an author with all of its books and their copies.
func (t *Tx) LoadGraph(ctx context.Context, authorID int64) (*types.Author, error) {
	a, err := t.Authors().Get(ctx, authorID)
	if err != nil {
		return nil, err
	}
	books, err := t.Books().ByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	for _, b := range books {
		copies, err := t.Copies().ByBook(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		b.Copies = copies
	}
	a.Books = books
	return a, nil
}

func newOpID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// insert adds rec to table and returns the generated key in idCol.
func insert(ctx context.Context, q sqlx.ExtContext, d dialect, table, idCol string, rec goqu.Record) (int64, error) {
	ds := d.sql.Insert(table).Rows(rec).Prepared(true)

	if d.returning {
		query, args, err := ds.Returning(idCol).ToSQL()
		if err != nil {
			return 0, fmt.Errorf("%w: build insert %s: %w", types.ErrStoreFault, table, err)
		}
		var id int64
		if err := q.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, classify("insert "+table, err)
		}
		return id, nil
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return 0, fmt.Errorf("%w: build insert %s: %w", types.ErrStoreFault, table, err)
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classify("insert "+table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, classify("insert "+table, err)
	}
	return id, nil
}

// exec runs a built statement and returns the number of affected rows.
func exec(ctx context.Context, q sqlx.ExecerContext, op string, query string, args []any, buildErr error) (int64, error) {
	if buildErr != nil {
		return 0, fmt.Errorf("%w: build %s: %w", types.ErrStoreFault, op, buildErr)
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classify(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classify(op, err)
	}
	return n, nil
}
