package store

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend(zerolog.Nop())
	require.NoError(t, b.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}))
	t.Cleanup(func() { b.Detach() })
	return b
}

// sampleAuthor builds an unsaved author with one book per ISBN and the given
// copy codes on every book, each code prefixed by the ISBN.
func sampleAuthor(last string, isbns []string, codes ...string) *types.Author {
	a := types.NewAuthor("Jane", last, "UK", types.NewDate(1970, time.March, 4))
	for _, isbn := range isbns {
		b := types.NewBook("Book "+isbn, isbn, types.NewDate(2001, time.June, 1), 250)
		for _, code := range codes {
			b.AddCopy(types.NewCopy(isbn+"/"+code, "Shelf A"))
		}
		a.AddBook(b)
	}
	return a
}

func insertGraph(t *testing.T, b *Backend, a *types.Author) types.GraphIDs {
	t.Helper()
	ids, err := WithTransactionResult(context.Background(), b, func(tx *Tx) (types.GraphIDs, error) {
		return tx.InsertGraph(context.Background(), a)
	})
	require.NoError(t, err)
	a.AssignIDs(ids)
	return ids
}
