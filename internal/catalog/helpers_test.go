package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/internal/store"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

func setupCatalog(t *testing.T) *Catalog {
	t.Helper()
	b := store.NewBackend(zerolog.Nop())
	require.NoError(t, b.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}))
	t.Cleanup(func() { b.Detach() })
	return New(b, zerolog.Nop())
}

// janeDoe is the author graph used across tests: one book, ISBN 978-0-0,
// with one copy EJ-1.
func janeDoe() *types.Author {
	a := types.NewAuthor("Jane", "Doe", "British", types.NewDate(1970, time.March, 4))
	b := types.NewBook("First Light", "978-0-0", types.NewDate(2001, time.June, 1), 320)
	b.AddCopy(types.NewCopy("EJ-1", "Shelf A3"))
	a.AddBook(b)
	return a
}

func mustCreate(t *testing.T, c *Catalog, a *types.Author) *types.Author {
	t.Helper()
	created, err := c.CreateAuthorWithGraph(context.Background(), a)
	require.NoError(t, err)
	return created
}

func mustStats(t *testing.T, c *Catalog) types.Stats {
	t.Helper()
	stats, err := c.Statistics(context.Background())
	require.NoError(t, err)
	return stats
}
