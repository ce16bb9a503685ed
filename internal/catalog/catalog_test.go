package catalog

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/internal/store"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

func TestCatalog_Detached(t *testing.T) {
	b := store.NewBackend(zerolog.Nop())
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	c := New(b, zerolog.Nop())
	require.NoError(t, b.Detach())

	ctx := context.Background()
	_, err := c.Statistics(ctx)
	assert.ErrorIs(t, err, types.ErrCatalogDetached)
	_, err = c.ListAllAuthors(ctx)
	assert.ErrorIs(t, err, types.ErrCatalogDetached)
	_, err = c.CreateAuthorWithGraph(ctx, janeDoe())
	assert.ErrorIs(t, err, types.ErrCatalogDetached)
	_, err = c.DeleteAuthor(ctx, 1)
	assert.ErrorIs(t, err, types.ErrCatalogDetached)
}
