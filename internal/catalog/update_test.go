package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func TestUpdateCopyStatus(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()
	mustCreate(t, c, janeDoe())

	for _, token := range []string{"prestado", "REPARACION", "Baja", "disponible"} {
		cp, err := c.UpdateCopyStatus(ctx, "EJ-1", token)
		require.NoError(t, err, token)
		want, _ := types.ParseStatus(token)
		assert.Equal(t, want, cp.Status)

		listing, err := c.FindCopiesByStatus(ctx, token)
		require.NoError(t, err)
		require.Len(t, listing, 1)
		assert.Equal(t, "EJ-1", listing[0].Copy.Code)
	}
}

func TestUpdateCopyStatus_InvalidTokenChangesNothing(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()
	mustCreate(t, c, janeDoe())

	_, err := c.UpdateCopyStatus(ctx, "EJ-1", "LOST")
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	_, err = c.UpdateCopyStatus(ctx, "missing", "LOST")
	assert.ErrorIs(t, err, types.ErrInvalidArgument, "token is checked before the lookup")

	listing, err := c.FindCopiesByStatus(ctx, "DISPONIBLE")
	require.NoError(t, err)
	require.Len(t, listing, 1)
}

func TestUpdateCopyStatus_NotFound(t *testing.T) {
	c := setupCatalog(t)
	_, err := c.UpdateCopyStatus(context.Background(), "EJ-404", "BAJA")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestUpdateBookFields(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()
	id := mustCreate(t, c, janeDoe()).Books[0].ID

	tests := []struct {
		name      string
		title     string
		pages     int
		wantTitle string
		wantPages int
		titleSet  bool
		pagesSet  bool
	}{
		{"title only", "  Second Light  ", 0, "Second Light", 320, true, false},
		{"pages only", "", 99, "Second Light", 99, false, true},
		{"negative pages ignored", "Third", -5, "Third", 99, true, false},
		{"both", "Fourth", 400, "Fourth", 400, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := c.UpdateBookFields(ctx, id, tt.title, tt.pages)
			require.NoError(t, err)
			assert.Equal(t, tt.titleSet, u.TitleChanged)
			assert.Equal(t, tt.pagesSet, u.PagesChanged)
			assert.Equal(t, tt.wantTitle, u.Book.Title)

			details, err := c.FindBookByID(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, details.Book.Title)
			assert.Equal(t, tt.wantPages, details.Book.Pages)
		})
	}
}

func TestUpdateBookFields_NoChanges(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()
	id := mustCreate(t, c, janeDoe()).Books[0].ID

	for _, title := range []string{"", "   "} {
		u, err := c.UpdateBookFields(ctx, id, title, 0)
		assert.ErrorIs(t, err, types.ErrNoChanges)
		assert.Nil(t, u)
	}

	details, err := c.FindBookByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "First Light", details.Book.Title)
	assert.Equal(t, 320, details.Book.Pages)
}

func TestUpdateBookFields_NotFound(t *testing.T) {
	c := setupCatalog(t)
	_, err := c.UpdateBookFields(context.Background(), 77, "Anything", 10)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
