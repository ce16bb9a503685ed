package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func TestReport(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()
	jane := janeDoe()
	jane.Books[0].AddCopy(&types.Copy{Code: "EJ-2", Status: types.StatusRetired})
	mustCreate(t, c, jane)
	mustCreate(t, c, types.NewAuthor("Solo", "Writer", "", types.Date{}))

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	stats, err := c.Report(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, types.Stats{Authors: 2, Books: 1, Copies: 2}, stats)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetAuthors, SheetBooks, SheetCopies}, f.GetSheetList())

	authors, err := f.GetRows(SheetAuthors)
	require.NoError(t, err)
	require.Len(t, authors, 3)
	assert.Equal(t, "First name", authors[0][1])
	assert.Equal(t, "Jane", authors[1][1])
	assert.Equal(t, "04/03/1970", authors[1][4])

	books, err := f.GetRows(SheetBooks)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "978-0-0", books[1][2])
	assert.Equal(t, "Jane Doe", books[1][6])

	copies, err := f.GetRows(SheetCopies)
	require.NoError(t, err)
	require.Len(t, copies, 3)
	assert.Equal(t, "EJ-1", copies[1][1])
	assert.Equal(t, "DISPONIBLE", copies[1][2])
	assert.Equal(t, "BAJA", copies[2][2])
}
