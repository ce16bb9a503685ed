package catalog

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := setupCatalog(t)
	jane := janeDoe()
	jane.Books[0].AddCopy(&types.Copy{Code: "EJ-2", Status: types.StatusLoaned, Location: "Desk"})
	mustCreate(t, src, jane)
	mustCreate(t, src, types.NewAuthor("Solo", "Writer", "", types.Date{}))

	path := filepath.Join(t.TempDir(), "catalog.jsonl")
	n, err := src.Export(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, countLines(t, path))

	dst := setupCatalog(t)
	n, err = dst.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, mustStats(t, src), mustStats(t, dst))

	loaned, err := dst.FindCopiesByStatus(ctx, "PRESTADO")
	require.NoError(t, err)
	require.Len(t, loaned, 1)
	assert.Equal(t, "EJ-2", loaned[0].Copy.Code)
	assert.Equal(t, "Desk", loaned[0].Copy.Location)
	assert.Equal(t, "First Light", loaned[0].BookTitle)

	authors, err := dst.ListAllAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.True(t, authors[0].Author.BirthDate.Equal(jane.BirthDate))
}

func TestExport_Empty(t *testing.T) {
	c := setupCatalog(t)
	path := filepath.Join(t.TempDir(), "empty.jsonl")

	n, err := c.Export(context.Background(), path)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 0, countLines(t, path))
}

func TestImport_SkipsMalformedLines(t *testing.T) {
	c := setupCatalog(t)
	path := filepath.Join(t.TempDir(), "in.jsonl")
	content := strings.Join([]string{
		`{"id":7,"first_name":"Ada","last_name":"Byron","books":[{"id":3,"title":"Notes","isbn":"N-1","pages":12,"copies":[{"id":1,"code":"N-1-A"}]}]}`,
		``,
		`{not json`,
		`{"first_name":"Mary","last_name":"Shelley","birth_date":"1797-08-30"}`,
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	n, err := c.Import(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, types.Stats{Authors: 2, Books: 1, Copies: 1}, mustStats(t, c))

	listing, err := c.FindCopiesByStatus(context.Background(), "DISPONIBLE")
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, "N-1-A", listing[0].Copy.Code)
}

func TestImport_SkipsRecordsWithNullChildren(t *testing.T) {
	c := setupCatalog(t)
	path := filepath.Join(t.TempDir(), "in.jsonl")
	content := strings.Join([]string{
		`{"first_name":"A","last_name":"B","books":[null]}`,
		`{"first_name":"C","last_name":"D","books":[{"title":"T","isbn":"I-1","copies":[null]}]}`,
		`{"first_name":"Mary","last_name":"Shelley"}`,
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	n, err := c.Import(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, types.Stats{Authors: 1}, mustStats(t, c))
}

func TestImport_DuplicateRollsBackEverything(t *testing.T) {
	c := setupCatalog(t)
	mustCreate(t, c, janeDoe())

	path := filepath.Join(t.TempDir(), "dup.jsonl")
	content := `{"first_name":"New","last_name":"One","books":[{"title":"X","isbn":"X-1"}]}` + "\n" +
		`{"first_name":"Dup","last_name":"Two","books":[{"title":"Y","isbn":"978-0-0"}]}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := c.Import(context.Background(), path)
	assert.ErrorIs(t, err, types.ErrConstraintViolation)
	assert.Equal(t, types.Stats{Authors: 1, Books: 1, Copies: 1}, mustStats(t, c))
}

func TestImport_InvalidRecord(t *testing.T) {
	c := setupCatalog(t)
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"first_name":"","last_name":"Nameless"}`+"\n"), 0o644))

	_, err := c.Import(context.Background(), path)
	assert.ErrorIs(t, err, types.ErrConstraintViolation)
	assert.Equal(t, types.Stats{}, mustStats(t, c))
}

func TestImport_MissingFile(t *testing.T) {
	c := setupCatalog(t)
	_, err := c.Import(context.Background(), filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		n++
	}
	require.NoError(t, scanner.Err())
	return n
}
