package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func TestCreateAuthorWithGraph_RoundTrip(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()

	a := types.NewAuthor("Ana", "Ruiz", "Spanish", types.NewDate(1965, time.May, 9))
	for _, isbn := range []string{"111", "222"} {
		b := types.NewBook("Title "+isbn, isbn, types.NewDate(1999, time.January, 2), 150)
		b.AddCopy(types.NewCopy(isbn+"-A", "A1"))
		b.AddCopy(&types.Copy{Code: isbn + "-B", Status: types.StatusInRepair, Location: "Lab"})
		a.AddBook(b)
	}

	created, err := c.CreateAuthorWithGraph(ctx, a)
	require.NoError(t, err)
	assert.Same(t, a, created)
	assert.True(t, a.IsSaved())

	for _, b := range a.Books {
		require.True(t, b.IsSaved())
		assert.Equal(t, a.ID, b.AuthorID)

		details, err := c.FindBookByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, details.Book.ID)
		assert.Equal(t, b.Title, details.Book.Title)
		assert.Equal(t, b.ISBN, details.Book.ISBN)
		assert.Equal(t, 150, details.Book.Pages)
		assert.True(t, details.Book.PublishedOn.Equal(b.PublishedOn))
		assert.Equal(t, a.ID, details.Author.ID)
		assert.Equal(t, "Ana Ruiz", details.Author.FullName())

		require.Len(t, details.Book.Copies, 2)
		for i, cp := range details.Book.Copies {
			assert.Equal(t, b.Copies[i].ID, cp.ID)
			assert.Equal(t, b.Copies[i].Code, cp.Code)
			assert.Equal(t, b.Copies[i].Status, cp.Status)
			assert.Equal(t, b.Copies[i].Location, cp.Location)
			assert.Equal(t, b.ID, cp.BookID)
		}
	}
}

func TestCreateAuthorWithGraph_DefaultsEmptyStatus(t *testing.T) {
	c := setupCatalog(t)
	a := janeDoe()
	a.Books[0].Copies[0].Status = ""

	mustCreate(t, c, a)
	assert.Equal(t, types.StatusAvailable, a.Books[0].Copies[0].Status)

	listing, err := c.FindCopiesByStatus(context.Background(), "DISPONIBLE")
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, "EJ-1", listing[0].Copy.Code)
}

func TestCreateAuthorWithGraph_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *types.Author)
	}{
		{"missing first name", func(a *types.Author) { a.FirstName = "" }},
		{"missing last name", func(a *types.Author) { a.LastName = "" }},
		{"missing title", func(a *types.Author) { a.Books[0].Title = "" }},
		{"missing isbn", func(a *types.Author) { a.Books[0].ISBN = "" }},
		{"negative pages", func(a *types.Author) { a.Books[0].Pages = -1 }},
		{"missing copy code", func(a *types.Author) { a.Books[0].Copies[0].Code = "" }},
		{"unknown status", func(a *types.Author) { a.Books[0].Copies[0].Status = "LOST" }},
		{"nil book", func(a *types.Author) { a.Books = append(a.Books, nil) }},
		{"nil copy", func(a *types.Author) { a.Books[0].Copies = append(a.Books[0].Copies, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := setupCatalog(t)
			a := janeDoe()
			tt.mutate(a)

			_, err := c.CreateAuthorWithGraph(context.Background(), a)
			assert.ErrorIs(t, err, types.ErrConstraintViolation)
			assert.False(t, a.IsSaved())
			assert.Equal(t, types.Stats{}, mustStats(t, c))
		})
	}
}

func TestCreateAuthorWithGraph_NilAuthor(t *testing.T) {
	c := setupCatalog(t)
	_, err := c.CreateAuthorWithGraph(context.Background(), nil)
	assert.ErrorIs(t, err, types.ErrConstraintViolation)
}

func TestCreateAuthorWithGraph_DuplicatesRollBack(t *testing.T) {
	c := setupCatalog(t)
	mustCreate(t, c, janeDoe())

	t.Run("duplicate isbn", func(t *testing.T) {
		a := types.NewAuthor("John", "Roe", "", types.Date{})
		a.AddBook(types.NewBook("Fresh", "978-9-9", types.Date{}, 10))
		a.AddBook(types.NewBook("Clash", "978-0-0", types.Date{}, 10))

		_, err := c.CreateAuthorWithGraph(context.Background(), a)
		assert.ErrorIs(t, err, types.ErrConstraintViolation)
		assert.False(t, a.IsSaved())
		assert.False(t, a.Books[0].IsSaved())
	})

	t.Run("duplicate copy code", func(t *testing.T) {
		a := types.NewAuthor("John", "Roe", "", types.Date{})
		b := types.NewBook("Fresh", "978-9-9", types.Date{}, 10)
		b.AddCopy(types.NewCopy("EJ-1", ""))
		a.AddBook(b)

		_, err := c.CreateAuthorWithGraph(context.Background(), a)
		assert.ErrorIs(t, err, types.ErrConstraintViolation)
	})

	assert.Equal(t, types.Stats{Authors: 1, Books: 1, Copies: 1}, mustStats(t, c))
}

func TestAddCopyToExistingBook(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()
	a := mustCreate(t, c, janeDoe())

	res, err := c.AddCopyToExistingBook(ctx, " 978-0-0 ", "EJ-2")
	require.NoError(t, err)
	assert.Equal(t, "First Light", res.BookTitle)
	assert.True(t, res.Copy.IsSaved())
	assert.Equal(t, "EJ-2", res.Copy.Code)
	assert.Equal(t, types.StatusAvailable, res.Copy.Status)
	assert.Equal(t, types.DefaultLocation, res.Copy.Location)
	assert.Equal(t, a.Books[0].ID, res.Copy.BookID)

	details, err := c.FindBookByID(ctx, a.Books[0].ID)
	require.NoError(t, err)
	require.Len(t, details.Book.Copies, 2)
	assert.Equal(t, "EJ-2", details.Book.Copies[1].Code)
}

func TestAddCopyToExistingBook_UnknownISBNWritesNothing(t *testing.T) {
	c := setupCatalog(t)
	mustCreate(t, c, janeDoe())
	before := mustStats(t, c)

	for _, isbn := range []string{"000", "978-0-00", ""} {
		_, err := c.AddCopyToExistingBook(context.Background(), isbn, "EJ-9")
		assert.ErrorIs(t, err, types.ErrNotFound, isbn)
	}
	assert.Equal(t, before, mustStats(t, c))
}

func TestAddCopyToExistingBook_Rejected(t *testing.T) {
	c := setupCatalog(t)
	mustCreate(t, c, janeDoe())

	_, err := c.AddCopyToExistingBook(context.Background(), "978-0-0", "EJ-1")
	assert.ErrorIs(t, err, types.ErrConstraintViolation)

	_, err = c.AddCopyToExistingBook(context.Background(), "978-0-0", "  ")
	assert.ErrorIs(t, err, types.ErrConstraintViolation)

	assert.Equal(t, int64(1), mustStats(t, c).Copies)
}
