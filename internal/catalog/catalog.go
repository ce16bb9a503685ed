// Package catalog implements the librarian's operations over the store:
// creating author graphs, lookups and listings, status and metadata updates,
// cascading deletes, and JSONL export and import.
//
// Every operation runs in its own unit of work. A failure rolls that unit
// back and comes back as an error wrapping one of the pkg/types sentinels.
package catalog

import (
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/shelf/internal/store"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Catalog runs catalog operations against an attached store.
type Catalog struct {
	store *store.Backend
	log   zerolog.Logger
}

// New returns a Catalog over an attached backend.
func New(backend *store.Backend, log zerolog.Logger) *Catalog {
	return &Catalog{
		store: backend,
		log:   log.With().Str("component", "catalog").Logger(),
	}
}

// NewCopyResult is the outcome of AddCopyToExistingBook.
type NewCopyResult struct {
	Copy      types.Copy `json:"copy"`
	BookTitle string     `json:"book_title"`
}

// BookUpdate reports which fields UpdateBookFields changed.
type BookUpdate struct {
	Book         types.Book `json:"book"`
	TitleChanged bool       `json:"title_changed"`
	PagesChanged bool       `json:"pages_changed"`
}

// BookRemoval is the outcome of DeleteBook.
type BookRemoval struct {
	Book   types.Book `json:"book"`
	Copies int64      `json:"copies_removed"`
}

// AuthorRemoval is the outcome of DeleteAuthor.
type AuthorRemoval struct {
	Author types.Author `json:"author"`
	Books  int64        `json:"books_removed"`
	Copies int64        `json:"copies_removed"`
}
