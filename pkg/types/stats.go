package types

// Stats holds catalog-wide record counts.
type Stats struct {
	Authors int64 `json:"authors"`
	Books   int64 `json:"books"`
	Copies  int64 `json:"copies"`
}

// AuthorSummary is an author row of the author listing.
type AuthorSummary struct {
	Author    Author `json:"author"`
	BookCount int    `json:"book_count"`
}

// CopyListing is a copy together with the title of the book it belongs to.
type CopyListing struct {
	Copy      Copy   `json:"copy"`
	BookTitle string `json:"book_title"`
}

// BookDetails is a book with its copies loaded and its author.
type BookDetails struct {
	Book   Book   `json:"book"`
	Author Author `json:"author"`
}
