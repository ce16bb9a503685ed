package types

// UnsavedID is the identity of an entity the store has not assigned one to
// yet. Identities are only written back after a create commits.
const UnsavedID int64 = 0

// Book is a catalogued title. It belongs to exactly one author through
// AuthorID and owns its copies.
type Book struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ISBN        string  `json:"isbn"`
	PublishedOn Date    `json:"published_on"`
	Pages       int     `json:"pages"`
	AuthorID    int64   `json:"author_id"`
	Copies      []*Copy `json:"copies,omitempty"`
}

// NewBook returns an unsaved book with no copies.
func NewBook(title, isbn string, publishedOn Date, pages int) *Book {
	return &Book{
		Title:       title,
		ISBN:        isbn,
		PublishedOn: publishedOn,
		Pages:       pages,
	}
}

// AddCopy appends c to the book's copies and points it at the book.
func (b *Book) AddCopy(c *Copy) {
	c.BookID = b.ID
	b.Copies = append(b.Copies, c)
}

// IsSaved reports whether the store has assigned the book an identity.
func (b *Book) IsSaved() bool {
	return b.ID != UnsavedID
}

// setID assigns the identity and propagates it to the owned copies.
func (b *Book) setID(id int64) {
	b.ID = id
	for _, c := range b.Copies {
		c.BookID = id
	}
}
