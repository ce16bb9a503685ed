package types

// Author writes books. Deleting an author deletes its books and, through
// them, their copies.
type Author struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Nationality string  `json:"nationality"`
	BirthDate   Date    `json:"birth_date"`
	Books       []*Book `json:"books,omitempty"`
}

// NewAuthor returns an unsaved author with no books.
func NewAuthor(firstName, lastName, nationality string, birthDate Date) *Author {
	return &Author{
		FirstName:   firstName,
		LastName:    lastName,
		Nationality: nationality,
		BirthDate:   birthDate,
	}
}

// FullName joins first and last name.
func (a *Author) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	default:
		return a.FirstName + " " + a.LastName
	}
}

// AddBook appends b to the author's books and points it at the author.
func (a *Author) AddBook(b *Book) {
	b.AuthorID = a.ID
	a.Books = append(a.Books, b)
}

// IsSaved reports whether the store has assigned the author an identity.
func (a *Author) IsSaved() bool {
	return a.ID != UnsavedID
}

// CopyCount returns the number of copies across all of the author's books.
func (a *Author) CopyCount() int {
	n := 0
	for _, b := range a.Books {
		n += len(b.Copies)
	}
	return n
}

// ClearIDs resets every identity in the graph to UnsavedID so it can be
// persisted as new records.
func (a *Author) ClearIDs() {
	a.ID = UnsavedID
	for _, b := range a.Books {
		b.ID = UnsavedID
		b.AuthorID = UnsavedID
		for _, c := range b.Copies {
			c.ID = UnsavedID
			c.BookID = UnsavedID
		}
	}
}

// GraphIDs holds the identities the store assigned to an author graph, in
// the same order as the graph's books and copies.
type GraphIDs struct {
	Author int64
	Books  []BookIDs
}

// BookIDs holds the identities of one book and its copies.
type BookIDs struct {
	Book   int64
	Copies []int64
}

// AssignIDs writes ids back into the graph, including every parent
// reference. ids must have been produced for this graph.
func (a *Author) AssignIDs(ids GraphIDs) {
	a.ID = ids.Author
	for i, b := range a.Books {
		b.AuthorID = a.ID
		if i >= len(ids.Books) {
			continue
		}
		b.setID(ids.Books[i].Book)
		for j, c := range b.Copies {
			if j < len(ids.Books[i].Copies) {
				c.ID = ids.Books[i].Copies[j]
			}
		}
	}
}
