package types

// Store table names. The schema is shared with other tools that read the
// catalog, so these names are fixed.
const (
	AuthorsTable = "autores"
	BooksTable   = "libros"
	CopiesTable  = "ejemplares"
)
