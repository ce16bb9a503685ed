package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/catalog"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

func newMenuCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive catalog menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, flags)
		},
	}
}

func runMenu(cmd *cobra.Command, flags *rootFlags) error {
	s, err := openSession(cmd, flags)
	if err != nil {
		return err
	}
	defer s.Close()

	m := NewMenu(s.catalog, cmd.InOrStdin(), cmd.OutOrStdout(), flags.jsonMode)
	return m.Run(cmd.Context())
}

// Menu is the numbered interactive loop over the catalog operations.
type Menu struct {
	catalog *catalog.Catalog
	prompt  *Prompter
	render  *Renderer
	out     io.Writer
	actions map[int]menuAction
}

type menuAction struct {
	label string
	run   func(ctx context.Context) error
}

// NewMenu builds a menu reading answers from in and writing to out.
func NewMenu(c *catalog.Catalog, in io.Reader, out io.Writer, jsonMode bool) *Menu {
	m := &Menu{
		catalog: c,
		prompt:  NewPrompter(in, out),
		render:  NewRenderer(out, jsonMode),
		out:     out,
	}
	m.actions = map[int]menuAction{
		1:  {"Create a new author with books", m.createAuthor},
		2:  {"Add a copy to an existing book", m.addCopy},
		3:  {"List all authors", m.listAuthors},
		4:  {"Find a book by id", m.findBook},
		5:  {"Find copies by status", m.findCopies},
		6:  {"Show statistics", m.showStats},
		7:  {"Update the status of a copy", m.updateCopyStatus},
		8:  {"Update book details", m.updateBook},
		9:  {"Delete a copy", m.deleteCopy},
		10: {"Delete a book", m.deleteBook},
		11: {"Delete an author (cascade)", m.deleteAuthor},
	}
	return m
}

// Run shows the menu until the user picks 0 or input ends. Failed
// operations print one error line and the menu comes back.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.printMenu()
		answer, err := m.prompt.Line("Select an option: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out)
			fmt.Fprintln(m.out, "Closing shelf.")
			return nil
		}
		if err != nil {
			return err
		}

		choice, convErr := strconv.Atoi(answer)
		if convErr != nil {
			fmt.Fprintln(m.out, "Invalid input. Enter the number of an option.")
			continue
		}
		if choice == 0 {
			fmt.Fprintln(m.out, "Closing shelf.")
			return nil
		}
		action, ok := m.actions[choice]
		if !ok {
			fmt.Fprintln(m.out, "Invalid option. Try again.")
			continue
		}

		err = action.run(ctx)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, types.ErrNoChanges):
			fmt.Fprintln(m.out, "No changes applied.")
		default:
			m.render.Error(err)
		}
	}
}

func (m *Menu) printMenu() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "=== LIBRARY CATALOG ===")
	for i := 1; i <= len(m.actions); i++ {
		fmt.Fprintf(m.out, "%2d. %s\n", i, m.actions[i].label)
	}
	fmt.Fprintf(m.out, "%2d. %s\n", 0, "Exit")
}

func (m *Menu) createAuthor(ctx context.Context) error {
	fmt.Fprintln(m.out, "\n--- New author ---")
	first, err := m.prompt.Line("First name: ")
	if err != nil {
		return err
	}
	last, err := m.prompt.Line("Last name: ")
	if err != nil {
		return err
	}
	nationality, err := m.prompt.Line("Nationality: ")
	if err != nil {
		return err
	}
	born, err := m.prompt.Date("Birth date (dd/MM/yyyy): ")
	if err != nil {
		return err
	}
	author := types.NewAuthor(first, last, nationality, born)

	books, err := m.prompt.Int("How many books do you want to add? ", defaultBookCount)
	if err != nil {
		return err
	}
	for i := 1; i <= books; i++ {
		book, err := m.readBook(i)
		if err != nil {
			return err
		}
		author.AddBook(book)
	}

	created, err := m.catalog.CreateAuthorWithGraph(ctx, author)
	if err != nil {
		return err
	}
	return m.render.AuthorCreated(created)
}

func (m *Menu) readBook(n int) (*types.Book, error) {
	fmt.Fprintf(m.out, "\n--- Book %d ---\n", n)
	title, err := m.prompt.Line("Title: ")
	if err != nil {
		return nil, err
	}
	isbn, err := m.prompt.Line("ISBN: ")
	if err != nil {
		return nil, err
	}
	published, err := m.prompt.Date("Publication date (dd/MM/yyyy): ")
	if err != nil {
		return nil, err
	}
	pages, err := m.prompt.Int("Pages: ", defaultPages)
	if err != nil {
		return nil, err
	}
	book := types.NewBook(title, isbn, published, pages)

	copies, err := m.prompt.Int(fmt.Sprintf("How many copies of %q? ", title), defaultCopyCount)
	if err != nil {
		return nil, err
	}
	for j := 1; j <= copies; j++ {
		fmt.Fprintf(m.out, "--- Copy %d of book %d ---\n", j, n)
		code, err := m.prompt.Line("Copy code (e.g. EJ-101): ")
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(m.out, "Valid statuses: %s\n", types.StatusTokens())
		status, err := m.prompt.Status("Status: ")
		if err != nil {
			return nil, err
		}
		location, err := m.prompt.Line("Location (e.g. Shelf A3): ")
		if err != nil {
			return nil, err
		}
		c := types.NewCopy(code, location)
		c.Status = status
		book.AddCopy(c)
	}
	return book, nil
}

func (m *Menu) addCopy(ctx context.Context) error {
	isbn, err := m.prompt.Line("Book ISBN: ")
	if err != nil {
		return err
	}
	code, err := m.prompt.Line("New copy code: ")
	if err != nil {
		return err
	}
	res, err := m.catalog.AddCopyToExistingBook(ctx, isbn, code)
	if err != nil {
		return err
	}
	return m.render.CopyAdded(res)
}

func (m *Menu) listAuthors(ctx context.Context) error {
	list, err := m.catalog.ListAllAuthors(ctx)
	if err != nil {
		return err
	}
	return m.render.Authors(list)
}

func (m *Menu) findBook(ctx context.Context) error {
	id, ok, err := m.prompt.ID("Book id: ", "book")
	if err != nil || !ok {
		return err
	}
	details, err := m.catalog.FindBookByID(ctx, id)
	if err != nil {
		return err
	}
	return m.render.Book(details)
}

func (m *Menu) findCopies(ctx context.Context) error {
	fmt.Fprintf(m.out, "Valid statuses: %s\n", types.StatusTokens())
	token, err := m.prompt.Line("Status to search for: ")
	if err != nil {
		return err
	}
	list, err := m.catalog.FindCopiesByStatus(ctx, token)
	if err != nil {
		return err
	}
	return m.render.Copies(token, list)
}

func (m *Menu) showStats(ctx context.Context) error {
	stats, err := m.catalog.Statistics(ctx)
	if err != nil {
		return err
	}
	return m.render.Stats(stats)
}

func (m *Menu) updateCopyStatus(ctx context.Context) error {
	code, err := m.prompt.Line("Copy code: ")
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Valid statuses: %s\n", types.StatusTokens())
	token, err := m.prompt.Line("New status: ")
	if err != nil {
		return err
	}
	c, err := m.catalog.UpdateCopyStatus(ctx, code, token)
	if err != nil {
		return err
	}
	return m.render.CopyStatus(c)
}

func (m *Menu) updateBook(ctx context.Context) error {
	id, ok, err := m.prompt.ID("Book id: ", "book")
	if err != nil || !ok {
		return err
	}
	title, err := m.prompt.Line("New title (leave empty to keep): ")
	if err != nil {
		return err
	}
	pages, err := m.prompt.Int("New page count (0 to keep): ", 0)
	if err != nil {
		return err
	}
	u, err := m.catalog.UpdateBookFields(ctx, id, title, pages)
	if err != nil {
		return err
	}
	return m.render.BookUpdated(u)
}

func (m *Menu) deleteCopy(ctx context.Context) error {
	code, err := m.prompt.Line("Copy code to delete: ")
	if err != nil {
		return err
	}
	c, err := m.catalog.DeleteCopy(ctx, code)
	if err != nil {
		return err
	}
	return m.render.CopyDeleted(c)
}

func (m *Menu) deleteBook(ctx context.Context) error {
	id, ok, err := m.prompt.ID("Book id to delete: ", "book")
	if err != nil || !ok {
		return err
	}
	rm, err := m.catalog.DeleteBook(ctx, id)
	if err != nil {
		return err
	}
	return m.render.BookDeleted(rm)
}

func (m *Menu) deleteAuthor(ctx context.Context) error {
	id, ok, err := m.prompt.ID("Author id to delete: ", "author")
	if err != nil || !ok {
		return err
	}
	rm, err := m.catalog.DeleteAuthor(ctx, id)
	if err != nil {
		return err
	}
	return m.render.AuthorDeleted(rm)
}
