package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Fallbacks used when a number typed at the console does not parse.
const (
	defaultBookCount = 0
	defaultPages     = 100
	defaultCopyCount = 0
)

// Prompter reads one answer per line. Unparsable answers fall back to a
// default and print a warning instead of failing.
type Prompter struct {
	sc    *bufio.Scanner
	out   io.Writer
	today func() types.Date
}

// NewPrompter reads answers from in and writes labels and warnings to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		sc:    bufio.NewScanner(in),
		out:   out,
		today: types.Today,
	}
}

// Line prints label and returns the next line without surrounding
// whitespace. Returns io.EOF when input is exhausted.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.sc.Text()), nil
}

// Int reads an integer, falling back to def with a warning.
func (p *Prompter) Int(label string, def int) (int, error) {
	s, err := p.Line(label)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(s)
	if convErr != nil {
		p.warnf("Invalid number, assuming %d.", def)
		return def, nil
	}
	return n, nil
}

// ID reads a record identity. ok is false, after an error line has been
// printed, when the answer is not an integer.
func (p *Prompter) ID(label, what string) (id int64, ok bool, err error) {
	s, err := p.Line(label)
	if err != nil {
		return 0, false, err
	}
	id, convErr := strconv.ParseInt(s, 10, 64)
	if convErr != nil {
		fmt.Fprintf(p.out, "Error: the %s id must be an integer.\n", what)
		return 0, false, nil
	}
	return id, true, nil
}

// Date reads a dd/MM/yyyy date, falling back to today with a warning.
func (p *Prompter) Date(label string) (types.Date, error) {
	s, err := p.Line(label)
	if err != nil {
		return types.Date{}, err
	}
	d, parseErr := types.ParseDate(s)
	if parseErr != nil {
		p.warnf("Invalid date format, using today's date.")
		return p.today(), nil
	}
	return d, nil
}

// Status reads a copy status token, falling back to available with a
// warning.
func (p *Prompter) Status(label string) (types.Status, error) {
	s, err := p.Line(label)
	if err != nil {
		return "", err
	}
	status, parseErr := types.ParseStatus(s)
	if parseErr != nil {
		p.warnf("Invalid status, using %s.", types.StatusAvailable)
		return types.StatusAvailable, nil
	}
	return status, nil
}

func (p *Prompter) warnf(format string, args ...any) {
	fmt.Fprintf(p.out, "Warning: "+format+"\n", args...)
}
