package types

import (
	"fmt"
	"strings"
)

// Status is the circulation state of a physical copy. Every transition
// between states is allowed.
type Status string

// Copy states, stored by their token.
const (
	StatusAvailable Status = "DISPONIBLE"
	StatusLoaned    Status = "PRESTADO"
	StatusInRepair  Status = "REPARACION"
	StatusRetired   Status = "BAJA"
)

// Statuses lists every copy state in display order.
var Statuses = []Status{
	StatusAvailable,
	StatusLoaned,
	StatusInRepair,
	StatusRetired,
}

// DefaultLocation is where a copy added to an existing book is shelved.
const DefaultLocation = "Almacén"

// ParseStatus matches token against the status tokens, ignoring case and
// surrounding whitespace. Returns ErrInvalidArgument when nothing matches.
func ParseStatus(token string) (Status, error) {
	want := strings.ToUpper(strings.TrimSpace(token))
	for _, s := range Statuses {
		if string(s) == want {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: status %q is not one of %s", ErrInvalidArgument, token, StatusTokens())
}

// StatusTokens returns the valid tokens as a comma separated list.
func StatusTokens() string {
	tokens := make([]string, len(Statuses))
	for i, s := range Statuses {
		tokens[i] = string(s)
	}
	return strings.Join(tokens, ", ")
}

// Valid reports whether s is one of the known states.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Copy is a physical item of a book on a shelf.
type Copy struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Status   Status `json:"status"`
	Location string `json:"location"`
	BookID   int64  `json:"book_id"`
}

// NewCopy returns an unsaved available copy.
func NewCopy(code, location string) *Copy {
	return &Copy{
		Code:     code,
		Status:   StatusAvailable,
		Location: location,
	}
}

// SetStatus moves the copy to status s.
func (c *Copy) SetStatus(s Status) error {
	if !s.Valid() {
		return fmt.Errorf("%w: status %q", ErrInvalidArgument, s)
	}
	c.Status = s
	return nil
}

// IsSaved reports whether the store has assigned the copy an identity.
func (c *Copy) IsSaved() bool {
	return c.ID != UnsavedID
}
