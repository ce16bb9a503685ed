package types

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Date layouts.
const (
	// DateLayout is the storage and JSON form.
	DateLayout = "2006-01-02"

	// ConsoleDateLayout is the dd/MM/yyyy form typed at the console. Single
	// digit days and months are accepted.
	ConsoleDateLayout = "2/1/2006"

	// DisplayDateLayout renders dates back to the console.
	DisplayDateLayout = "02/01/2006"
)

// storedDateLayouts are the forms a date column may come back in. SQLite
// keeps TEXT as written; some drivers hand back full timestamps.
var storedDateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

// Date is a calendar date without time of day. The zero Date means "unset"
// and is stored as NULL.
type Date struct {
	t time.Time
}

// NewDate returns the date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current local date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a dd/MM/yyyy console date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(ConsoleDateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: date %q is not dd/MM/yyyy", ErrInvalidArgument, s)
	}
	return DateOf(t), nil
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return d.t
}

// Equal reports whether both dates denote the same day.
func (d Date) Equal(o Date) bool {
	return d.t.Equal(o.t)
}

// String returns the yyyy-mm-dd form, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Display returns the dd/MM/yyyy form, or "-" for the zero Date.
func (d Date) Display() string {
	if d.IsZero() {
		return "-"
	}
	return d.t.Format(DisplayDateLayout)
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.parseStored(v)
	case []byte:
		return d.parseStored(string(v))
	default:
		return fmt.Errorf("scanning date: unsupported type %T", src)
	}
}

func (d *Date) parseStored(s string) error {
	if s == "" {
		*d = Date{}
		return nil
	}
	for _, layout := range storedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*d = DateOf(t)
			return nil
		}
	}
	return fmt.Errorf("scanning date: unrecognized value %q", s)
}

// MarshalJSON encodes the date as "yyyy-mm-dd", or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts "yyyy-mm-dd" or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	s = strings.Trim(s, `"`)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("decoding date %q: %w", s, err)
	}
	*d = DateOf(t)
	return nil
}
