package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		token   string
		want    Status
		wantErr bool
	}{
		{token: "DISPONIBLE", want: StatusAvailable},
		{token: "disponible", want: StatusAvailable},
		{token: "Prestado", want: StatusLoaned},
		{token: " reparacion ", want: StatusInRepair},
		{token: "baja", want: StatusRetired},
		{token: "AVAILABLE", wantErr: true},
		{token: "", wantErr: true},
		{token: "perdido", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseStatus(tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusTokens(t *testing.T) {
	assert.Equal(t, "DISPONIBLE, PRESTADO, REPARACION, BAJA", StatusTokens())
}

func TestNewCopyDefaultsToAvailable(t *testing.T) {
	c := NewCopy("EJ-9", DefaultLocation)
	assert.Equal(t, StatusAvailable, c.Status)
	assert.Equal(t, "Almacén", c.Location)
	assert.False(t, c.IsSaved())
}

func TestCopySetStatus(t *testing.T) {
	c := NewCopy("EJ-1", "A1")

	// Every transition is allowed, including back to the start.
	for _, s := range []Status{StatusRetired, StatusLoaned, StatusInRepair, StatusAvailable} {
		require.NoError(t, c.SetStatus(s))
		assert.Equal(t, s, c.Status)
	}

	err := c.SetStatus("LOST")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, StatusAvailable, c.Status, "status should not change on error")
}

func TestBookAddCopy(t *testing.T) {
	b := NewBook("Title", "isbn", Date{}, 10)
	b.ID = 5
	c := NewCopy("EJ-1", "A1")

	b.AddCopy(c)
	assert.Equal(t, int64(5), c.BookID)
	assert.Equal(t, []*Copy{c}, b.Copies)
}
