package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "dune", "dune"},
		{"trim and lower", "  Dune  ", "dune"},
		{"collapse whitespace", "the   left \t hand", "the left hand"},
		{"whitespace only", "   \t ", ""},
		{"empty", "", ""},
		{"diacritics", "Héloïse", "heloise"},
		{"mixed", "  Crónica  DE una  Muerte ", "cronica de una muerte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Query(tt.in))
		})
	}
}
