package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"São Paulo", "sao-paulo"},
		{"Provence-Alpes-Côte d'Azur", "provence-alpes-cote-d-azur"},
		{"TYROL", "tyrol"},
		{"  spaced   out  ", "spaced-out"},
		{"Zürich", "zurich"},
		{"", "region"},
		{"---", "region"},
		{"Area 51", "area-51"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.in), "input %q", tt.in)
	}
}
