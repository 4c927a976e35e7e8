package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"simple", "Apple Inc", "apple-inc", false},
		{"puntuación", "Apple, Inc.", "apple-inc", false},
		{"conserva números", "3M Company", "3m-company", false},
		{"acentos", "Café Ñandú", "cafe-nandu", false},
		{"recorta guiones", "---ibm---", "ibm", false},
		{"espacios múltiples", "  Big    Blue  ", "big-blue", false},
		{"ya es slug", "apple-inc", "apple-inc", false},
		{"vacío", "", "", true},
		{"solo símbolos", "@#$%", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Make(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmpty)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"apple-inc", true},
		{"3m", true},
		{"", false},
		{"Apple", false},
		{"a b", false},
		{"a/b", false},
		{"-apple", false},
		{"apple--inc", false},
		{"café", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.input))
		})
	}
}
