package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCardNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		valid  bool
	}{
		{"plain valid", "4561261212345467", true},
		{"spaced valid", "4561 2612 1234 5467", true},
		{"dashed valid", "4561-2612-1234-5467", true},
		{"checksum failure", "4561261212345464", false},
		{"empty", "", false},
		{"separators only", " - ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsCardNumber(tt.number))
		})
	}
}
