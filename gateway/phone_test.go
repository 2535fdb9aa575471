package gateway

import (
	"errors"
	"testing"

	"github.com/phoneconnect/dial/api/errorkinds"
)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		number string
		valid  bool
	}{
		{"+919876543210", true},
		{"9876543", true},
		{"+123456789012345", true},
		{"123456", false},
		{"+1234567890123456", false},
		{"+91 98765 43210", false},
		{"++919876543210", false},
		{"", false},
		{"+", false},
		{"98765abc10", false},
	}

	for _, tt := range tests {
		err := ValidatePhone(tt.number)
		if tt.valid && err != nil {
			t.Errorf("%q: unexpected error %v", tt.number, err)
		}
		if !tt.valid && !errors.Is(err, errorkinds.ErrInvalidPhoneNumber) {
			t.Errorf("%q: expected ErrInvalidPhoneNumber, got %v", tt.number, err)
		}
	}
}
