package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"uppercases", "Patient's Name", "PATIENT'S NAME"},
		{"collapses newlines inside a value", "John\nSmith", "JOHN SMITH"},
		{"collapses runs of mixed whitespace", "a \t\n  b", "A B"},
		{"strips periods and commas", "INSURED'S I.D. NUMBER, 123", "INSURED'S ID NUMBER 123"},
		{"keeps colons slashes and apostrophes", "DOB: 01/02/1980", "DOB: 01/02/1980"},
		{"trims", "  hi  ", "HI"},
		{"punctuation between spaces leaves one space", "A . B", "A B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Patient's Name:   John\nSmith.  DOB: 01/02/1980",
		"already NORMALIZED TEXT",
		"a , b . c\t\td",
		"FEDERAL TAX I.D. NUMBER 12-3456789",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}
