package states

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByCode(t *testing.T) {
	s, ok := ByCode("27")
	assert.True(t, ok)
	assert.Equal(t, "Maharashtra", s.Name)

	// Single digit input is zero-padded
	s, ok = ByCode("7")
	assert.True(t, ok)
	assert.Equal(t, "Delhi", s.Name)

	// Administrative codes beyond the state list are still registered
	s, ok = ByCode("99")
	assert.True(t, ok)
	assert.Equal(t, "Centre Jurisdiction", s.Name)

	_, ok = ByCode("55")
	assert.False(t, ok)
}

func TestCodeForName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"exact match", "Maharashtra", "27"},
		{"case insensitive", "maharashtra", "27"},
		{"karnataka", "Karnataka", "29"},
		{"partial match", "Tamil", "33"},
		{"whitespace trimmed", "  Delhi  ", "07"},
		{"unknown defaults", "Atlantis", DefaultCode},
		{"empty defaults", "", DefaultCode},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CodeForName(tc.input))
		})
	}
}

func TestNameForCode(t *testing.T) {
	assert.Equal(t, "Maharashtra", NameForCode("27"))
	assert.Equal(t, "West Bengal", NameForCode("19"))
	assert.Equal(t, "Centre Jurisdiction", NameForCode("99"))
	assert.Equal(t, "Unknown", NameForCode("55"))
	assert.Equal(t, "Unknown", NameForCode(""))
}

func TestCodeForCity(t *testing.T) {
	assert.Equal(t, "27", CodeForCity("Mumbai"))
	assert.Equal(t, "29", CodeForCity("bengaluru"))
	assert.Equal(t, "", CodeForCity("Gotham"))
}

func TestCodeFromAddress(t *testing.T) {
	tests := []struct {
		name     string
		address  string
		expected string
	}{
		{"city match", "12 MG Road, Bangalore", "29"},
		{"state name match", "Somewhere in West Bengal", "19"},
		{"pin code zone", "Flat 4, XYZ Society, 600042", "33"},
		{"pin zone delhi", "110001", "07"},
		{"no signal defaults", "somewhere unknown", DefaultCode},
		{"empty defaults", "", DefaultCode},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CodeFromAddress(tc.address))
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("27"))
	assert.True(t, IsValid("07"))
	assert.False(t, IsValid("00"))
}
