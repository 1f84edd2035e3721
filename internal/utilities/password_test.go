package utilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"all criteria met", "Abcdef1!", true},
		{"longer valid password", "Sup3r-Secret!", true},
		{"too short", "Ab1!xyz", false},
		{"no lowercase", "ABCDEF1!", false},
		{"no uppercase", "abcdef1!", false},
		{"no digit", "Abcdefg!", false},
		{"no symbol", "Abcdefg1", false},
		{"empty", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			verdict := ValidatePassword(c.password)
			assert.Equal(t, c.valid, verdict.IsValid)
		})
	}
}

func TestValidatePasswordCriteria(t *testing.T) {
	verdict := ValidatePassword("abcdefgh")
	assert.True(t, verdict.MinLength)
	assert.True(t, verdict.HasLowercase)
	assert.False(t, verdict.HasUppercase)
	assert.False(t, verdict.HasDigit)
	assert.False(t, verdict.HasSymbol)
	assert.False(t, verdict.IsValid)
}

func TestValidatePasswordSymbolSet(t *testing.T) {
	for _, sym := range []string{"!", "@", "#", "[", "]", "?", "'", "\""} {
		verdict := ValidatePassword("Abcdefg1" + sym)
		assert.True(t, verdict.HasSymbol, "symbol %q should count", sym)
	}
	// a space is not in the punctuation set
	verdict := ValidatePassword("Abcdefg1 ")
	assert.False(t, verdict.HasSymbol)
}
