package utilities

import "strings"

const passwordSymbols = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?"

// PasswordVerdict reports each policy criterion separately so the caller
// can show per-criterion feedback, not just pass/fail.
type PasswordVerdict struct {
	IsValid      bool `json:"isValid"`
	MinLength    bool `json:"minLength"`
	HasLowercase bool `json:"hasLowercase"`
	HasUppercase bool `json:"hasUppercase"`
	HasDigit     bool `json:"hasDigit"`
	HasSymbol    bool `json:"hasSymbol"`
}

// ValidatePassword checks the signup password policy: at least 8
// characters, one lowercase, one uppercase, one digit, one symbol from a
// fixed punctuation set.
func ValidatePassword(password string) PasswordVerdict {
	verdict := PasswordVerdict{
		MinLength: len(password) >= 8,
	}
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			verdict.HasLowercase = true
		case r >= 'A' && r <= 'Z':
			verdict.HasUppercase = true
		case r >= '0' && r <= '9':
			verdict.HasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			verdict.HasSymbol = true
		}
	}
	verdict.IsValid = verdict.MinLength && verdict.HasLowercase &&
		verdict.HasUppercase && verdict.HasDigit && verdict.HasSymbol
	return verdict
}
