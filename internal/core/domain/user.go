package domain

import (
	"regexp"
	"strings"
	"time"
)

// PasswordSymbols lists the special characters a password may contain.
const PasswordSymbols = "@$!%*#?&"

var passwordCharset = regexp.MustCompile(`^[A-Za-z\d@$!%*#?&]{8,}$`)

// User is a registered account. The password is only ever held as a bcrypt hash.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidatePassword enforces the complexity policy: at least eight characters
// from the allowed set, with at least one letter, one digit and one symbol.
func ValidatePassword(password string) error {
	if !passwordCharset.MatchString(password) {
		return ErrWeakPassword
	}

	var letter, digit, symbol bool
	for _, r := range password {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}
	if !letter || !digit || !symbol {
		return ErrWeakPassword
	}
	return nil
}
