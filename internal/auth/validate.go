package auth

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ErrWeakPassword is the user-facing strength rule violation.
var ErrWeakPassword = errors.New("password must be at least 8 characters long and include uppercase, lowercase, number, and symbol")

// ValidateEmail checks basic email shape.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return errors.New("invalid email format")
	}
	return nil
}

// ValidatePassword enforces the signup strength rules: minimum 8 characters
// with at least one lowercase, uppercase, digit and symbol.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	if !lower || !upper || !digit || !symbol {
		return ErrWeakPassword
	}
	return nil
}

// ValidateSignup checks the full signup payload.
func ValidateSignup(firstName, lastName, email, password string) error {
	if firstName == "" || lastName == "" || email == "" || password == "" {
		return errors.New("all fields are required")
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePassword(password)
}
