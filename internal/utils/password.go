package utils

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const passwordSymbols = "!@#$%^&*"

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidPassword enforces the account password policy: at least 8 characters,
// at least one digit, and at least one symbol from !@#$%^&*.
func ValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}
	return hasDigit && hasSymbol
}
