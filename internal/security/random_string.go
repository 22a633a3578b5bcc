// Package security generates secrets handed out to users, such as temporary
// passwords issued by an operator.
package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const (
	// TemporaryPasswordAlphabet leaves out characters that are easy to misread.
	TemporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	minTemporaryPassword      = 8
	maxTemporaryAttempts      = 64
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
	errNoMixedCase    = errors.New("could not draw a password with mixed character classes")
)

// RandomString draws length characters uniformly from alphabet using crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", errNegativeLength
	case length == 0:
		return "", nil
	case alphabet == "":
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphabet[position.Int64()])
	}
	return builder.String(), nil
}

// TemporaryPassword returns a password of at least eight characters holding an
// uppercase letter, a lowercase letter and a digit. Draws missing a class are
// discarded so the result stays uniform over the accepted set.
func TemporaryPassword(length int) (string, error) {
	length = max(length, minTemporaryPassword)
	for i := 0; i < maxTemporaryAttempts; i++ {
		candidate, err := RandomString(length, TemporaryPasswordAlphabet)
		if err != nil {
			return "", err
		}
		if hasMixedClasses(candidate) {
			return candidate, nil
		}
	}
	return "", errNoMixedCase
}

func hasMixedClasses(value string) bool {
	var upper, lower, digit bool
	for _, char := range value {
		switch {
		case char >= 'A' && char <= 'Z':
			upper = true
		case char >= 'a' && char <= 'z':
			lower = true
		case char >= '0' && char <= '9':
			digit = true
		}
	}
	return upper && lower && digit
}
