// Package verification provides one-time e-mail verification codes.
package verification

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"net/mail"
	"strings"

	"freelance/internal/pkg/errs"
)

const CodeLength = 6

var codeUpperBound = big.NewInt(1_000_000)

// Code is a six digit one-time code.
type Code string

// NewCode draws a uniformly distributed code from crypto/rand.
func NewCode() (Code, error) {
	n, err := rand.Int(rand.Reader, codeUpperBound)
	if err != nil {
		return "", fmt.Errorf("draw verification code: %w", err)
	}
	return Code(fmt.Sprintf("%0*d", CodeLength, n.Int64())), nil
}

// ParseCode validates user input.
func ParseCode(s string) (Code, error) {
	s = strings.TrimSpace(s)
	if len(s) != CodeLength {
		return "", errs.NewValueIsInvalidErrorWithCause("code", fmt.Errorf("must have %d digits", CodeLength))
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", errs.NewValueIsInvalidErrorWithCause("code", fmt.Errorf("must have %d digits", CodeLength))
		}
	}
	return Code(s), nil
}

// Matches compares in constant time.
func (c Code) Matches(other Code) bool {
	return subtle.ConstantTimeCompare([]byte(c), []byte(other)) == 1
}

func (c Code) String() string {
	return string(c)
}

// NormalizeEmail is the key codes are stored under.
func NormalizeEmail(email string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	return strings.ToLower(addr.Address), nil
}
