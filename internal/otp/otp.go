// Package otp generates the one-time codes emailed during registration.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// codeSpace covers every 6-digit value: 100000 + [0, 900000).
const (
	codeMin   = 100000
	codeRange = 900000
)

// Generate returns a uniformly distributed 6-digit code. The code is a
// usability secret with a short validity window, not a long-term
// credential; leading digit is never zero so the string is always six
// characters.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", codeMin+n.Int64()), nil
}
