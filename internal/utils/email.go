package utils

import (
    "crypto/rand" // secure random source for reset codes
    "fmt"
    "math/big"
    "regexp"
    "strings"
)

// emailRe is a deliberately light check: local part, @, a domain that
// contains at least one dot and a TLD of two or more letters. Full RFC
// validation is out of scope; the confirmation round trip proves
// deliverability anyway.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[A-Za-z]{2,}$`)

// ValidEmail reports whether the address passes the RFC-light format check.
func ValidEmail(email string) bool {
    email = strings.TrimSpace(email)
    if email == "" {
        return false
    }
    return emailRe.MatchString(email)
}

// RandomDigits returns n decimal digits from a cryptographically secure
// source, zero-padded. Used for the 6-digit password-reset codes.
func RandomDigits(n int) (string, error) {
    max := big.NewInt(1)
    for i := 0; i < n; i++ {
        max.Mul(max, big.NewInt(10))
    }
    v, err := rand.Int(rand.Reader, max)
    if err != nil {
        return "", err
    }
    return fmt.Sprintf("%0*d", n, v), nil
}
