package utils // package utils provides helper functions for tokens, hashing and validation

import (
    "errors" // sentinel error for rejected tokens
    "time"   // expiry calculation

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidToken is the single failure a caller sees for a token that is
// malformed, carries a bad signature or has expired. Downstream code never
// distinguishes between those cases.
var ErrInvalidToken = errors.New("invalid token")

// TokenCodec issues and validates HS256 JWTs whose subject is a user email.
// The signing key is explicit construction-time configuration rather than
// ambient state, so the codec can be exercised in isolation. No key
// rotation is supported.
type TokenCodec struct {
    secret []byte
    ttl    time.Duration
}

// NewTokenCodec builds a codec from the signing secret and token lifetime.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
    return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given subject email. The JWT includes the
// standard claims: subject (sub), expiration (exp) and issued at (iat).
func (tc *TokenCodec) Issue(subject string) (string, error) {
    now := time.Now().UTC()
    claims := jwt.MapClaims{
        "sub": subject,
        "exp": now.Add(tc.ttl).Unix(),
        "iat": now.Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return t.SignedString(tc.secret)
}

// Verify parses the token, checks signature and expiry, and returns the
// subject email. Any failure is reported as ErrInvalidToken.
func (tc *TokenCodec) Verify(token string) (string, error) {
    tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
        // Reject tokens signed with anything other than HMAC.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return tc.secret, nil
    })
    if err != nil || !tok.Valid {
        return "", ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return "", ErrInvalidToken
    }
    sub, ok := claims["sub"].(string)
    if !ok || sub == "" {
        return "", ErrInvalidToken
    }
    return sub, nil
}

// IsValid reports whether the token verifies and its subject matches the
// expected one.
func (tc *TokenCodec) IsValid(token, expectedSubject string) bool {
    sub, err := tc.Verify(token)
    return err == nil && sub == expectedSubject
}
