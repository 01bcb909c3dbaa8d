package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/marketplace-reputation/internal/utils"
)

// subjectKey is the context key under which the verified token subject
// (the user's email) is stored for downstream middleware and handlers.
const subjectKey = "subject"

// JWTAuth returns an Echo middleware that validates a Bearer token with
// the given codec and injects the token's subject into the request
// context. Protected routes wrap themselves with this middleware so that
// handlers can resolve the current actor via Subject(c).
func JWTAuth(codec *utils.TokenCodec) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")
            subject, err := codec.Verify(raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            c.Set(subjectKey, subject)
            return next(c)
        }
    }
}

// OptionalJWT extracts the subject when a valid Bearer token is present
// and otherwise lets the request through as anonymous. Used on read
// endpoints whose visibility rules depend on who is asking.
func OptionalJWT(codec *utils.TokenCodec) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if strings.HasPrefix(auth, "Bearer ") {
                if subject, err := codec.Verify(strings.TrimPrefix(auth, "Bearer ")); err == nil {
                    c.Set(subjectKey, subject)
                }
            }
            return next(c)
        }
    }
}

// Subject returns the verified token subject stored by JWTAuth or
// OptionalJWT, or "" for anonymous requests.
func Subject(c echo.Context) string {
    if v, ok := c.Get(subjectKey).(string); ok {
        return v
    }
    return ""
}
