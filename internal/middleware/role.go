package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/marketplace-reputation/internal/model"
)

// actorKey is the context key for the resolved actor.
const actorKey = "actor"

// RequireRole loads the actor behind the verified subject and enforces
// that its role is one of the allowed set. The loaded actor is stored in
// the context so handlers don't hit the database twice. It assumes
// JWTAuth ran earlier in the chain.
func RequireRole(load func(c echo.Context, email string) (*model.User, error), roles ...string) echo.MiddlewareFunc {
    allowed := make(map[string]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            subject := Subject(c)
            if subject == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
            }
            actor, err := load(c, subject)
            if err != nil {
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load actor failed"})
            }
            if actor == nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
            }
            if !allowed[actor.Role] {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            c.Set(actorKey, actor)
            return next(c)
        }
    }
}

// Actor returns the actor stored by RequireRole, or nil.
func Actor(c echo.Context) *model.User {
    if v, ok := c.Get(actorKey).(*model.User); ok {
        return v
    }
    return nil
}
