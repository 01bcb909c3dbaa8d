package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/marketplace-reputation/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/marketplace-reputation/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/iliyamo/marketplace-reputation/internal/model"
	"github.com/iliyamo/marketplace-reputation/internal/utils"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the account-lifecycle routes.  Everything under
// /v1/auth is reachable without a session: registration, the emailed
// confirmation link, login and the password-reset round trip.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	// Register a POST endpoint to handle seller registration at /v1/auth/register.
	g.POST("/register", a.Register)
	// The confirmation link from the registration email lands here with a
	// ?token= query parameter, so it must be a GET.
	g.GET("/confirm-email", a.ConfirmEmail)
	// Register a POST endpoint to handle user login at /v1/auth/login.
	g.POST("/login", a.Login)
	// Password reset is a three-step exchange: request a code, optionally
	// pre-check it, then commit the new password.
	g.POST("/password-reset", a.InitiateReset)
	g.POST("/password-reset/verify", a.VerifyReset)
	g.POST("/password-reset/confirm", a.CommitReset)
}

// RegisterAdmin registers the moderation endpoints.  All of them require a
// valid access token AND the ADMIN role; the role is resolved from the
// database on every request because tokens carry only the subject.
func RegisterAdmin(e *echo.Echo, a *handler.AuthHandler, cm *handler.CommentHandler, codec *utils.TokenCodec) {
	adminOnly := []echo.MiddlewareFunc{
		middleware.JWTAuth(codec),
		middleware.RequireRole(cm.LoadActor, model.RoleAdmin),
	}
	// Admin decision on a pending registration: approve or reject.
	e.POST("/v1/admin/users/confirm", a.ConfirmUser, adminOnly...)
	// Admin decision on a pending comment: approve publishes it and updates
	// the seller rating, reject deletes it.
	e.PUT("/v1/sellers/:id/comments/:cid/approve", cm.Approve, adminOnly...)
}

// RegisterSellers registers the seller-facing comment and rating routes.
// Reads and comment creation use OptionalJWT so both guests and logged-in
// users share the same paths; what each caller sees is decided by the
// service layer.  Edits and deletions require a session.
func RegisterSellers(e *echo.Echo, s *handler.SellerHandler, cm *handler.CommentHandler, codec *utils.TokenCodec) {
	// Publicly view a seller's aggregate rating.
	e.GET("/v1/sellers/:id/rating", s.GetRating, middleware.OptionalJWT(codec))

	g := e.Group("/v1/sellers/:id/comments")
	g.GET("", cm.List, middleware.OptionalJWT(codec))
	g.GET("/:cid", cm.Get, middleware.OptionalJWT(codec))
	// Creation is also open to guests: an anonymous request with an email in
	// the body is held until the matching registration is approved.
	g.POST("", cm.Create, middleware.OptionalJWT(codec))
	g.PUT("/:cid", cm.Update, middleware.JWTAuth(codec))
	g.DELETE("/:cid", cm.Delete, middleware.JWTAuth(codec))
}
