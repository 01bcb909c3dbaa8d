package handler

import (
    "context"  // provides context with cancellation for service calls
    "net/http" // HTTP status codes and primitives
    "strings"  // string manipulation utilities
    "time"     // timeouts for service calls

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/iliyamo/marketplace-reputation/internal/service"
)

// AuthHandler bundles dependencies for the account-lifecycle endpoints.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(a *service.AuthService) *AuthHandler { return &AuthHandler{Auth: a} }

// ----- DTOs -----

type registerReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type confirmUserReq struct {
	Email   string `json:"email"`
	Approve bool   `json:"approve"`
}
type resetInitReq struct {
	Email string `json:"email"`
}
type resetVerifyReq struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}
type resetCommitReq struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// Register creates a SELLER account and mails the confirmation link. The
// account stays unusable until the email round trip and admin review are
// both complete.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Auth.Register(ctx, req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// ConfirmEmail consumes the token from the emailed confirmation link.
func (h *AuthHandler) ConfirmEmail(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	msg, err := h.Auth.ConfirmEmail(ctx, token)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": msg})
}

// ConfirmUser is the admin decision on a registration: approve activates
// the account (and replays any pending comment), reject deletes it.
func (h *AuthHandler) ConfirmUser(c echo.Context) error {
	var req confirmUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Auth.ConfirmUser(ctx, req.Email, req.Approve)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Login verifies credentials and the activation gate, then issues a token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Auth.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// InitiateReset mails a 6-digit code with a 15 minute lifetime.
func (h *AuthHandler) InitiateReset(c echo.Context) error {
	var req resetInitReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Auth.InitiatePasswordReset(ctx, req.Email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// VerifyReset reports whether the code currently matches, without
// consuming it.
func (h *AuthHandler) VerifyReset(c echo.Context) error {
	var req resetVerifyReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Email) == "" || req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and code required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	return c.JSON(http.StatusOK, echo.Map{"valid": h.Auth.VerifyResetCode(ctx, req.Email, req.Code)})
}

// CommitReset replaces the password once the code matches.
func (h *AuthHandler) CommitReset(c echo.Context) error {
	var req resetCommitReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Email) == "" || req.Code == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, code and new_password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Auth.ResetPassword(ctx, req.Email, req.Code, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// reqCtx bounds every service call to keep a slow database from pinning
// request goroutines.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}
