package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/marketplace-reputation/internal/middleware"
	"github.com/iliyamo/marketplace-reputation/internal/model"
	"github.com/iliyamo/marketplace-reputation/internal/service"
)

// CommentHandler exposes the moderation engine and the pending-comment
// relay over HTTP.
type CommentHandler struct {
	Auth     *service.AuthService
	Comments *service.CommentService
	Relay    *service.RelayService
}

func NewCommentHandler(a *service.AuthService, cs *service.CommentService, r *service.RelayService) *CommentHandler {
	return &CommentHandler{Auth: a, Comments: cs, Relay: r}
}

type createCommentReq struct {
	Message string `json:"message"`
	Grade   int    `json:"grade"`
	// Email identifies an unregistered author; it is required for anonymous
	// submissions and ignored for authenticated ones.
	Email string `json:"email"`
}

type updateCommentReq struct {
	Message string `json:"message"`
	Grade   int    `json:"grade"`
}

type approveReq struct {
	Approve bool `json:"approve"`
}

// List returns the seller's comments under the caller's visibility.
func (h *CommentHandler) List(c echo.Context) error {
	sellerID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seller id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	actor, err := h.actor(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load actor failed"})
	}
	views, err := h.Comments.ListBySeller(ctx, sellerID, actor)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": views})
}

// Get returns one comment if the caller is allowed to see it.
func (h *CommentHandler) Get(c echo.Context) error {
	sellerID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seller id"})
	}
	commentID, err := pathID(c, "cid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid comment id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	actor, err := h.actor(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load actor failed"})
	}
	view, err := h.Comments.Get(ctx, sellerID, commentID, actor)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// Create accepts a comment from an authenticated user, or captures a
// pending one when the caller is anonymous and supplies the email they
// intend to register with.
func (h *CommentHandler) Create(c echo.Context) error {
	sellerID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seller id"})
	}
	var req createCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	actor, err := h.actor(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load actor failed"})
	}
	if actor == nil {
		email := strings.TrimSpace(req.Email)
		if email == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authenticate or provide the email you will register with"})
		}
		if err := h.Relay.Capture(ctx, email, sellerID, req.Message, req.Grade); err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusAccepted, echo.Map{
			"status": "comment held until your registration is approved",
		})
	}
	view, err := h.Comments.Create(ctx, sellerID, req.Message, req.Grade, *actor)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"comment": view,
		"status":  "created, pending verification",
	})
}

// Update edits a comment; only its author or an admin may do so.
func (h *CommentHandler) Update(c echo.Context) error {
	sellerID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seller id"})
	}
	commentID, err := pathID(c, "cid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid comment id"})
	}
	var req updateCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	actor, err := h.requireActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	view, err := h.Comments.Update(ctx, sellerID, commentID, req.Message, req.Grade, *actor)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// Delete removes a comment; only its author or an admin may do so.
func (h *CommentHandler) Delete(c echo.Context) error {
	sellerID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seller id"})
	}
	commentID, err := pathID(c, "cid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid comment id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	actor, err := h.requireActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := h.Comments.Delete(ctx, sellerID, commentID, *actor); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Approve confirms or rejects a comment (admin route; role enforced by
// middleware).
func (h *CommentHandler) Approve(c echo.Context) error {
	sellerID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seller id"})
	}
	commentID, err := pathID(c, "cid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid comment id"})
	}
	var req approveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	view, err := h.Comments.Approve(ctx, sellerID, commentID, req.Approve)
	if err != nil {
		return fail(c, err)
	}
	if !req.Approve {
		return c.JSON(http.StatusOK, echo.Map{"status": "comment rejected and removed"})
	}
	return c.JSON(http.StatusOK, view)
}

// LoadActor resolves a verified subject to its account for the role
// middleware.
func (h *CommentHandler) LoadActor(c echo.Context, email string) (*model.User, error) {
	ctx, cancel := reqCtx(c)
	defer cancel()
	return h.Auth.CurrentActor(ctx, email)
}

// actor resolves the optional current actor from the verified token
// subject. Anonymous requests yield (nil, nil).
func (h *CommentHandler) actor(c echo.Context) (*model.User, error) {
	ctx, cancel := reqCtx(c)
	defer cancel()
	return h.Auth.CurrentActor(ctx, middleware.Subject(c))
}

// requireActor is like actor but fails for anonymous callers.
func (h *CommentHandler) requireActor(c echo.Context) (*model.User, error) {
	actor, err := h.actor(c)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, echo.ErrUnauthorized
	}
	return actor, nil
}

func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.ErrBadRequest
	}
	return id, nil
}
