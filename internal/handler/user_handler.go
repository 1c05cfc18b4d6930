package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/artoasis/artoasis-backend/internal/middleware"
	"github.com/artoasis/artoasis-backend/internal/model"
	"github.com/artoasis/artoasis-backend/internal/response"
	"github.com/artoasis/artoasis-backend/internal/service"
	"github.com/artoasis/artoasis-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// UserHandler handles signup, user listings, role flags and promotion.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser godoc
// POST /users
// Idempotent signup: re-posting a registered email changes nothing and
// reports the existing account.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, created, err := h.userService.EnsureUser(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if !created {
		response.Success(c, http.StatusOK, gin.H{"message": "user already exists"})
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

// ListUsers godoc
// GET /users (admin)
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// ListInstructors godoc
// GET /instructors (public)
func (h *UserHandler) ListInstructors(c *gin.Context) {
	instructors, err := h.userService.ListInstructors(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"instructors": instructors})
}

// CheckRole godoc
// GET /users/:role/:email
// Self-only boolean role flag. An identity mismatch answers false with 200
// instead of an error, so the endpoint never confirms whether another
// account exists or what role it holds.
func (h *UserHandler) CheckRole(c *gin.Context) {
	role := model.ParseRole(c.Param("role"))
	if role == model.RoleNone {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidRole)
		return
	}

	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	has, err := h.userService.HasRole(c.Request.Context(), claims.Email, c.Param("email"), role)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{string(role): has})
}

// Promote godoc
// PATCH /users/:role/:id (admin)
// Grants the role named in the path to the user with the given ID.
func (h *UserHandler) Promote(c *gin.Context) {
	role := model.ParseRole(c.Param("role"))
	if role == model.RoleNone {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidRole)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.userService.Promote(c.Request.Context(), id, role); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "role updated"})
}
