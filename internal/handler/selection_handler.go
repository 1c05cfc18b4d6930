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

// SelectionHandler handles a student's pending class selections.
type SelectionHandler struct {
	enrollmentService *service.EnrollmentService
	userService       *service.UserService
}

// NewSelectionHandler creates a new SelectionHandler.
func NewSelectionHandler(enrollmentService *service.EnrollmentService, userService *service.UserService) *SelectionHandler {
	return &SelectionHandler{enrollmentService: enrollmentService, userService: userService}
}

// SelectClass godoc
// POST /selected/class
// Creates a pending selection for the caller. No seat is held.
func (h *SelectionHandler) SelectClass(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.SelectClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sel, err := h.enrollmentService.Select(c.Request.Context(), claims.Email, req.ClassID)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"selection": sel})
}

// ListSelections godoc
// GET /selected/classes/:email (self-only)
func (h *SelectionHandler) ListSelections(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims.Email != c.Param("email") {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	selections, err := h.enrollmentService.ListSelections(c.Request.Context(), claims.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"selections": selections})
}

// RemoveSelection godoc
// DELETE /selected/class/:id (owner or admin)
func (h *SelectionHandler) RemoveSelection(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	role, err := h.userService.RoleOf(c.Request.Context(), claims.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	err = h.enrollmentService.RemoveSelection(c.Request.Context(), id, claims.Email, role == model.RoleAdmin)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelectionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrNotSelectionOwner):
			response.Fail(c, http.StatusForbidden, response.ErrNotResourceOwner)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "selection removed"})
}
