package handler

import (
	"context"
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

// ClassHandler handles class creation, the approval workflow, edits and
// the public listing.
type ClassHandler struct {
	classService *service.ClassService
	userService  *service.UserService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService, userService *service.UserService) *ClassHandler {
	return &ClassHandler{classService: classService, userService: userService}
}

// CreateClass godoc
// POST /classes (instructor)
// The class is attributed to the token's identity, not a body field.
func (h *ClassHandler) CreateClass(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	instructor, err := h.userService.GetByEmail(c.Request.Context(), claims.Email)
	if err != nil || instructor == nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	class, err := h.classService.Create(c.Request.Context(), instructor, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"class": class})
}

// ListClasses godoc
// GET /classes (admin)
// Every class regardless of status, for the review queue.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// ListOwnClasses godoc
// GET /classes/instructor/:email (instructor, self-only)
func (h *ClassHandler) ListOwnClasses(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims.Email != c.Param("email") {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	classes, err := h.classService.ListByInstructor(c.Request.Context(), claims.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// ListApproved godoc
// GET /approvedClasses (public)
// Approved classes ranked by enrollment, most popular first.
func (h *ClassHandler) ListApproved(c *gin.Context) {
	classes, err := h.classService.ListApproved(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// GetClass godoc
// GET /class/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	class, err := h.classService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// UpdateClass godoc
// PATCH /class/:id (owner or admin)
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	isAdmin, err := h.isAdmin(c, claims.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	class, err := h.classService.UpdateDetails(c.Request.Context(), id, &req, claims.Email, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClassNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrNotClassOwner):
			response.Fail(c, http.StatusForbidden, response.ErrNotResourceOwner)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// AttachFeedback godoc
// PATCH /instructor/class/:id
// Overwrites the review feedback text on a class.
func (h *ClassHandler) AttachFeedback(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.FeedbackRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.classService.AttachFeedback(c.Request.Context(), id, req.Feedback); err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "feedback saved"})
}

// ApproveClass godoc
// PATCH /approve/classes/:id (admin)
func (h *ClassHandler) ApproveClass(c *gin.Context) {
	h.setStatus(c, h.classService.Approve)
}

// DenyClass godoc
// PATCH /deny/classes/:id (admin)
func (h *ClassHandler) DenyClass(c *gin.Context) {
	h.setStatus(c, h.classService.Deny)
}

// IncrementEnrollment godoc
// PATCH /class/updateCount/:classId
// Claims one seat after a completed payment. Fails when sold out.
func (h *ClassHandler) IncrementEnrollment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("classId"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.classService.IncrementEnrollment(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrClassNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrNoSeatsAvailable):
			response.Fail(c, http.StatusConflict, response.ErrNoSeatsAvailable)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "enrollment updated"})
}

func (h *ClassHandler) setStatus(c *gin.Context, transition func(ctx context.Context, id int64) error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := transition(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "status updated"})
}

func (h *ClassHandler) isAdmin(c *gin.Context, email string) (bool, error) {
	role, err := h.userService.RoleOf(c.Request.Context(), email)
	if err != nil {
		return false, err
	}
	return role == model.RoleAdmin, nil
}
