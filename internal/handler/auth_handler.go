package handler

import (
	"net/http"

	"github.com/artoasis/artoasis-backend/internal/model"
	"github.com/artoasis/artoasis-backend/internal/response"
	"github.com/artoasis/artoasis-backend/internal/service"
	"github.com/artoasis/artoasis-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// AuthHandler issues session tokens.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// IssueToken godoc
// POST /jwt
// Signs a token for the given identity claim. Identity verification happens
// upstream (the identity provider); this endpoint only mints the session.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req model.TokenRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, err := h.authService.IssueToken(req.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token})
}
