package handler

import (
	"net/http"

	"github.com/artoasis/artoasis-backend/internal/middleware"
	"github.com/artoasis/artoasis-backend/internal/model"
	"github.com/artoasis/artoasis-backend/internal/response"
	"github.com/artoasis/artoasis-backend/internal/service"
	"github.com/artoasis/artoasis-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles the payment intent and completion endpoints.
type PaymentHandler struct {
	enrollmentService *service.EnrollmentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(enrollmentService *service.EnrollmentService) *PaymentHandler {
	return &PaymentHandler{enrollmentService: enrollmentService}
}

// CreatePaymentIntent godoc
// POST /create-payment-intent
// Returns the processor's client secret for browser-side confirmation.
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var req model.CreatePaymentIntentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	clientSecret, err := h.enrollmentService.InitiatePayment(c.Request.Context(), req.Price)
	if err != nil {
		response.Fail(c, http.StatusBadGateway, response.ErrPaymentGateway)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"client_secret": clientSecret})
}

// RecordPayment godoc
// POST /payments
// Records a confirmed charge and clears the student's selections for that
// class in one transaction. Seat accounting is the separate updateCount
// call driven by the same client flow.
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.RecordPaymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	p, deleted, err := h.enrollmentService.CompletePayment(c.Request.Context(), claims.Email, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"payment":            p,
		"selections_removed": deleted,
	})
}

// ListPayments godoc
// GET /payments/enrolled/:email (self-only)
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims.Email != c.Param("email") {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	payments, err := h.enrollmentService.ListPayments(c.Request.Context(), claims.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}
