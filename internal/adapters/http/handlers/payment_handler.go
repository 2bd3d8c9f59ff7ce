package handlers

import (
	"strconv"

	"montsion-scolarite/internal/adapters/http/middleware"
	"montsion-scolarite/internal/core/services"
	"montsion-scolarite/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles tuition payment endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// PaymentRequest represents a payment request body
type PaymentRequest struct {
	Amount int `json:"amount"`
}

// AddPayment records a tuition payment for a student
// @Summary Record a payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path int true "Student id"
// @Param body body PaymentRequest true "Payment amount"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/students/{id}/payment [post]
func (h *PaymentHandler) AddPayment(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)

	studentID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "Identifiant d'élève invalide")
	}

	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Corps de requête invalide")
	}

	student, err := h.paymentService.AddPayment(c.Context(), identity, studentID, req.Amount)
	if err != nil {
		return mapLedgerError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"student": student,
	})
}
