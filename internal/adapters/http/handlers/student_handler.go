package handlers

import (
	"errors"

	"montsion-scolarite/internal/adapters/http/middleware"
	"montsion-scolarite/internal/core/domain"
	"montsion-scolarite/internal/core/services"
	"montsion-scolarite/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StudentHandler handles student ledger endpoints
type StudentHandler struct {
	studentService *services.StudentService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService *services.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// List returns the full student ledger
// @Summary List students
// @Tags Students
// @Produce json
// @Success 200 {array} domain.Student
// @Failure 401 {object} response.Response
// @Router /api/students [get]
func (h *StudentHandler) List(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)

	students, err := h.studentService.List(c.Context(), identity)
	if err != nil {
		return mapLedgerError(c, err)
	}

	return c.JSON(students)
}

// Create enrolls a new student
// @Summary Enroll a student
// @Tags Students
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.Response
// @Router /api/students [post]
func (h *StudentHandler) Create(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)

	var fields map[string]any
	if err := c.BodyParser(&fields); err != nil {
		return response.BadRequest(c, "Corps de requête invalide")
	}

	student, err := h.studentService.Create(c.Context(), identity, fields)
	if err != nil {
		return mapLedgerError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"student": student,
	})
}

// Search filters students by name
// @Summary Search students
// @Tags Students
// @Produce json
// @Param q query string false "Substring matched against nom or prenoms"
// @Success 200 {array} domain.Student
// @Failure 401 {object} response.Response
// @Router /api/search-students [get]
func (h *StudentHandler) Search(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	query := c.Query("q")

	students, err := h.studentService.Search(c.Context(), identity, query)
	if err != nil {
		return mapLedgerError(c, err)
	}

	return c.JSON(students)
}

// mapLedgerError maps domain errors to HTTP responses
func mapLedgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, "Non autorisé")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "Accès réservé à l'administration")
	case errors.Is(err, domain.ErrStudentNotFound):
		return response.NotFound(c, "Élève non trouvé")
	case errors.Is(err, domain.ErrStorage):
		return response.InternalServerError(c, "Échec d'accès au registre des élèves")
	default:
		return response.InternalServerError(c, "Une erreur est survenue")
	}
}
