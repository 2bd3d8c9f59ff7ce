package handlers

import (
	"montsion-scolarite/internal/adapters/http/middleware"
	"montsion-scolarite/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles reporting and export endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Stats returns ledger-wide tuition aggregates
// @Summary Tuition statistics
// @Tags Reports
// @Produce json
// @Success 200 {object} domain.Stats
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/stats [get]
func (h *ReportHandler) Stats(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)

	stats, err := h.reportService.Stats(c.Context(), identity)
	if err != nil {
		return mapLedgerError(c, err)
	}

	return c.JSON(stats)
}

// DownloadYAML serves the raw student store as an attachment
// @Summary Download the ledger as YAML
// @Tags Reports
// @Produce plain
// @Success 200 {string} string
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/download-yaml [get]
func (h *ReportHandler) DownloadYAML(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)

	data, err := h.reportService.ExportYAML(c.Context(), identity)
	if err != nil {
		return mapLedgerError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/yaml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=mont-sion-students.yaml`)
	return c.Send(data)
}

// ExportExcel serves the ledger as a spreadsheet attachment
// @Summary Download the ledger as a spreadsheet
// @Tags Reports
// @Produce octet-stream
// @Success 200 {string} binary
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/export-excel [get]
func (h *ReportHandler) ExportExcel(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)

	data, err := h.reportService.ExportExcel(c.Context(), identity)
	if err != nil {
		return mapLedgerError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=mont-sion-students.xlsx`)
	return c.Send(data)
}
