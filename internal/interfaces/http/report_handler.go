package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecoforecast-api/internal/application/report"
	"github.com/jhoicas/ecoforecast-api/pkg/logger"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportHandler descargas de un documento (PDF / XLSX).
type ReportHandler struct {
	uc  *report.UseCase
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// SummaryPDF godoc
// @Summary      Resumen PDF de un documento
// @Tags         reports
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inputs/{id}/summary.pdf [get]
func (h *ReportHandler) SummaryPDF(c *fiber.Ctx) error {
	out, name, err := h.uc.SummaryPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, msgReportFailed)
	}
	return sendAttachment(c, mimePDF, name, out)
}

// ExportXLSX godoc
// @Summary      Exportación XLSX de un documento
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inputs/{id}/export.xlsx [get]
func (h *ReportHandler) ExportXLSX(c *fiber.Ctx) error {
	out, name, err := h.uc.ExportXLSX(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, msgReportFailed)
	}
	return sendAttachment(c, mimeXLSX, name, out)
}

func sendAttachment(c *fiber.Ctx, contentType, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body)
}
