package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecoforecast-api/internal/application/dto"
	"github.com/jhoicas/ecoforecast-api/internal/domain"
	"github.com/jhoicas/ecoforecast-api/pkg/logger"
)

// Mensajes fijos devueltos en errores 500; el detalle solo va al log.
const (
	msgSaveFailed              = "Failed to save inputs"
	msgLatestFailed            = "Failed to fetch latest inputs"
	msgFetchFailed             = "Failed to fetch inputs"
	msgSaveFourQuarterFailed   = "Failed to save 4-quarter inputs"
	msgLatestFourQuarterFailed = "Failed to fetch latest 4-quarter inputs"
	msgReportFailed            = "Failed to generate report"
	msgInvalidBody             = "Invalid request body"
	msgInvalidID               = "Invalid id"
	msgNotFound                = "Not found"
)

// respondError traduce errores de dominio a status HTTP.
// validación / entrada inválida → 400, id inválido → 400, no encontrado → 404, resto → 500.
func respondError(c *fiber.Ctx, log *logger.Logger, err error, internalMsg string) error {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", err.Error()))
	case errors.Is(err, domain.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_ID", msgInvalidID))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", msgNotFound))
	default:
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("request_id", requestID(c)).
			Msg(internalMsg)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("INTERNAL", internalMsg))
	}
}

func badBody(c *fiber.Ctx, err error) error {
	msg := msgInvalidBody
	if err != nil {
		msg += ": " + err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", msg))
}
