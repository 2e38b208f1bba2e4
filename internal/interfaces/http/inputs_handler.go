package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecoforecast-api/internal/application/dto"
	"github.com/jhoicas/ecoforecast-api/internal/application/usecase"
	"github.com/jhoicas/ecoforecast-api/internal/domain/entity"
	"github.com/jhoicas/ecoforecast-api/pkg/logger"
)

// InputsHandler maneja las peticiones HTTP del recurso inputs.
type InputsHandler struct {
	uc  *usecase.InputsUseCase
	log *logger.Logger
}

// NewInputsHandler construye el handler inyectando el caso de uso.
func NewInputsHandler(uc *usecase.InputsUseCase, log *logger.Logger) *InputsHandler {
	return &InputsHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Guardar consumos trimestrales
// @Description  Valida los seis campos (presentes y >= 0) y guarda el documento. year vacío = año en curso.
// @Tags         inputs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveInputsRequest  true  "Consumos del trimestre"
// @Success      201   {object}  dto.SaveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/inputs [post]
func (h *InputsHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveInputsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	id, err := h.uc.Save(c.Context(), in)
	if err != nil {
		return respondError(c, h.log, err, msgSaveFailed)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaveResponse{OK: true, ID: id})
}

// Preview godoc
// @Summary      Vista previa del gasto
// @Description  Acepta un borrador parcial (campos null o ""); cuenta solo amountPaid presente y >= 0.
// @Tags         inputs
// @Accept       json
// @Produce      json
// @Param        body  body  entity.QuarterlyInputs  true  "Borrador"
// @Success      200   {object}  dto.PreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inputs/preview [post]
func (h *InputsHandler) Preview(c *fiber.Ctx) error {
	var in entity.QuarterlyInputs
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	return c.JSON(dto.PreviewResponse{OK: true, Data: h.uc.Preview(in)})
}

// Latest godoc
// @Summary      Último documento trimestral
// @Tags         inputs
// @Produce      json
// @Success      200  {object}  dto.DocumentResponse  "data es null si no hay documentos"
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inputs/latest [get]
func (h *InputsHandler) Latest(c *fiber.Ctx) error {
	doc, err := h.uc.Latest(c.Context())
	if err != nil {
		return respondError(c, h.log, err, msgLatestFailed)
	}
	return c.JSON(dto.DocumentResponse{OK: true, Data: doc})
}

// GetByID godoc
// @Summary      Obtener documento por ID
// @Tags         inputs
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inputs/{id} [get]
func (h *InputsHandler) GetByID(c *fiber.Ctx) error {
	doc, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, msgFetchFailed)
	}
	return c.JSON(dto.DocumentResponse{OK: true, Data: doc})
}

// CreateFourQuarter godoc
// @Summary      Guardar consumos de cuatro trimestres
// @Description  company es obligatorio; cada trimestre se valida igual que un documento trimestral.
// @Tags         inputs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveFourQuarterRequest  true  "Consumos Q1..Q4"
// @Success      201   {object}  dto.SaveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/inputs/four-quarter [post]
func (h *InputsHandler) CreateFourQuarter(c *fiber.Ctx) error {
	var in dto.SaveFourQuarterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	id, err := h.uc.SaveFourQuarter(c.Context(), in)
	if err != nil {
		return respondError(c, h.log, err, msgSaveFourQuarterFailed)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaveResponse{OK: true, ID: id})
}

// LatestFourQuarter godoc
// @Summary      Último documento de cuatro trimestres
// @Tags         inputs
// @Produce      json
// @Param        company  query  string  false  "Filtrar por empresa"
// @Success      200  {object}  dto.DocumentResponse  "data es null si no hay documentos"
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inputs/four-quarter/latest [get]
func (h *InputsHandler) LatestFourQuarter(c *fiber.Ctx) error {
	doc, err := h.uc.LatestFourQuarter(c.Context(), c.Query("company"))
	if err != nil {
		return respondError(c, h.log, err, msgLatestFourQuarterFailed)
	}
	return c.JSON(dto.DocumentResponse{OK: true, Data: doc})
}
