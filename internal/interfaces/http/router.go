package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/ecoforecast-api/internal/application/dto"
	"github.com/jhoicas/ecoforecast-api/internal/application/report"
	"github.com/jhoicas/ecoforecast-api/internal/application/usecase"
	"github.com/jhoicas/ecoforecast-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InputsUC    *usecase.InputsUseCase
	ReportUC    *report.UseCase // opcional: sin él no se registran las descargas
	Logger      *logger.Logger
	ServiceName string
	StoreDriver string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	health := func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.ServiceName, Store: deps.StoreDriver})
	}
	app.Get("/", health)
	app.Get("/health", health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Inputs: las rutas estáticas van antes de /:id
	inputs := api.Group("/inputs")
	inputsHandler := NewInputsHandler(deps.InputsUC, log.Component("inputs"))
	inputs.Post("/", inputsHandler.Create)
	inputs.Post("/preview", inputsHandler.Preview)
	inputs.Get("/latest", inputsHandler.Latest)
	inputs.Post("/four-quarter", inputsHandler.CreateFourQuarter)
	inputs.Get("/four-quarter/latest", inputsHandler.LatestFourQuarter)

	if deps.ReportUC != nil {
		reportHandler := NewReportHandler(deps.ReportUC, log.Component("reports"))
		inputs.Get("/:id/summary.pdf", reportHandler.SummaryPDF)
		inputs.Get("/:id/export.xlsx", reportHandler.ExportXLSX)
	}
	inputs.Get("/:id", inputsHandler.GetByID)
}
