package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecoforecast-api/internal/application/report"
	"github.com/jhoicas/ecoforecast-api/internal/application/usecase"
	"github.com/jhoicas/ecoforecast-api/internal/domain/entity"
	"github.com/jhoicas/ecoforecast-api/internal/domain/repository"
	"github.com/jhoicas/ecoforecast-api/internal/infrastructure/memory"
	"github.com/jhoicas/ecoforecast-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ecoforecast-api/internal/infrastructure/spreadsheet"
	apphttp "github.com/jhoicas/ecoforecast-api/internal/interfaces/http"
	"github.com/jhoicas/ecoforecast-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const validInputs = `{
	"electricity": {"usage": 100, "amountPaid": 50},
	"water": {"usage": 20, "amountPaid": 10},
	"fuel": {"usage": 5, "amountPaid": 15}
}`

// buildTestApp construye la app Fiber completa sobre el repositorio indicado.
func buildTestApp(repo repository.InputsRepository) *fiber.App {
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	inputsUC := usecase.NewInputsUseCase(repo)
	apphttp.Router(app, apphttp.RouterDeps{
		InputsUC:    inputsUC,
		ReportUC:    report.NewUseCase(inputsUC, pdf.NewSummaryGenerator(), spreadsheet.NewExporter()),
		Logger:      logger.Nop(),
		ServiceName: "ecoforecast-test",
		StoreDriver: "memory",
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func saveValid(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/inputs", `{"year":2024,"inputs":`+validInputs+`}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	return id
}

// brokenRepo falla en todas las operaciones.
type brokenRepo struct{}

func (brokenRepo) Insert(context.Context, *entity.InputsDoc) (string, error) {
	return "", errors.New("db caída")
}
func (brokenRepo) FindLatest(context.Context, repository.LatestFilter) (*entity.InputsDoc, error) {
	return nil, errors.New("db caída")
}
func (brokenRepo) FindByID(context.Context, string) (*entity.InputsDoc, error) {
	return nil, errors.New("db caída")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_Valido201(t *testing.T) {
	app := buildTestApp(memory.NewInputsRepository())
	resp, body := doJSON(t, app, http.MethodPost, "/api/inputs", `{"inputs":`+validInputs+`}`)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["id"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestCreate_CampoVacio400(t *testing.T) {
	app := buildTestApp(memory.NewInputsRepository())
	in := strings.Replace(validInputs, `"amountPaid": 10`, `"amountPaid": ""`, 1)
	resp, body := doJSON(t, app, http.MethodPost, "/api/inputs", `{"inputs":`+in+`}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Water amount paid is required", body["error"])
}

func TestCreate_Negativo400(t *testing.T) {
	app := buildTestApp(memory.NewInputsRepository())
	in := strings.Replace(validInputs, `"usage": 5`, `"usage": -1`, 1)
	resp, body := doJSON(t, app, http.MethodPost, "/api/inputs", `{"inputs":`+in+`}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Fuel usage must be a non-negative number", body["error"])
}

func TestCreate_ValorDesmesurado400(t *testing.T) {
	repo := memory.NewInputsRepository()
	app := buildTestApp(repo)
	in := strings.Replace(validInputs, `"amountPaid": 50`, `"amountPaid": 1e400`, 1)
	resp, body := doJSON(t, app, http.MethodPost, "/api/inputs", `{"inputs":`+in+`}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Electricity amount paid must not exceed 1000000000000000", body["error"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/inputs/latest", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Nil(t, body["data"])
}

func TestCreate_AnioFueraDeRango400(t *testing.T) {
	app := buildTestApp(memory.NewInputsRepository())
	resp, body := doJSON(t, app, http.MethodPost, "/api/inputs", `{"year":100000,"inputs":`+validInputs+`}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["ok"])
}

func TestPreview_ValorDesmesuradoEsPlaceholder(t *testing.T) {
	app := buildTestApp(memory.NewInputsRepository())
	in := strings.Replace(validInputs, `"amountPaid": 15`, `"amountPaid": 1e400`, 1)
	resp, body := doJSON(t, app, http.MethodPost, "/api/inputs/preview", in)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Nil(t, data["fuelSpend"])
	assert.Equal(t, 60.0, data["total"])
}

func TestCreate_CuerpoMalformado400(t *testing.T) {
	app := buildTestApp(memory.NewInputsRepository())
	resp, body := doJSON(t, app, http.MethodPost, "/api/inputs", `{"inputs":`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "INVALID_BODY", body["code"])
}

func TestCreate_FalloDeAlmacenamiento500(t *testing.T) {
	app := buildTestApp(brokenRepo{})
	resp, body := doJSON(t, app, http.MethodPost, "/api/inputs", `{"inputs":`+validInputs+`}`)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to save inputs", body["error"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/inputs/latest", "")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to fetch latest inputs", body["error"])
}

func TestLatest_SinDocumentosDevuelveNull(t *testing.T) {
	app := buildTestApp(memory.NewInputsRepository())
	resp, body := doJSON(t, app, http.MethodGet, "/api/inputs/latest", "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
	v, present := body["data"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestLatest_DevuelveElUltimo(t *testing.T) {
	app := buildTestApp(memory.NewInputsRepository())
	saveValid(t, app)
	second := saveValid(t, app)

	_, body := doJSON(t, app, http.MethodGet, "/api/inputs/latest", "")
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, second, data["id"])
	assert.Equal(t, "quarterly", data["period"])
	assert.EqualValues(t, 2024, data["year"])
	inputs := data["inputs"].(map[string]any)
	water := inputs["water"].(map[string]any)
	assert.EqualValues(t, 10, water["amountPaid"])
}

func TestGetByID(t *testing.T) {
	app := buildTestApp(memory.NewInputsRepository())
	id := saveValid(t, app)

	resp, body := doJSON(t, app, http.MethodGet, "/api/inputs/"+id, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, id, body["data"].(map[string]any)["id"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/inputs/not-an-id", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid id", body["error"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/inputs/6f1c1c3e-2b7a-4d7e-9a55-0a1b2c3d4e5f", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", body["error"])
}

func TestFourQuarter_GuardarYConsultarPorEmpresa(t *testing.T) {
	app := buildTestApp(memory.NewInputsRepository())
	payload := func(company string) string {
		return `{"period":"four-quarter","company":"` + company + `","year":2024,"quarters":{` +
			`"q1":` + validInputs + `,"q2":` + validInputs + `,"q3":` + validInputs + `,"q4":` + validInputs + `}}`
	}

	resp, acme := doJSON(t, app, http.MethodPost, "/api/inputs/four-quarter", payload("acme"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPost, "/api/inputs/four-quarter", payload("globex"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	_, body := doJSON(t, app, http.MethodGet, "/api/inputs/four-quarter/latest?company=acme", "")
	data := body["data"].(map[string]any)
	assert.Equal(t, acme["id"], data["id"])
	assert.Equal(t, "four-quarter", data["period"])
	assert.Contains(t, data["quarters"].(map[string]any), "q4")

	// el último trimestral no incluye documentos de cuatro trimestres
	_, body = doJSON(t, app, http.MethodGet, "/api/inputs/latest", "")
	assert.Nil(t, body["data"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/inputs/four-quarter", payload(""))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["ok"])
}

func TestPreview(t *testing.T) {
	app := buildTestApp(memory.NewInputsRepository())
	draft := `{"electricity":{"usage":"","amountPaid":"50"},"water":{"usage":null,"amountPaid":""},"fuel":{"amountPaid":15}}`
	resp, body := doJSON(t, app, http.MethodPost, "/api/inputs/preview", draft)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 50, data["electricitySpend"])
	assert.Nil(t, data["waterSpend"])
	assert.EqualValues(t, 65, data["total"])
}

func TestReportes(t *testing.T) {
	app := buildTestApp(memory.NewInputsRepository())
	id := saveValid(t, app)

	req := httptest.NewRequest(http.MethodGet, "/api/inputs/"+id+"/summary.pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".pdf")

	req = httptest.NewRequest(http.MethodGet, "/api/inputs/"+id+"/export.xlsx", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	resp, body := doJSON(t, app, http.MethodGet, "/api/inputs/bad/summary.pdf", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid id", body["error"])
}

func TestHealth(t *testing.T) {
	app := buildTestApp(memory.NewInputsRepository())
	for _, path := range []string{"/", "/health"} {
		resp, body := doJSON(t, app, http.MethodGet, path, "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "memory", body["store"])
	}
}
