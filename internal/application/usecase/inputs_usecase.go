package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/ecoforecast-api/internal/application/dto"
	"github.com/jhoicas/ecoforecast-api/internal/domain"
	"github.com/jhoicas/ecoforecast-api/internal/domain/entity"
	"github.com/jhoicas/ecoforecast-api/internal/domain/repository"
	"github.com/jhoicas/ecoforecast-api/internal/domain/utility"
	"github.com/jhoicas/ecoforecast-api/internal/observability/metrics"
)

// InputsUseCase casos de uso de consumos: guardar (validado) y consultar documentos.
type InputsUseCase struct {
	repo repository.InputsRepository
	now  func() time.Time
}

// NewInputsUseCase construye el caso de uso con el puerto de persistencia.
func NewInputsUseCase(repo repository.InputsRepository) *InputsUseCase {
	return &InputsUseCase{repo: repo, now: time.Now}
}

// WithClock reemplaza el reloj (año por defecto).
func (uc *InputsUseCase) WithClock(now func() time.Time) *InputsUseCase {
	uc.now = now
	return uc
}

// Save valida el borrador y lo guarda como documento trimestral.
// Un borrador inválido devuelve un error que envuelve domain.ErrValidation y no llega al repositorio.
func (uc *InputsUseCase) Save(ctx context.Context, in dto.SaveInputsRequest) (string, error) {
	start := time.Now()
	id, err := uc.save(ctx, in)
	metrics.ObserveSave(string(entity.PeriodQuarterly), resultOf(err), time.Since(start))
	return id, err
}

func (uc *InputsUseCase) save(ctx context.Context, in dto.SaveInputsRequest) (string, error) {
	year, err := uc.year(in.Year)
	if err != nil {
		return "", err
	}
	readings, err := utility.Finalize(in.Inputs)
	if err != nil {
		return "", err
	}
	return uc.repo.Insert(ctx, &entity.InputsDoc{
		Period: entity.PeriodQuarterly,
		Year:   year,
		Inputs: &readings,
	})
}

// SaveFourQuarter valida empresa y los cuatro trimestres y guarda el documento agregado.
func (uc *InputsUseCase) SaveFourQuarter(ctx context.Context, in dto.SaveFourQuarterRequest) (string, error) {
	start := time.Now()
	id, err := uc.saveFourQuarter(ctx, in)
	metrics.ObserveSave(string(entity.PeriodFourQuarter), resultOf(err), time.Since(start))
	return id, err
}

func (uc *InputsUseCase) saveFourQuarter(ctx context.Context, in dto.SaveFourQuarterRequest) (string, error) {
	if in.Period != "" && in.Period != string(entity.PeriodFourQuarter) {
		return "", fmt.Errorf("%w: period must be %q", domain.ErrInvalidInput, entity.PeriodFourQuarter)
	}
	company := strings.TrimSpace(in.Company)
	if company == "" {
		return "", fmt.Errorf("%w: company is required", domain.ErrInvalidInput)
	}
	year, err := uc.year(in.Year)
	if err != nil {
		return "", err
	}
	quarters, err := utility.FinalizeQuarters(in.Quarters)
	if err != nil {
		return "", err
	}
	return uc.repo.Insert(ctx, &entity.InputsDoc{
		Period:   entity.PeriodFourQuarter,
		Company:  company,
		Year:     year,
		Quarters: &quarters,
	})
}

// Latest devuelve el documento trimestral más reciente, o nil.
func (uc *InputsUseCase) Latest(ctx context.Context) (*dto.InputsDocResponse, error) {
	doc, err := uc.findLatest(ctx, "latest", repository.LatestFilter{Period: entity.PeriodQuarterly})
	if err != nil {
		return nil, err
	}
	return dto.FromDoc(doc), nil
}

// LatestFourQuarter devuelve el documento de cuatro trimestres más reciente (opcionalmente por empresa).
func (uc *InputsUseCase) LatestFourQuarter(ctx context.Context, company string) (*dto.InputsDocResponse, error) {
	doc, err := uc.findLatest(ctx, "latest_four_quarter", repository.LatestFilter{
		Period:  entity.PeriodFourQuarter,
		Company: strings.TrimSpace(company),
	})
	if err != nil {
		return nil, err
	}
	return dto.FromDoc(doc), nil
}

// GetByID obtiene un documento. Errores: domain.ErrInvalidID, domain.ErrNotFound.
func (uc *InputsUseCase) GetByID(ctx context.Context, id string) (*dto.InputsDocResponse, error) {
	doc, err := uc.Document(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromDoc(doc), nil
}

// Document versión de GetByID en tipos de dominio (reportes).
func (uc *InputsUseCase) Document(ctx context.Context, id string) (*entity.InputsDoc, error) {
	start := time.Now()
	doc, err := uc.repo.FindByID(ctx, strings.TrimSpace(id))
	metrics.ObserveLookup("by_id", resultOf(err), time.Since(start))
	return doc, err
}

// Preview calcula el gasto del borrador sin validarlo.
func (uc *InputsUseCase) Preview(in entity.QuarterlyInputs) dto.PreviewDTO {
	return dto.FromSummary(utility.Preview(in))
}

// ── Gateway en proceso para form.Controller ──────────────────────────────────

// SaveInputs guarda lecturas ya validadas por el formulario.
func (uc *InputsUseCase) SaveInputs(ctx context.Context, readings entity.Readings, year int) (string, error) {
	return uc.Save(ctx, dto.SaveInputsRequest{Year: year, Inputs: readings.Draft()})
}

// LatestInputs lecturas del último documento trimestral, o nil.
func (uc *InputsUseCase) LatestInputs(ctx context.Context) (*entity.Readings, error) {
	doc, err := uc.findLatest(ctx, "latest", repository.LatestFilter{Period: entity.PeriodQuarterly})
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.Inputs, nil
}

func (uc *InputsUseCase) findLatest(ctx context.Context, op string, f repository.LatestFilter) (*entity.InputsDoc, error) {
	start := time.Now()
	doc, err := uc.repo.FindLatest(ctx, f)
	metrics.ObserveLookup(op, resultOf(err), time.Since(start))
	return doc, err
}

// maxYear cabe en la columna INTEGER y en el formato de fecha de los reportes.
const maxYear = 9999

func (uc *InputsUseCase) year(y int) (int, error) {
	switch {
	case y == 0:
		return uc.now().Year(), nil
	case y < 0:
		return 0, fmt.Errorf("%w: year must be positive", domain.ErrInvalidInput)
	case y > maxYear:
		return 0, fmt.Errorf("%w: year must not exceed %d", domain.ErrInvalidInput, maxYear)
	default:
		return y, nil
	}
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidInput):
		return metrics.ResultValidation
	case errors.Is(err, domain.ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, domain.ErrInvalidID):
		return metrics.ResultInvalidID
	default:
		return metrics.ResultError
	}
}
