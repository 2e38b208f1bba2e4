// Package form mantiene el borrador del formulario trimestral y orquesta validación,
// vista previa y guardado contra un Gateway (HTTP o en proceso).
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/ecoforecast-api/internal/domain"
	"github.com/jhoicas/ecoforecast-api/internal/domain/entity"
	"github.com/jhoicas/ecoforecast-api/internal/domain/utility"
)

// ErrSaveInProgress se devuelve si ya hay un guardado en curso.
var ErrSaveInProgress = errors.New("save already in progress")

// State estado del formulario.
type State string

const (
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSaving     State = "saving"
	StateSaved      State = "saved"
)

// Gateway puerto de persistencia del formulario.
// Implementado por pkg/client (HTTP) y por usecase.InputsUseCase (en proceso).
type Gateway interface {
	SaveInputs(ctx context.Context, readings entity.Readings, year int) (string, error)
	LatestInputs(ctx context.Context) (*entity.Readings, error)
}

// Option configura el Controller.
type Option func(*Controller)

// WithYear fija el año del documento (0 = año en curso).
func WithYear(year int) Option {
	return func(c *Controller) {
		if year > 0 {
			c.year = year
		}
	}
}

// OnSaved registra el callback invocado tras un guardado correcto (navegación).
func OnSaved(fn func(id string)) Option {
	return func(c *Controller) { c.onSaved = fn }
}

// Controller estado del formulario. Seguro para uso concurrente.
type Controller struct {
	gw      Gateway
	onSaved func(id string)

	mu     sync.Mutex
	draft  entity.QuarterlyInputs
	year   int
	state  State
	err    error
	notice string
	saving bool
}

// NewController crea un formulario vacío (todos los campos Pending).
func NewController(gw Gateway, opts ...Option) *Controller {
	c := &Controller{
		gw:    gw,
		year:  time.Now().Year(),
		state: StateEditing,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Edit asigna el texto crudo de un campo. "" deja el campo Pending; un texto no numérico
// también lo deja Pending y devuelve el error de conversión. Fuera de un guardado limpia
// Err y Notice.
func (c *Controller) Edit(category entity.Category, field entity.FieldName, raw string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := c.draft.Resource(category)
	if res == nil {
		return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, category)
	}
	f, err := entity.ParseField(raw)
	switch field {
	case entity.FieldUsage:
		res.Usage = f
	case entity.FieldAmountPaid:
		res.AmountPaid = f
	default:
		return fmt.Errorf("%w: unknown field %q", domain.ErrInvalidInput, field)
	}
	if !c.saving {
		c.reset()
	}
	return err
}

// Clear vacía el borrador.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = entity.QuarterlyInputs{}
	if !c.saving {
		c.reset()
	}
}

// SetYear cambia el año del próximo guardado.
func (c *Controller) SetYear(year int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if year > 0 {
		c.year = year
	}
}

// Year año del próximo guardado.
func (c *Controller) Year() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.year
}

// Draft copia del borrador actual.
func (c *Controller) Draft() entity.QuarterlyInputs {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Preview gasto calculado sobre el borrador actual (acepta datos parciales).
func (c *Controller) Preview() utility.Summary {
	return utility.Preview(c.Draft())
}

// Save valida y guarda el borrador. Un error de validación o de almacenamiento vuelve a
// editing conservando el borrador; el error queda disponible en Err().
func (c *Controller) Save(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		return "", ErrSaveInProgress
	}
	c.state = StateValidating
	c.err = nil
	c.notice = ""
	readings, err := utility.Finalize(c.draft)
	if err != nil {
		c.state = StateEditing
		c.err = err
		c.mu.Unlock()
		return "", err
	}
	c.saving = true
	c.state = StateSaving
	year := c.year
	c.mu.Unlock()

	id, err := c.gw.SaveInputs(ctx, readings, year)

	c.mu.Lock()
	c.saving = false
	if err != nil {
		c.state = StateEditing
		c.err = err
		c.mu.Unlock()
		return "", err
	}
	c.state = StateSaved
	c.notice = fmt.Sprintf("Saved! (id: %s)", id)
	hook := c.onSaved
	c.mu.Unlock()

	if hook != nil {
		hook(id)
	}
	return id, nil
}

// LoadLatest precarga el borrador con el último documento trimestral guardado.
// Sin documentos el borrador no cambia.
func (c *Controller) LoadLatest(ctx context.Context) error {
	r, err := c.gw.LatestInputs(ctx)
	if err != nil {
		return err
	}
	if r == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = r.Draft()
	return nil
}

// reset vuelve a editing y descarta el mensaje del último guardado. Requiere c.mu.
func (c *Controller) reset() {
	c.state = StateEditing
	c.err = nil
	c.notice = ""
}

// State estado actual.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err último error de validación o guardado; nil tras un guardado correcto.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Notice mensaje de confirmación del último guardado.
func (c *Controller) Notice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}
