// Package memory implementa el repositorio de consumos en memoria (tests y STORE_DRIVER=memory).
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ecoforecast-api/internal/domain"
	"github.com/jhoicas/ecoforecast-api/internal/domain/entity"
	"github.com/jhoicas/ecoforecast-api/internal/domain/repository"
)

var _ repository.InputsRepository = (*InputsRepo)(nil)

// InputsRepo guarda los documentos en orden de inserción.
type InputsRepo struct {
	mu   sync.RWMutex
	docs []*entity.InputsDoc
	now  func() time.Time
}

// NewInputsRepository construye el repositorio vacío.
func NewInputsRepository() *InputsRepo {
	return &InputsRepo{now: time.Now}
}

// WithClock reemplaza el reloj usado para CreatedAt.
func (r *InputsRepo) WithClock(now func() time.Time) *InputsRepo {
	r.now = now
	return r
}

// Insert asigna un UUID y la marca de tiempo y guarda una copia.
func (r *InputsRepo) Insert(ctx context.Context, doc *entity.InputsDoc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	doc.ID = uuid.New().String()
	doc.CreatedAt = r.now().UTC()
	r.docs = append(r.docs, doc.Clone())
	return doc.ID, nil
}

// FindLatest recorre en orden inverso; ante empate de CreatedAt gana el último insertado.
func (r *InputsRepo) FindLatest(ctx context.Context, filter repository.LatestFilter) (*entity.InputsDoc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *entity.InputsDoc
	for i := len(r.docs) - 1; i >= 0; i-- {
		d := r.docs[i]
		if filter.Period != "" && d.Period != filter.Period {
			continue
		}
		if filter.Company != "" && d.Company != filter.Company {
			continue
		}
		if latest == nil || d.CreatedAt.After(latest.CreatedAt) {
			latest = d
		}
	}
	return latest.Clone(), nil
}

// FindByID exige un UUID bien formado.
func (r *InputsRepo) FindByID(ctx context.Context, id string) (*entity.InputsDoc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.docs {
		if d.ID == id {
			return d.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

// Len número de documentos guardados.
func (r *InputsRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}
