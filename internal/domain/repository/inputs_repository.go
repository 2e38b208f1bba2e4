package repository

import (
	"context"

	"github.com/jhoicas/ecoforecast-api/internal/domain/entity"
)

// LatestFilter filtro de igualdad para FindLatest. Company vacío = sin filtro por empresa.
type LatestFilter struct {
	Period  entity.Period
	Company string
}

// InputsRepository define el puerto de persistencia para los documentos de consumos (DIP).
// Solo inserta: un documento guardado nunca se modifica.
type InputsRepository interface {
	// Insert asigna ID y CreatedAt (los escribe en doc) y devuelve el ID.
	Insert(ctx context.Context, doc *entity.InputsDoc) (string, error)
	// FindLatest devuelve el documento con mayor CreatedAt que cumple el filtro, o (nil, nil).
	FindLatest(ctx context.Context, filter LatestFilter) (*entity.InputsDoc, error)
	// FindByID devuelve domain.ErrInvalidID si el id está mal formado y domain.ErrNotFound si no existe.
	FindByID(ctx context.Context, id string) (*entity.InputsDoc, error)
}
