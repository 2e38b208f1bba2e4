package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/ecoforecast-api/internal/domain"
	"github.com/jhoicas/ecoforecast-api/internal/domain/entity"
	"github.com/jhoicas/ecoforecast-api/internal/domain/repository"
	"github.com/jhoicas/ecoforecast-api/internal/domain/utility"
)

var _ repository.InputsRepository = (*InputsRepo)(nil)

// InputsRepo implementación del puerto InputsRepository sobre PostgreSQL.
// Las lecturas se guardan como JSONB; total_paid queda en NUMERIC para consultas.
type InputsRepo struct {
	pool *pgxpool.Pool
}

// NewInputsRepository construye el adaptador de persistencia para consumos.
func NewInputsRepository(pool *pgxpool.Pool) *InputsRepo {
	return &InputsRepo{pool: pool}
}

// payload contenido JSONB de la fila.
type payload struct {
	Inputs   *entity.Readings `json:"inputs,omitempty"`
	Quarters *entity.Quarters `json:"quarters,omitempty"`
}

// Insert persiste un documento nuevo; created_at lo asigna la base de datos.
func (r *InputsRepo) Insert(ctx context.Context, doc *entity.InputsDoc) (string, error) {
	body, err := json.Marshal(payload{Inputs: doc.Inputs, Quarters: doc.Quarters})
	if err != nil {
		return "", fmt.Errorf("encode inputs payload: %w", err)
	}
	query := `
		INSERT INTO inputs (id, period, company, year, payload, total_paid)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`
	var (
		id        string
		createdAt time.Time
	)
	// un id repetido (UUID generado en la aplicación) se reintenta una vez con otro
	for attempt := 0; attempt < 2; attempt++ {
		id = uuid.New().String()
		err = r.pool.QueryRow(ctx, query,
			id, string(doc.Period), doc.Company, doc.Year, body, utility.TotalPaid(doc),
		).Scan(&createdAt)
		if err == nil || !isUniqueViolation(err) {
			break
		}
	}
	if err != nil {
		if isUndefinedTable(err) {
			return "", fmt.Errorf("insert inputs: esquema no inicializado: %w", err)
		}
		return "", fmt.Errorf("insert inputs: %w", err)
	}
	doc.ID = id
	doc.CreatedAt = createdAt.UTC()
	return id, nil
}

// FindLatest obtiene el documento más reciente del periodo (y empresa, si se indica).
func (r *InputsRepo) FindLatest(ctx context.Context, filter repository.LatestFilter) (*entity.InputsDoc, error) {
	query := `
		SELECT id, period, company, year, payload, created_at
		FROM inputs
		WHERE period = $1 AND ($2::text = '' OR company = $2)
		ORDER BY created_at DESC, seq DESC
		LIMIT 1`
	doc, err := scanDoc(r.pool.QueryRow(ctx, query, string(filter.Period), filter.Company))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest inputs: %w", err)
	}
	return doc, nil
}

// FindByID obtiene un documento por ID (UUID).
func (r *InputsRepo) FindByID(ctx context.Context, id string) (*entity.InputsDoc, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	query := `
		SELECT id, period, company, year, payload, created_at
		FROM inputs WHERE id = $1`
	doc, err := scanDoc(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get inputs: %w", err)
	}
	return doc, nil
}

func scanDoc(row pgx.Row) (*entity.InputsDoc, error) {
	var (
		d      entity.InputsDoc
		period string
		body   []byte
	)
	if err := row.Scan(&d.ID, &period, &d.Company, &d.Year, &body, &d.CreatedAt); err != nil {
		return nil, err
	}
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode inputs payload: %w", err)
	}
	d.Period = entity.Period(period)
	d.Inputs = p.Inputs
	d.Quarters = p.Quarters
	d.CreatedAt = d.CreatedAt.UTC()
	return &d, nil
}
