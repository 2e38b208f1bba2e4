package report

import (
	"context"
	"strings"

	"github.com/jhoicas/ecoforecast-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DocumentSource obtiene un documento persistido por ID (usecase.InputsUseCase).
type DocumentSource interface {
	Document(ctx context.Context, id string) (*entity.InputsDoc, error)
}

// SummaryPDFGenerator genera el resumen en PDF de un documento.
type SummaryPDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, doc *entity.InputsDoc, lines []Line) ([]byte, error)
}

// SpreadsheetExporter genera la exportación XLSX de un documento.
type SpreadsheetExporter interface {
	ExportXLSX(ctx context.Context, doc *entity.InputsDoc, lines []Line) ([]byte, error)
}

// Line fila del reporte: una categoría de un trimestre.
type Line struct {
	Quarter    string // "Q1".."Q4"; vacío en documentos trimestrales
	Category   entity.Category
	Label      string
	Usage      decimal.Decimal
	AmountPaid decimal.Decimal
}

// Lines aplana el documento en filas en orden de trimestre y categoría.
func Lines(doc *entity.InputsDoc) []Line {
	if doc == nil {
		return nil
	}
	var out []Line
	add := func(quarter string, r entity.Readings) {
		for _, c := range entity.Categories {
			rd := r.Get(c)
			out = append(out, Line{
				Quarter:    quarter,
				Category:   c,
				Label:      c.Label(),
				Usage:      rd.Usage,
				AmountPaid: rd.AmountPaid,
			})
		}
	}
	if doc.Inputs != nil {
		add("", *doc.Inputs)
	}
	if doc.Quarters != nil {
		doc.Quarters.Each(func(key string, r entity.Readings) {
			add(strings.ToUpper(key), r)
		})
	}
	return out
}
