// Package report genera las salidas descargables de un documento de consumos
// (resumen PDF y exportación XLSX).
package report

import (
	"context"
	"fmt"

	"github.com/jhoicas/ecoforecast-api/internal/observability/metrics"
)

// UseCase orquesta la carga del documento y su renderizado.
type UseCase struct {
	docs     DocumentSource
	pdf      SummaryPDFGenerator
	exporter SpreadsheetExporter
}

// NewUseCase construye el caso de uso inyectando sus dependencias.
func NewUseCase(docs DocumentSource, pdf SummaryPDFGenerator, exporter SpreadsheetExporter) *UseCase {
	return &UseCase{docs: docs, pdf: pdf, exporter: exporter}
}

// SummaryPDF devuelve (bytes, filename). Errores del origen (domain.ErrInvalidID,
// domain.ErrNotFound) se propagan sin envolver su identidad.
func (uc *UseCase) SummaryPDF(ctx context.Context, id string) ([]byte, string, error) {
	doc, err := uc.docs.Document(ctx, id)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.pdf.GenerateSummaryPDF(ctx, doc, Lines(doc))
	metrics.ObserveReport("pdf", err == nil)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar pdf: %w", err)
	}
	return out, filename(doc.ID, doc.Year, "pdf"), nil
}

// ExportXLSX devuelve (bytes, filename) de la hoja de cálculo.
func (uc *UseCase) ExportXLSX(ctx context.Context, id string) ([]byte, string, error) {
	doc, err := uc.docs.Document(ctx, id)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.exporter.ExportXLSX(ctx, doc, Lines(doc))
	metrics.ObserveReport("xlsx", err == nil)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar xlsx: %w", err)
	}
	return out, filename(doc.ID, doc.Year, "xlsx"), nil
}

func filename(id string, year int, ext string) string {
	return fmt.Sprintf("inputs_%d_%s.%s", year, id, ext)
}
