// Package spreadsheet exporta documentos de consumos a XLSX con excelize.
package spreadsheet

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/ecoforecast-api/internal/application/report"
	"github.com/jhoicas/ecoforecast-api/internal/domain/entity"
	"github.com/jhoicas/ecoforecast-api/internal/domain/utility"
)

const (
	summarySheet  = "Summary"
	readingsSheet = "Readings"
)

var readingsHeaders = []string{"Quarter", "Category", "Usage", "Amount paid"}

// Exporter implementa report.SpreadsheetExporter.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// ExportXLSX genera un libro con dos hojas: Summary (metadatos y total) y Readings (una fila por línea).
func (e *Exporter) ExportXLSX(_ context.Context, doc *entity.InputsDoc, lines []report.Line) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("xlsx: documento nil")
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("xlsx: hoja resumen: %w", err)
	}
	if _, err := f.NewSheet(readingsSheet); err != nil {
		return nil, fmt.Errorf("xlsx: hoja lecturas: %w", err)
	}

	boldStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	titleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#166534"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	moneyStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00

	// Summary
	_ = f.SetCellValue(summarySheet, "A1", "EcoForecast utility inputs")
	_ = f.SetCellStyle(summarySheet, "A1", "A1", titleStyle)
	meta := [][2]any{
		{"Document ID", doc.ID},
		{"Period", string(doc.Period)},
		{"Company", doc.Company},
		{"Year", doc.Year},
		{"Submitted", doc.CreatedAt.UTC().Format(time.RFC3339)},
		{"Total paid", utility.TotalPaid(doc).InexactFloat64()},
	}
	for i, kv := range meta {
		r := i + 3
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", r), kv[0])
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", r), kv[1])
		_ = f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", r), fmt.Sprintf("A%d", r), boldStyle)
	}
	last := fmt.Sprintf("B%d", len(meta)+2)
	_ = f.SetCellStyle(summarySheet, last, last, moneyStyle)
	_ = f.SetColWidth(summarySheet, "A", "B", 24)

	// Readings
	for i, h := range readingsHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(readingsSheet, cell, h)
		_ = f.SetCellStyle(readingsSheet, cell, cell, headerStyle)
	}
	for i, l := range lines {
		r := i + 2
		_ = f.SetCellValue(readingsSheet, fmt.Sprintf("A%d", r), l.Quarter)
		_ = f.SetCellValue(readingsSheet, fmt.Sprintf("B%d", r), l.Label)
		_ = f.SetCellValue(readingsSheet, fmt.Sprintf("C%d", r), l.Usage.InexactFloat64())
		_ = f.SetCellValue(readingsSheet, fmt.Sprintf("D%d", r), l.AmountPaid.InexactFloat64())
	}
	if len(lines) > 0 {
		_ = f.SetCellStyle(readingsSheet, "D2", fmt.Sprintf("D%d", len(lines)+1), moneyStyle)
	}
	_ = f.SetColWidth(readingsSheet, "A", "D", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
