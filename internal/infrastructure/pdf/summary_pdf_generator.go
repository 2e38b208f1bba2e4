// Package pdf genera el resumen imprimible de un documento de consumos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: EcoForecast + periodo  │  Año + fecha de envío      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPRESA (solo cuatro trimestres) / ID del documento          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Trimestre | Categoría | Consumo | Pagado             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: gasto por categoría / TOTAL PAGADO                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecoforecast-api/internal/application/report"
	"github.com/jhoicas/ecoforecast-api/internal/domain/entity"
	"github.com/jhoicas/ecoforecast-api/internal/domain/utility"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// SummaryGenerator implementa report.SummaryPDFGenerator usando Maroto v2.
type SummaryGenerator struct{}

// NewSummaryGenerator construye el generador.
func NewSummaryGenerator() *SummaryGenerator { return &SummaryGenerator{} }

// GenerateSummaryPDF genera el PDF y devuelve sus bytes.
func (g *SummaryGenerator) GenerateSummaryPDF(_ context.Context, doc *entity.InputsDoc, lines []report.Line) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("pdf: documento nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("EcoForecast inputs summary", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(lines))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc *entity.InputsDoc) core.Row {
	title := "QUARTERLY UTILITY INPUTS"
	if doc.Period == entity.PeriodFourQuarter {
		title = "FOUR-QUARTER UTILITY INPUTS"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("EcoForecast", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Year %d", doc.Year), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Submitted: "+doc.CreatedAt.Format("2006-01-02 15:04 MST"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func infoRow(doc *entity.InputsDoc) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("Company: "+nonEmpty(doc.Company, "—"), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1,
			}),
			text.New("Document ID: "+doc.ID, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Quarter", 2, align.Center),
		h("Category", 4, align.Left),
		h("Usage", 3, align.Right),
		h("Amount paid", 3, align.Right),
	)
}

func tableRows(lines []report.Line) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(nonEmpty(l.Quarter, "—"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(l.Label, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(3).Add(text.New(formatAmount(l.Usage), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New("$"+formatAmount(l.AmountPaid), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: gasto por categoría (sumado entre trimestres) y total.
func totalsRow(lines []report.Line) core.Row {
	spend := map[entity.Category]decimal.Decimal{}
	for _, l := range lines {
		spend[l.Category] = spend[l.Category].Add(l.AmountPaid)
	}
	sum := utility.SummaryOf(entity.Readings{
		Electricity: entity.Reading{AmountPaid: spend[entity.Electricity]},
		Water:       entity.Reading{AmountPaid: spend[entity.Water]},
		Fuel:        entity.Reading{AmountPaid: spend[entity.Fuel]},
	})

	labels := make([]core.Component, 0, len(entity.Categories)+1)
	values := make([]core.Component, 0, len(entity.Categories)+1)
	for i, c := range entity.Categories {
		top := float64(i * 5)
		labels = append(labels, text.New(c.Label()+" spend:", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		}))
		values = append(values, text.New("$"+formatAmount(*sum.Get(c)), props.Text{
			Size: 9, Align: align.Right, Right: 1, Top: top,
		}))
	}
	top := float64(len(entity.Categories) * 5)
	labels = append(labels, text.New("TOTAL PAID:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: top,
	}))
	values = append(values, text.New("$"+formatAmount(sum.Total), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: top,
	}))

	return row.New(26).Add(
		col.New(3),
		col.New(4).Add(labels...),
		col.New(3).Add(values...),
		col.New(2),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatAmount dos decimales con separador de miles.
// Ej: 1234567.5 → "1,234,567.50"
func formatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	if n <= 3 {
		return sign + intPart + "." + frac
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "." + frac
}
