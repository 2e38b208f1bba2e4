package utility

import (
	"github.com/jhoicas/ecoforecast-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Summary gasto por categoría y total. Una categoría nil se muestra como placeholder y suma 0.
type Summary struct {
	Electricity *decimal.Decimal
	Water       *decimal.Decimal
	Fuel        *decimal.Decimal
	Total       decimal.Decimal
}

// Get devuelve el gasto de la categoría (nil si falta).
func (s Summary) Get(c entity.Category) *decimal.Decimal {
	switch c {
	case entity.Electricity:
		return s.Electricity
	case entity.Water:
		return s.Water
	case entity.Fuel:
		return s.Fuel
	default:
		return nil
	}
}

// Preview calcula el gasto con datos parciales: solo cuenta amountPaid presente y en [0, MaxValue].
// Función pura; no requiere que el borrador sea válido.
func Preview(in entity.QuarterlyInputs) Summary {
	spend := func(f entity.Field) *decimal.Decimal {
		v, ok := f.Get()
		if !ok || v.IsNegative() || v.GreaterThan(MaxValue) {
			return nil
		}
		return &v
	}
	return total(Summary{
		Electricity: spend(in.Electricity.AmountPaid),
		Water:       spend(in.Water.AmountPaid),
		Fuel:        spend(in.Fuel.AmountPaid),
	})
}

// SummaryOf gasto de un trimestre ya validado (todas las categorías presentes).
func SummaryOf(r entity.Readings) Summary {
	e, w, f := r.Electricity.AmountPaid, r.Water.AmountPaid, r.Fuel.AmountPaid
	return total(Summary{Electricity: &e, Water: &w, Fuel: &f})
}

// TotalPaid gasto total del documento (suma de trimestres en el formato de cuatro trimestres).
func TotalPaid(doc *entity.InputsDoc) decimal.Decimal {
	sum := decimal.Zero
	if doc == nil {
		return sum
	}
	if doc.Inputs != nil {
		sum = sum.Add(SummaryOf(*doc.Inputs).Total)
	}
	if doc.Quarters != nil {
		doc.Quarters.Each(func(_ string, r entity.Readings) {
			sum = sum.Add(SummaryOf(r).Total)
		})
	}
	return sum
}

func total(s Summary) Summary {
	s.Total = decimal.Zero
	for _, v := range []*decimal.Decimal{s.Electricity, s.Water, s.Fuel} {
		if v != nil {
			s.Total = s.Total.Add(*v)
		}
	}
	return s
}
