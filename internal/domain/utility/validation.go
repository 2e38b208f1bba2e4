// Package utility contiene las reglas de dominio del formulario de consumos:
// validación del borrador y cálculo del gasto previo al envío.
package utility

import (
	"fmt"

	"github.com/jhoicas/ecoforecast-api/internal/domain"
	"github.com/jhoicas/ecoforecast-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MaxValue mayor lectura aceptada. Mantiene los totales finitos en JSON (float64)
// y dentro de la columna NUMERIC de PostgreSQL.
var MaxValue = decimal.New(1, 15)

// FieldError primer campo inválido del borrador. Envuelve domain.ErrValidation.
type FieldError struct {
	Quarter  string // "", o q1..q4 en el formato de cuatro trimestres
	Category entity.Category
	Field    entity.FieldName
	Missing  bool // campo vacío
	TooLarge bool // supera MaxValue; si ninguno de los dos, número negativo
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("%s %s ", e.Category.Label(), e.Field.Label())
	switch {
	case e.Missing:
		msg += "is required"
	case e.TooLarge:
		msg += "must not exceed " + MaxValue.String()
	default:
		msg += "must be a non-negative number"
	}
	if e.Quarter != "" {
		return fmt.Sprintf("%s: %s", quarterLabel(e.Quarter), msg)
	}
	return msg
}

func (e *FieldError) Unwrap() error { return domain.ErrValidation }

// Validate comprueba que los seis campos estén presentes y en [0, MaxValue].
// Devuelve el primer error en orden electricity, water, fuel / usage, amountPaid.
func Validate(in entity.QuarterlyInputs) error {
	_, err := Finalize(in)
	return err
}

// Finalize valida el borrador y lo convierte en lecturas inmutables.
func Finalize(in entity.QuarterlyInputs) (entity.Readings, error) {
	var out entity.Readings
	for _, c := range entity.Categories {
		r, err := finalizeResource(c, *in.Resource(c))
		if err != nil {
			return entity.Readings{}, err
		}
		switch c {
		case entity.Electricity:
			out.Electricity = r
		case entity.Water:
			out.Water = r
		case entity.Fuel:
			out.Fuel = r
		}
	}
	return out, nil
}

// FinalizeQuarters aplica Finalize a Q1..Q4; el error indica el trimestre.
func FinalizeQuarters(in entity.FourQuarterInputs) (entity.Quarters, error) {
	drafts := []entity.QuarterlyInputs{in.Q1, in.Q2, in.Q3, in.Q4}
	done := make([]entity.Readings, len(drafts))
	for i, d := range drafts {
		r, err := Finalize(d)
		if err != nil {
			if fe, ok := err.(*FieldError); ok {
				fe.Quarter = entity.QuarterKeys[i]
			}
			return entity.Quarters{}, err
		}
		done[i] = r
	}
	return entity.Quarters{Q1: done[0], Q2: done[1], Q3: done[2], Q4: done[3]}, nil
}

// ValidateQuarters variante sin conversión de FinalizeQuarters.
func ValidateQuarters(in entity.FourQuarterInputs) error {
	_, err := FinalizeQuarters(in)
	return err
}

func finalizeResource(c entity.Category, r entity.ResourceInput) (entity.Reading, error) {
	usage, err := checkField(c, entity.FieldUsage, r.Usage)
	if err != nil {
		return entity.Reading{}, err
	}
	paid, err := checkField(c, entity.FieldAmountPaid, r.AmountPaid)
	if err != nil {
		return entity.Reading{}, err
	}
	return entity.Reading{Usage: usage, AmountPaid: paid}, nil
}

func checkField(c entity.Category, name entity.FieldName, f entity.Field) (decimal.Decimal, error) {
	v, ok := f.Get()
	if !ok {
		return decimal.Zero, &FieldError{Category: c, Field: name, Missing: true}
	}
	if v.IsNegative() {
		return decimal.Zero, &FieldError{Category: c, Field: name}
	}
	if v.GreaterThan(MaxValue) {
		return decimal.Zero, &FieldError{Category: c, Field: name, TooLarge: true}
	}
	return v, nil
}

func quarterLabel(key string) string {
	switch key {
	case "q1":
		return "Q1"
	case "q2":
		return "Q2"
	case "q3":
		return "Q3"
	case "q4":
		return "Q4"
	default:
		return key
	}
}
