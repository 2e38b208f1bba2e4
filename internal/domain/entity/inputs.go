package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period distingue el formato del documento persistido.
type Period string

const (
	PeriodQuarterly   Period = "quarterly"
	PeriodFourQuarter Period = "four-quarter"
)

// Category recurso medido en un trimestre.
type Category string

const (
	Electricity Category = "electricity"
	Water       Category = "water"
	Fuel        Category = "fuel"
)

// Categories orden canónico de las categorías (validación, preview, reportes).
var Categories = []Category{Electricity, Water, Fuel}

// Label nombre legible de la categoría.
func (c Category) Label() string {
	switch c {
	case Electricity:
		return "Electricity"
	case Water:
		return "Water"
	case Fuel:
		return "Fuel"
	default:
		return string(c)
	}
}

// FieldName campo dentro de una categoría.
type FieldName string

const (
	FieldUsage      FieldName = "usage"
	FieldAmountPaid FieldName = "amountPaid"
)

// Label nombre legible del campo.
func (f FieldName) Label() string {
	switch f {
	case FieldUsage:
		return "usage"
	case FieldAmountPaid:
		return "amount paid"
	default:
		return string(f)
	}
}

// ResourceInput par consumo/pago de una categoría en el borrador.
type ResourceInput struct {
	Usage      Field `json:"usage"`
	AmountPaid Field `json:"amountPaid"`
}

// Get devuelve el campo pedido.
func (r ResourceInput) Get(name FieldName) Field {
	if name == FieldUsage {
		return r.Usage
	}
	return r.AmountPaid
}

// QuarterlyInputs borrador editable de un trimestre. El valor cero tiene todos los campos Pending.
type QuarterlyInputs struct {
	Electricity ResourceInput `json:"electricity"`
	Water       ResourceInput `json:"water"`
	Fuel        ResourceInput `json:"fuel"`
}

// Resource devuelve un puntero a la categoría para editarla; nil si la categoría no existe.
func (q *QuarterlyInputs) Resource(c Category) *ResourceInput {
	switch c {
	case Electricity:
		return &q.Electricity
	case Water:
		return &q.Water
	case Fuel:
		return &q.Fuel
	default:
		return nil
	}
}

// Reading par consumo/pago validado (ambos >= 0).
type Reading struct {
	Usage      decimal.Decimal `json:"usage"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
}

// Readings contenido validado de un trimestre.
type Readings struct {
	Electricity Reading `json:"electricity"`
	Water       Reading `json:"water"`
	Fuel        Reading `json:"fuel"`
}

// Get devuelve la lectura de la categoría.
func (r Readings) Get(c Category) Reading {
	switch c {
	case Water:
		return r.Water
	case Fuel:
		return r.Fuel
	default:
		return r.Electricity
	}
}

// Draft convierte lecturas guardadas en un borrador editable (precarga del formulario).
func (r Readings) Draft() QuarterlyInputs {
	in := func(x Reading) ResourceInput {
		return ResourceInput{Usage: Value(x.Usage), AmountPaid: Value(x.AmountPaid)}
	}
	return QuarterlyInputs{
		Electricity: in(r.Electricity),
		Water:       in(r.Water),
		Fuel:        in(r.Fuel),
	}
}

// FourQuarterInputs borrador del formato de cuatro trimestres.
type FourQuarterInputs struct {
	Q1 QuarterlyInputs `json:"q1"`
	Q2 QuarterlyInputs `json:"q2"`
	Q3 QuarterlyInputs `json:"q3"`
	Q4 QuarterlyInputs `json:"q4"`
}

// Quarters lecturas validadas de Q1..Q4.
type Quarters struct {
	Q1 Readings `json:"q1"`
	Q2 Readings `json:"q2"`
	Q3 Readings `json:"q3"`
	Q4 Readings `json:"q4"`
}

// QuarterKeys claves de trimestre en orden.
var QuarterKeys = []string{"q1", "q2", "q3", "q4"}

// Each recorre los trimestres en orden.
func (q Quarters) Each(fn func(key string, r Readings)) {
	fn("q1", q.Q1)
	fn("q2", q.Q2)
	fn("q3", q.Q3)
	fn("q4", q.Q4)
}

// InputsDoc documento persistido e inmutable. Inputs se usa en PeriodQuarterly y Quarters en
// PeriodFourQuarter. ID y CreatedAt los asigna el repositorio al insertar.
type InputsDoc struct {
	ID        string
	Period    Period
	Company   string
	Year      int
	Inputs    *Readings
	Quarters  *Quarters
	CreatedAt time.Time
}

// Clone copia el documento (los repositorios nunca entregan sus punteros internos).
func (d *InputsDoc) Clone() *InputsDoc {
	if d == nil {
		return nil
	}
	out := *d
	if d.Inputs != nil {
		in := *d.Inputs
		out.Inputs = &in
	}
	if d.Quarters != nil {
		q := *d.Quarters
		out.Quarters = &q
	}
	return &out
}
