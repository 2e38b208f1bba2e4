package dto

import (
	"time"

	"github.com/jhoicas/ecoforecast-api/internal/domain/entity"
	"github.com/jhoicas/ecoforecast-api/internal/domain/utility"
	"github.com/shopspring/decimal"
)

// SaveInputsRequest entrada de POST /api/inputs. Year 0 = año en curso.
type SaveInputsRequest struct {
	Year   int                    `json:"year"`
	Inputs entity.QuarterlyInputs `json:"inputs"`
}

// SaveFourQuarterRequest entrada de POST /api/inputs/four-quarter.
type SaveFourQuarterRequest struct {
	Period   string                   `json:"period"`
	Company  string                   `json:"company"`
	Year     int                      `json:"year"`
	Quarters entity.FourQuarterInputs `json:"quarters"`
}

// SaveResponse salida de los POST de guardado.
type SaveResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

// ReadingDTO par consumo/pago en el cable.
type ReadingDTO struct {
	Usage      float64 `json:"usage"`
	AmountPaid float64 `json:"amountPaid"`
}

// ReadingsDTO lecturas de un trimestre.
type ReadingsDTO struct {
	Electricity ReadingDTO `json:"electricity"`
	Water       ReadingDTO `json:"water"`
	Fuel        ReadingDTO `json:"fuel"`
}

// QuartersDTO lecturas Q1..Q4.
type QuartersDTO struct {
	Q1 ReadingsDTO `json:"q1"`
	Q2 ReadingsDTO `json:"q2"`
	Q3 ReadingsDTO `json:"q3"`
	Q4 ReadingsDTO `json:"q4"`
}

// InputsDocResponse documento persistido.
type InputsDocResponse struct {
	ID        string       `json:"id"`
	Period    string       `json:"period"`
	Company   string       `json:"company,omitempty"`
	Year      int          `json:"year"`
	Inputs    *ReadingsDTO `json:"inputs,omitempty"`
	Quarters  *QuartersDTO `json:"quarters,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// DocumentResponse envoltorio {ok, data}; data es null si no hay documento.
type DocumentResponse struct {
	OK   bool               `json:"ok"`
	Data *InputsDocResponse `json:"data"`
}

// PreviewDTO gasto por categoría (null = placeholder) y total.
type PreviewDTO struct {
	ElectricitySpend *float64 `json:"electricitySpend"`
	WaterSpend       *float64 `json:"waterSpend"`
	FuelSpend        *float64 `json:"fuelSpend"`
	Total            float64  `json:"total"`
}

// PreviewResponse salida de POST /api/inputs/preview.
type PreviewResponse struct {
	OK   bool       `json:"ok"`
	Data PreviewDTO `json:"data"`
}

// ── Conversiones ──────────────────────────────────────────────────────────────

// FromReadings convierte lecturas de dominio al cable.
func FromReadings(r entity.Readings) ReadingsDTO {
	conv := func(x entity.Reading) ReadingDTO {
		return ReadingDTO{Usage: x.Usage.InexactFloat64(), AmountPaid: x.AmountPaid.InexactFloat64()}
	}
	return ReadingsDTO{
		Electricity: conv(r.Electricity),
		Water:       conv(r.Water),
		Fuel:        conv(r.Fuel),
	}
}

// ToEntity convierte lecturas del cable a dominio.
func (r ReadingsDTO) ToEntity() entity.Readings {
	conv := func(x ReadingDTO) entity.Reading {
		return entity.Reading{Usage: decimal.NewFromFloat(x.Usage), AmountPaid: decimal.NewFromFloat(x.AmountPaid)}
	}
	return entity.Readings{
		Electricity: conv(r.Electricity),
		Water:       conv(r.Water),
		Fuel:        conv(r.Fuel),
	}
}

// FromDoc convierte un documento de dominio; nil → nil.
func FromDoc(d *entity.InputsDoc) *InputsDocResponse {
	if d == nil {
		return nil
	}
	out := &InputsDocResponse{
		ID:        d.ID,
		Period:    string(d.Period),
		Company:   d.Company,
		Year:      d.Year,
		CreatedAt: d.CreatedAt,
	}
	if d.Inputs != nil {
		r := FromReadings(*d.Inputs)
		out.Inputs = &r
	}
	if d.Quarters != nil {
		out.Quarters = &QuartersDTO{
			Q1: FromReadings(d.Quarters.Q1),
			Q2: FromReadings(d.Quarters.Q2),
			Q3: FromReadings(d.Quarters.Q3),
			Q4: FromReadings(d.Quarters.Q4),
		}
	}
	return out
}

// FromSummary convierte el preview; las categorías ausentes quedan en null.
func FromSummary(s utility.Summary) PreviewDTO {
	f := func(d *decimal.Decimal) *float64 {
		if d == nil {
			return nil
		}
		v := d.InexactFloat64()
		return &v
	}
	return PreviewDTO{
		ElectricitySpend: f(s.Electricity),
		WaterSpend:       f(s.Water),
		FuelSpend:        f(s.Fuel),
		Total:            s.Total.InexactFloat64(),
	}
}
