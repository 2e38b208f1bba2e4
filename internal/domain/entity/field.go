package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Field es un valor numérico del borrador: Pending (campo vacío en el formulario) o Value(n).
// El valor cero es Pending.
type Field struct {
	value decimal.Decimal
	set   bool
}

// Pending devuelve un campo sin valor.
func Pending() Field { return Field{} }

// Value devuelve un campo con el número indicado.
func Value(d decimal.Decimal) Field { return Field{value: d, set: true} }

// ValueFromFloat atajo para tests y conversiones desde JSON numérico.
func ValueFromFloat(f float64) Field { return Value(decimal.NewFromFloat(f)) }

// ParseField interpreta el texto del formulario. "" (o solo espacios) es Pending;
// un texto no numérico devuelve error y Pending.
func ParseField(raw string) (Field, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Pending(), nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Pending(), fmt.Errorf("%q is not a number", raw)
	}
	return Value(d), nil
}

// Get devuelve el número y true, o (0, false) si está Pending.
func (f Field) Get() (decimal.Decimal, bool) {
	if !f.set {
		return decimal.Zero, false
	}
	return f.value, true
}

// IsPending indica si el campo está vacío.
func (f Field) IsPending() bool { return !f.set }

// String devuelve "" para Pending, el número en otro caso (para rellenar inputs de texto).
func (f Field) String() string {
	if !f.set {
		return ""
	}
	return f.value.String()
}

// Equal compara estado y valor numérico.
func (f Field) Equal(o Field) bool {
	if f.set != o.set {
		return false
	}
	return !f.set || f.value.Equal(o.value)
}

// MarshalJSON escribe null para Pending y el número sin comillas en otro caso.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.set {
		return []byte("null"), nil
	}
	return []byte(f.value.String()), nil
}

// UnmarshalJSON acepta null, "" (Pending), números y strings numéricos.
func (f *Field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = Pending()
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := ParseField(s)
		if err != nil {
			return err
		}
		*f = parsed
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return fmt.Errorf("invalid numeric value %s", string(b))
	}
	*f = Value(d)
	return nil
}
