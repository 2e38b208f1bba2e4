package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los textos llegan al cliente HTTP.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidID    = errors.New("invalid id")
	ErrInvalidInput = errors.New("invalid input")
	ErrValidation   = errors.New("validation failed")
)
