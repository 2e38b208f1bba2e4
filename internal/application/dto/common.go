package dto

// ErrorResponse cuerpo de error HTTP. Code es opcional y estable para clientes.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

// NewError construye un ErrorResponse con ok=false.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{OK: false, Code: code, Error: message}
}

// HealthResponse salida de /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Store   string `json:"store"`
}
