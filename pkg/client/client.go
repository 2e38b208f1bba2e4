// Package client es el cliente HTTP de la API de consumos. Implementa form.Gateway para
// que el formulario de terminal guarde y precargue contra un servidor remoto.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/ecoforecast-api/internal/application/dto"
	"github.com/jhoicas/ecoforecast-api/internal/application/form"
	"github.com/jhoicas/ecoforecast-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa form.Gateway.
var _ form.Gateway = (*Client)(nil)

const maxBodyBytes = 1 << 20

// APIError respuesta no 2xx, o 2xx con ok=false. Message es el campo "error" del cuerpo.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// Client cliente de la API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configura el Client.
type Option func(*Client)

// WithHTTPClient reemplaza el http.Client (tests, transporte propio).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout fija el timeout de red de cada llamada.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New construye el cliente. baseURL p. ej. "http://localhost:5000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SaveInputs POST /api/inputs.
func (c *Client) SaveInputs(ctx context.Context, readings entity.Readings, year int) (string, error) {
	var out dto.SaveResponse
	in := dto.SaveInputsRequest{Year: year, Inputs: readings.Draft()}
	if err := c.do(ctx, http.MethodPost, "/api/inputs", in, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// LatestInputs lecturas del último documento trimestral; nil si no hay ninguno.
func (c *Client) LatestInputs(ctx context.Context) (*entity.Readings, error) {
	var out dto.DocumentResponse
	if err := c.do(ctx, http.MethodGet, "/api/inputs/latest", nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil || out.Data.Inputs == nil {
		return nil, nil
	}
	r := out.Data.Inputs.ToEntity()
	return &r, nil
}

// GetInputs GET /api/inputs/:id.
func (c *Client) GetInputs(ctx context.Context, id string) (*dto.InputsDocResponse, error) {
	var out dto.DocumentResponse
	if err := c.do(ctx, http.MethodGet, "/api/inputs/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// SaveFourQuarter POST /api/inputs/four-quarter.
func (c *Client) SaveFourQuarter(ctx context.Context, in dto.SaveFourQuarterRequest) (string, error) {
	if in.Period == "" {
		in.Period = string(entity.PeriodFourQuarter)
	}
	var out dto.SaveResponse
	if err := c.do(ctx, http.MethodPost, "/api/inputs/four-quarter", in, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// LatestFourQuarter GET /api/inputs/four-quarter/latest; company vacío = cualquier empresa.
func (c *Client) LatestFourQuarter(ctx context.Context, company string) (*dto.InputsDocResponse, error) {
	path := "/api/inputs/four-quarter/latest"
	if company != "" {
		path += "?company=" + url.QueryEscape(company)
	}
	var out dto.DocumentResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Preview POST /api/inputs/preview.
func (c *Client) Preview(ctx context.Context, draft entity.QuarterlyInputs) (dto.PreviewDTO, error) {
	var out dto.PreviewResponse
	if err := c.do(ctx, http.MethodPost, "/api/inputs/preview", draft, &out); err != nil {
		return dto.PreviewDTO{}, err
	}
	return out.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("client: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("client: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("client: leer respuesta: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		var er dto.ErrorResponse
		if json.Unmarshal(raw, &er) == nil {
			apiErr.Code = er.Code
			apiErr.Message = er.Error
		}
		return apiErr
	}

	// Un 2xx solo es éxito si el sobre trae ok=true.
	var er dto.ErrorResponse
	if err := json.Unmarshal(raw, &er); err != nil {
		return fmt.Errorf("client: decodificar respuesta: %w", err)
	}
	if !er.OK {
		return &APIError{Status: resp.StatusCode, Code: er.Code, Message: er.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("client: decodificar respuesta: %w", err)
	}
	return nil
}
