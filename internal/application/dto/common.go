package dto

import "github.com/shopspring/decimal"

func init() {
	// Los montos viajan como número JSON (100.5), no como string ("100.5").
	decimal.MarshalJSONWithoutQuotes = true
}

// Límites de paginación de los listados.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int
	Offset int
}

// Normalize aplica valores por defecto y recorta a los límites permitidos.
func (p *PageRequest) Normalize() {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// StatusResponse respuesta de borrado: {"status": "deleted"}.
type StatusResponse struct {
	Status string `json:"status"`
}

// Deleted es la respuesta estándar de un DELETE exitoso.
var Deleted = StatusResponse{Status: "deleted"}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DateLayout formato de add_date y paid_date en las respuestas.
const DateLayout = "2006-01-02"
