package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest entrada de POST /invoices.
type CreateInvoiceRequest struct {
	CompCode string           `json:"comp_code" validate:"required"`
	Amt      *decimal.Decimal `json:"amt" validate:"required"`
}

// UpdateInvoiceRequest entrada de PUT /invoices/:id. Ambos campos son obligatorios.
type UpdateInvoiceRequest struct {
	Amt  *decimal.Decimal `json:"amt" validate:"required"`
	Paid *bool            `json:"paid" validate:"required"`
}

// InvoiceListRequest filtros opcionales de GET /invoices.
type InvoiceListRequest struct {
	Page     PageRequest
	CompCode string
	Paid     *bool
}

// InvoiceResponse salida de una factura.
type InvoiceResponse struct {
	ID       int64           `json:"id"`
	CompCode string          `json:"comp_code"`
	Amt      decimal.Decimal `json:"amt"`
	Paid     bool            `json:"paid"`
	AddDate  string          `json:"add_date"`
	PaidDate *string         `json:"paid_date"`
}

// InvoiceEnvelope {"invoice": {...}}.
type InvoiceEnvelope struct {
	Invoice InvoiceResponse `json:"invoice"`
}

// InvoiceDetailResponse factura con su empresa anidada.
type InvoiceDetailResponse struct {
	ID       int64           `json:"id"`
	Amt      decimal.Decimal `json:"amt"`
	Paid     bool            `json:"paid"`
	AddDate  string          `json:"add_date"`
	PaidDate *string         `json:"paid_date"`
	Company  CompanyResponse `json:"company"`
}

// InvoiceDetailEnvelope {"invoice": {..., company: {...}}}.
type InvoiceDetailEnvelope struct {
	Invoice InvoiceDetailResponse `json:"invoice"`
}
