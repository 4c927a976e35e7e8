package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa una factura emitida a una empresa.
// AddDate se fija al crear y no cambia; PaidDate es nil mientras la factura no esté pagada.
type Invoice struct {
	ID       int64
	CompCode string
	Amt      decimal.Decimal
	Paid     bool
	AddDate  time.Time
	PaidDate *time.Time
}

// InvoiceWithCompany es la vista de detalle de una factura junto con su empresa.
type InvoiceWithCompany struct {
	Invoice
	Company Company
}

// InvoiceFilter filtros opcionales del listado de facturas.
type InvoiceFilter struct {
	CompCode string
	Paid     *bool
	Limit    int
	Offset   int
}
