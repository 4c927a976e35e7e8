package repository

import (
	"context"
	"time"

	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	// Create inserta la factura sin pagar con la fecha de emisión indicada; la base asigna id.
	// add_date y paid_date salen del mismo reloj.
	Create(ctx context.Context, compCode string, amt decimal.Decimal, addDate time.Time) (*entity.Invoice, error)
	// GetWithCompany obtiene la factura junto a su empresa (JOIN).
	GetWithCompany(ctx context.Context, id int64) (*entity.InvoiceWithCompany, error)
	// GetPaidDateForUpdate bloquea la fila (FOR UPDATE) y devuelve su paid_date actual.
	// Solo tiene sentido dentro de una transacción.
	GetPaidDateForUpdate(ctx context.Context, id int64) (*time.Time, error)
	// UpdatePayment escribe amt, paid y paid_date y devuelve la fila resultante.
	UpdatePayment(ctx context.Context, id int64, amt decimal.Decimal, paid bool, paidDate *time.Time) (*entity.Invoice, error)
	List(ctx context.Context, filter entity.InvoiceFilter) ([]*entity.Invoice, error)
	Delete(ctx context.Context, id int64) error
}
