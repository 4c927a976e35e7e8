package billing

import (
	"context"

	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/jhoicas/biztime-api/internal/domain/repository"
)

// InvoiceTxRunner ejecuta una función dentro de una transacción con el repo de facturas atado a ella.
type InvoiceTxRunner interface {
	RunInvoices(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}

// InvoicePDFGenerator genera la representación PDF de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.InvoiceWithCompany) ([]byte, error)
}

// InvoiceXMLBuilder serializa una factura a XML y devuelve también el digest
// SHA-256 (hex) de su forma canónica.
type InvoiceXMLBuilder interface {
	Build(invoice *entity.InvoiceWithCompany) (doc []byte, digest string, err error)
}

// InvoiceReader lo mínimo que necesita DocumentUseCase del repositorio de facturas.
type InvoiceReader interface {
	GetWithCompany(ctx context.Context, id int64) (*entity.InvoiceWithCompany, error)
}
