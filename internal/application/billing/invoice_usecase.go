package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/biztime-api/internal/application/dto"
	"github.com/jhoicas/biztime-api/internal/domain"
	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/jhoicas/biztime-api/internal/domain/payment"
	"github.com/jhoicas/biztime-api/internal/domain/repository"
	"github.com/jhoicas/biztime-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// InvoiceUseCase casos de uso de facturas, incluida la máquina de estados de pago.
type InvoiceUseCase struct {
	repo repository.InvoiceRepository
	tx   InvoiceTxRunner
	now  func() time.Time
	log  *logger.Logger
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(repo repository.InvoiceRepository, tx InvoiceTxRunner) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, tx: tx, now: time.Now, log: logger.Nop()}
}

// WithLogger registra las transiciones de pago en l.
func (uc *InvoiceUseCase) WithLogger(l *logger.Logger) *InvoiceUseCase {
	if l != nil {
		uc.log = l
	}
	return uc
}

// WithClock reemplaza el reloj usado para fijar add_date y paid_date.
func (uc *InvoiceUseCase) WithClock(now func() time.Time) *InvoiceUseCase {
	uc.now = now
	return uc
}

// List lista facturas aplicando filtros opcionales.
func (uc *InvoiceUseCase) List(ctx context.Context, in dto.InvoiceListRequest) ([]dto.InvoiceResponse, error) {
	in.Page.Normalize()
	list, err := uc.repo.List(ctx, entity.InvoiceFilter{
		CompCode: strings.TrimSpace(in.CompCode),
		Paid:     in.Paid,
		Limit:    in.Page.Limit,
		Offset:   in.Page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, invoiceToResponse(inv))
	}
	return out, nil
}

// Get devuelve la factura con su empresa anidada.
func (uc *InvoiceUseCase) Get(ctx context.Context, id int64) (*dto.InvoiceDetailResponse, error) {
	inv, err := uc.repo.GetWithCompany(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("factura %d: %w", id, err)
	}
	out := invoiceToDetailResponse(inv)
	return &out, nil
}

// Create crea una factura sin pagar con add_date de hoy según el reloj del caso de uso.
// comp_code inexistente -> domain.ErrForeignKey.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	compCode := strings.TrimSpace(in.CompCode)
	if compCode == "" {
		return nil, fmt.Errorf("%w: comp_code es requerido", domain.ErrInvalidInput)
	}
	if err := validateAmount(in.Amt); err != nil {
		return nil, err
	}
	inv, err := uc.repo.Create(ctx, compCode, *in.Amt, payment.DateOf(uc.now()))
	if err != nil {
		return nil, err
	}
	out := invoiceToResponse(inv)
	return &out, nil
}

// Update aplica la transición de pago y actualiza amt.
// La lectura de paid_date y la escritura ocurren en la misma transacción con la fila bloqueada;
// si la factura no existe se devuelve domain.ErrNotFound sin escribir nada.
func (uc *InvoiceUseCase) Update(ctx context.Context, id int64, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.Paid == nil {
		return nil, fmt.Errorf("%w: paid es requerido", domain.ErrInvalidInput)
	}
	if err := validateAmount(in.Amt); err != nil {
		return nil, err
	}
	var (
		updated *entity.Invoice
		tr      payment.Transition
	)
	err := uc.tx.RunInvoices(ctx, func(repo repository.InvoiceRepository) error {
		current, err := repo.GetPaidDateForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("factura %d: %w", id, err)
		}
		tr = payment.Apply(current, *in.Paid, uc.now())
		updated, err = repo.UpdatePayment(ctx, id, *in.Amt, tr.To == payment.Paid, tr.PaidDate)
		return err
	})
	if err != nil {
		return nil, err
	}
	if tr.FirstPayment() {
		uc.log.Info().
			Int64("invoice_id", updated.ID).
			Str("comp_code", updated.CompCode).
			Time("paid_date", *updated.PaidDate).
			Msg("factura pagada")
	}
	out := invoiceToResponse(updated)
	return &out, nil
}

// Delete elimina una factura. domain.ErrNotFound si no existe.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("factura %d: %w", id, err)
	}
	return nil
}

func validateAmount(amt *decimal.Decimal) error {
	if amt == nil {
		return fmt.Errorf("%w: amt es requerido", domain.ErrInvalidInput)
	}
	if !amt.IsPositive() {
		return fmt.Errorf("%w: amt debe ser mayor que cero", domain.ErrInvalidInput)
	}
	return nil
}
