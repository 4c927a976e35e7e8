package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/jhoicas/biztime-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, comp_code, amt, paid, add_date, paid_date`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la factura. comp_code inexistente -> domain.ErrForeignKey.
func (r *InvoiceRepo) Create(ctx context.Context, compCode string, amt decimal.Decimal, addDate time.Time) (*entity.Invoice, error) {
	query := `
		INSERT INTO invoices (comp_code, amt, add_date)
		VALUES ($1, $2, $3)
		RETURNING ` + invoiceColumns
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, compCode, amt, addDate))
	if err != nil {
		return nil, classify("insert invoice", err)
	}
	return inv, nil
}

// GetWithCompany obtiene la factura con los datos de su empresa en una sola consulta.
func (r *InvoiceRepo) GetWithCompany(ctx context.Context, id int64) (*entity.InvoiceWithCompany, error) {
	const query = `
		SELECT i.id, i.comp_code, i.amt, i.paid, i.add_date, i.paid_date,
		       c.code, c.name, COALESCE(c.description, '')
		  FROM invoices i
		  JOIN companies c ON c.code = i.comp_code
		 WHERE i.id = $1`
	var out entity.InvoiceWithCompany
	err := r.q.QueryRow(ctx, query, id).Scan(
		&out.ID, &out.CompCode, &out.Amt, &out.Paid, &out.AddDate, &out.PaidDate,
		&out.Company.Code, &out.Company.Name, &out.Company.Description,
	)
	if err != nil {
		return nil, classify("get invoice with company", err)
	}
	return &out, nil
}

// GetPaidDateForUpdate bloquea la fila hasta el fin de la transacción.
func (r *InvoiceRepo) GetPaidDateForUpdate(ctx context.Context, id int64) (*time.Time, error) {
	var paidDate *time.Time
	err := r.q.QueryRow(ctx, `SELECT paid_date FROM invoices WHERE id = $1 FOR UPDATE`, id).Scan(&paidDate)
	if err != nil {
		return nil, classify("lock invoice", err)
	}
	return paidDate, nil
}

// UpdatePayment escribe amt, paid y paid_date.
func (r *InvoiceRepo) UpdatePayment(ctx context.Context, id int64, amt decimal.Decimal, paid bool, paidDate *time.Time) (*entity.Invoice, error) {
	query := `
		UPDATE invoices SET amt = $2, paid = $3, paid_date = $4
		WHERE id = $1
		RETURNING ` + invoiceColumns
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id, amt, paid, paidDate))
	if err != nil {
		return nil, classify("update invoice", err)
	}
	return inv, nil
}

// List devuelve facturas ordenadas por id aplicando los filtros presentes.
func (r *InvoiceRepo) List(ctx context.Context, filter entity.InvoiceFilter) ([]*entity.Invoice, error) {
	var (
		where []string
		args  []any
	)
	if filter.CompCode != "" {
		args = append(args, filter.CompCode)
		where = append(where, fmt.Sprintf("comp_code = $%d", len(args)))
	}
	if filter.Paid != nil {
		args = append(args, *filter.Paid)
		where = append(where, fmt.Sprintf("paid = $%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + invoiceColumns + ` FROM invoices`)
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	args = append(args, filter.Limit, filter.Offset)
	fmt.Fprintf(&sb, " ORDER BY id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, classify("list invoices", err)
	}
	defer rows.Close()

	list := make([]*entity.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, classify("scan invoice", err)
		}
		list = append(list, inv)
	}
	return list, classify("list invoices", rows.Err())
}

// Delete elimina una factura por id.
func (r *InvoiceRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return classify("delete invoice", err)
	}
	return notFoundIfNoRows("delete invoice", tag)
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	if err := row.Scan(&inv.ID, &inv.CompCode, &inv.Amt, &inv.Paid, &inv.AddDate, &inv.PaidDate); err != nil {
		return nil, err
	}
	return &inv, nil
}
