package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/jhoicas/biztime-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa. Código o nombre repetido -> domain.ErrDuplicate.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	const query = `
		INSERT INTO companies (code, name, description)
		VALUES ($1, $2, $3)`
	_, err := r.q.Exec(ctx, query, company.Code, company.Name, nullIfEmpty(company.Description))
	return classify("insert company", err)
}

// GetByCode obtiene una empresa por código.
func (r *CompanyRepo) GetByCode(ctx context.Context, code string) (*entity.Company, error) {
	const query = `
		SELECT code, name, COALESCE(description, '')
		FROM companies WHERE code = $1`
	var c entity.Company
	if err := r.q.QueryRow(ctx, query, code).Scan(&c.Code, &c.Name, &c.Description); err != nil {
		return nil, classify("get company", err)
	}
	return &c, nil
}

// Update reemplaza nombre y descripción; company queda con los valores persistidos.
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	const query = `
		UPDATE companies SET name = $2, description = $3
		WHERE code = $1
		RETURNING code, name, COALESCE(description, '')`
	err := r.q.QueryRow(ctx, query, company.Code, company.Name, nullIfEmpty(company.Description)).
		Scan(&company.Code, &company.Name, &company.Description)
	return classify("update company", err)
}

// List devuelve empresas ordenadas por código con paginación.
func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	const query = `
		SELECT code, name, COALESCE(description, '')
		FROM companies ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, classify("list companies", err)
	}
	defer rows.Close()

	list := make([]*entity.Company, 0)
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.Code, &c.Name, &c.Description); err != nil {
			return nil, classify("scan company", err)
		}
		list = append(list, &c)
	}
	return list, classify("list companies", rows.Err())
}

// Delete elimina una empresa por código. Sus facturas y vínculos con industrias
// se borran en cascada (ON DELETE CASCADE).
func (r *CompanyRepo) Delete(ctx context.Context, code string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM companies WHERE code = $1`, code)
	if err != nil {
		return classify("delete company", err)
	}
	return notFoundIfNoRows("delete company", tag)
}

// InvoiceIDs devuelve los ids de las facturas de la empresa.
func (r *CompanyRepo) InvoiceIDs(ctx context.Context, code string) ([]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM invoices WHERE comp_code = $1 ORDER BY id`, code)
	if err != nil {
		return nil, classify("list company invoices", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, classify("scan company invoices", err)
	}
	return ids, nil
}

// IndustryNames devuelve los nombres de las industrias de la empresa.
func (r *CompanyRepo) IndustryNames(ctx context.Context, code string) ([]string, error) {
	const query = `
		SELECT i.name
		  FROM industries i
		  JOIN companies_industries ci ON ci.industry_code = i.code
		 WHERE ci.company_code = $1
		 ORDER BY i.name`
	rows, err := r.q.Query(ctx, query, code)
	if err != nil {
		return nil, classify("list company industries", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, classify("scan company industries", err)
	}
	return names, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
