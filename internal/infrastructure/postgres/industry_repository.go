package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/biztime-api/internal/domain"
	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/jhoicas/biztime-api/internal/domain/repository"
)

var _ repository.IndustryRepository = (*IndustryRepo)(nil)

// IndustryRepo implementación de IndustryRepository sobre PostgreSQL.
type IndustryRepo struct {
	q Querier
}

// NewIndustryRepository construye el adaptador.
func NewIndustryRepository(q Querier) *IndustryRepo {
	return &IndustryRepo{q: q}
}

// Create persiste una industria.
func (r *IndustryRepo) Create(ctx context.Context, industry *entity.Industry) error {
	_, err := r.q.Exec(ctx, `INSERT INTO industries (code, name) VALUES ($1, $2)`, industry.Code, industry.Name)
	return classify("insert industry", err)
}

// GetByCode obtiene una industria por código.
func (r *IndustryRepo) GetByCode(ctx context.Context, code string) (*entity.Industry, error) {
	var ind entity.Industry
	err := r.q.QueryRow(ctx, `SELECT code, name FROM industries WHERE code = $1`, code).Scan(&ind.Code, &ind.Name)
	if err != nil {
		return nil, classify("get industry", err)
	}
	return &ind, nil
}

// ListWithCompanies une cada industria con sus empresas; las industrias sin empresas
// aparecen una vez con CompanyCode nil.
func (r *IndustryRepo) ListWithCompanies(ctx context.Context) ([]entity.IndustryCompany, error) {
	const query = `
		SELECT i.name, ci.company_code
		  FROM industries i
		  LEFT JOIN companies_industries ci ON ci.industry_code = i.code
		 ORDER BY i.name, ci.company_code`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, classify("list industries", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.IndustryCompany, error) {
		var ic entity.IndustryCompany
		err := row.Scan(&ic.Industry, &ic.CompanyCode)
		return ic, err
	})
	if err != nil {
		return nil, classify("scan industries", err)
	}
	return out, nil
}

// CompanyCodes devuelve los códigos de empresa enlazados a la industria.
func (r *IndustryRepo) CompanyCodes(ctx context.Context, industryCode string) ([]string, error) {
	const query = `
		SELECT company_code FROM companies_industries
		 WHERE industry_code = $1 ORDER BY company_code`
	rows, err := r.q.Query(ctx, query, industryCode)
	if err != nil {
		return nil, classify("list industry companies", err)
	}
	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, classify("scan industry companies", err)
	}
	return codes, nil
}

// AddCompany crea el vínculo empresa-industria. Vínculo repetido -> domain.ErrConflict.
func (r *IndustryRepo) AddCompany(ctx context.Context, link entity.CompanyIndustry) error {
	const query = `
		INSERT INTO companies_industries (company_code, industry_code)
		VALUES ($1, $2)`
	_, err := r.q.Exec(ctx, query, link.CompanyCode, link.IndustryCode)
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("link company %s to industry %s: %w", link.CompanyCode, link.IndustryCode, domain.ErrConflict)
	}
	return classify("link company to industry", err)
}

// RemoveCompany elimina el vínculo empresa-industria.
func (r *IndustryRepo) RemoveCompany(ctx context.Context, link entity.CompanyIndustry) error {
	const query = `
		DELETE FROM companies_industries
		 WHERE company_code = $1 AND industry_code = $2`
	tag, err := r.q.Exec(ctx, query, link.CompanyCode, link.IndustryCode)
	if err != nil {
		return classify("unlink company from industry", err)
	}
	return notFoundIfNoRows("unlink company from industry", tag)
}
