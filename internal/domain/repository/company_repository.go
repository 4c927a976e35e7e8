package repository

import (
	"context"

	"github.com/jhoicas/biztime-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
//
// GetByCode, Update y Delete devuelven domain.ErrNotFound si el código no existe.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByCode(ctx context.Context, code string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
	Delete(ctx context.Context, code string) error
	// InvoiceIDs devuelve los ids de facturas con comp_code = code (lista vacía si no hay).
	InvoiceIDs(ctx context.Context, code string) ([]int64, error)
	// IndustryNames devuelve los nombres de industria enlazados vía companies_industries.
	IndustryNames(ctx context.Context, code string) ([]string, error)
}
