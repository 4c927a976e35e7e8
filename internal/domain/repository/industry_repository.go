package repository

import (
	"context"

	"github.com/jhoicas/biztime-api/internal/domain/entity"
)

// IndustryRepository define el puerto de persistencia para Industry y la tabla puente.
type IndustryRepository interface {
	Create(ctx context.Context, industry *entity.Industry) error
	GetByCode(ctx context.Context, code string) (*entity.Industry, error)
	// ListWithCompanies devuelve pares (industria, empresa) ordenados por nombre de industria.
	ListWithCompanies(ctx context.Context) ([]entity.IndustryCompany, error)
	CompanyCodes(ctx context.Context, industryCode string) ([]string, error)
	AddCompany(ctx context.Context, link entity.CompanyIndustry) error
	RemoveCompany(ctx context.Context, link entity.CompanyIndustry) error
}
