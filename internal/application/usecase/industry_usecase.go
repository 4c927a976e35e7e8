package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/biztime-api/internal/application/dto"
	"github.com/jhoicas/biztime-api/internal/domain"
	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/jhoicas/biztime-api/internal/domain/repository"
)

// IndustryUseCase casos de uso de industrias y de su relación con empresas.
type IndustryUseCase struct {
	industries repository.IndustryRepository
	companies  repository.CompanyRepository
}

// NewIndustryUseCase construye el caso de uso.
func NewIndustryUseCase(industries repository.IndustryRepository, companies repository.CompanyRepository) *IndustryUseCase {
	return &IndustryUseCase{industries: industries, companies: companies}
}

// List devuelve los pares (industria, empresa) ordenados por industria.
func (uc *IndustryUseCase) List(ctx context.Context) ([]dto.IndustryCompanyResponse, error) {
	rows, err := uc.industries.ListWithCompanies(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IndustryCompanyResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.IndustryCompanyResponse{Industry: r.Industry, Company: r.CompanyCode})
	}
	return out, nil
}

// Get devuelve la industria con los códigos de sus empresas.
func (uc *IndustryUseCase) Get(ctx context.Context, code string) (*dto.IndustryDetailResponse, error) {
	ind, err := uc.industries.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("industria %q: %w", code, err)
	}
	codes, err := uc.industries.CompanyCodes(ctx, code)
	if err != nil {
		return nil, err
	}
	if codes == nil {
		codes = []string{}
	}
	return &dto.IndustryDetailResponse{Code: ind.Code, Name: ind.Name, Companies: codes}, nil
}

// Create crea una industria; sin code se deriva del nombre.
func (uc *IndustryUseCase) Create(ctx context.Context, in dto.CreateIndustryRequest) (*dto.IndustryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	code, err := resolveCode(in.Code, name)
	if err != nil {
		return nil, err
	}
	ind := &entity.Industry{Code: code, Name: name}
	if err := uc.industries.Create(ctx, ind); err != nil {
		return nil, err
	}
	return &dto.IndustryResponse{Code: ind.Code, Name: ind.Name}, nil
}

// AddCompany enlaza una empresa a la industria.
// domain.ErrNotFound si falta la industria o la empresa; domain.ErrConflict si el vínculo ya existe.
func (uc *IndustryUseCase) AddCompany(ctx context.Context, industryCode, companyCode string) (*dto.CompanyIndustryResponse, error) {
	companyCode = strings.TrimSpace(companyCode)
	if companyCode == "" {
		return nil, fmt.Errorf("%w: company es requerido", domain.ErrInvalidInput)
	}
	if _, err := uc.industries.GetByCode(ctx, industryCode); err != nil {
		return nil, fmt.Errorf("industria %q: %w", industryCode, err)
	}
	if _, err := uc.companies.GetByCode(ctx, companyCode); err != nil {
		return nil, fmt.Errorf("empresa %q: %w", companyCode, err)
	}
	link := entity.CompanyIndustry{CompanyCode: companyCode, IndustryCode: industryCode}
	if err := uc.industries.AddCompany(ctx, link); err != nil {
		// Borrado concurrente entre la verificación y el INSERT.
		if errors.Is(err, domain.ErrForeignKey) {
			return nil, fmt.Errorf("%w: %w", domain.ErrNotFound, err)
		}
		return nil, err
	}
	return &dto.CompanyIndustryResponse{Industry: industryCode, Company: companyCode}, nil
}

// RemoveCompany elimina el vínculo. domain.ErrNotFound si no existía.
func (uc *IndustryUseCase) RemoveCompany(ctx context.Context, industryCode, companyCode string) error {
	return uc.industries.RemoveCompany(ctx, entity.CompanyIndustry{CompanyCode: companyCode, IndustryCode: industryCode})
}
