package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/biztime-api/internal/application/dto"
	"github.com/jhoicas/biztime-api/internal/domain"
	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/jhoicas/biztime-api/internal/domain/repository"
	"github.com/jhoicas/biztime-api/pkg/slug"
)

// CompanyReadTxRunner abre una transacción de solo lectura con un repo de empresas atado a ella.
type CompanyReadTxRunner interface {
	RunCompanyRead(ctx context.Context, fn func(companyRepo repository.CompanyRepository) error) error
}

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo repository.CompanyRepository
	tx   CompanyReadTxRunner // opcional: sin runner las lecturas del detalle van directo al repo
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, tx CompanyReadTxRunner) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, tx: tx}
}

// List lista empresas (code, name) con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.CompanySummary, error) {
	page.Normalize()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanySummary, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CompanySummary{Code: c.Code, Name: c.Name})
	}
	return out, nil
}

// GetDetail compone la empresa con los ids de sus facturas y los nombres de sus industrias.
// Las tres lecturas comparten instantánea cuando hay TxRunner.
func (uc *CompanyUseCase) GetDetail(ctx context.Context, code string) (*dto.CompanyDetailResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: code es requerido", domain.ErrInvalidInput)
	}
	var detail *entity.CompanyDetail
	load := func(repo repository.CompanyRepository) error {
		var err error
		detail, err = loadCompanyDetail(ctx, repo, code)
		return err
	}
	var err error
	if uc.tx != nil {
		err = uc.tx.RunCompanyRead(ctx, load)
	} else {
		err = load(uc.repo)
	}
	if err != nil {
		return nil, err
	}
	return companyDetailToResponse(detail), nil
}

func loadCompanyDetail(ctx context.Context, repo repository.CompanyRepository, code string) (*entity.CompanyDetail, error) {
	company, err := repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("empresa %q: %w", code, err)
	}
	ids, err := repo.InvoiceIDs(ctx, code)
	if err != nil {
		return nil, err
	}
	industries, err := repo.IndustryNames(ctx, code)
	if err != nil {
		return nil, err
	}
	return &entity.CompanyDetail{Company: *company, InvoiceIDs: ids, Industries: industries}, nil
}

// Create crea una empresa. Si no llega code se deriva del nombre ("Apple Inc" -> "apple-inc").
// Devuelve domain.ErrDuplicate si el código o el nombre ya existen.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	code, err := resolveCode(in.Code, name)
	if err != nil {
		return nil, err
	}
	company := &entity.Company{
		Code:        code,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return companyToResponse(company), nil
}

// resolveCode usa el code explícito si ya es un slug válido o lo deriva del nombre.
// Un code explícito con mayúsculas, espacios o "/" no sería direccionable en la URL.
func resolveCode(code, name string) (string, error) {
	code = strings.TrimSpace(code)
	if code != "" {
		if !slug.Valid(code) {
			return "", fmt.Errorf("%w: code %q debe usar solo minúsculas, dígitos y guiones", domain.ErrInvalidInput, code)
		}
		return code, nil
	}
	derived, err := slug.Make(name)
	if err != nil {
		return "", fmt.Errorf("%w: no se puede derivar code de %q", domain.ErrInvalidInput, name)
	}
	return derived, nil
}

// Update reemplaza nombre y descripción. domain.ErrNotFound si la empresa no existe.
func (uc *CompanyUseCase) Update(ctx context.Context, code string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	company := &entity.Company{
		Code:        code,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
	}
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, fmt.Errorf("empresa %q: %w", code, err)
	}
	return companyToResponse(company), nil
}

// Delete elimina la empresa junto con sus facturas y vínculos (cascada en la base).
func (uc *CompanyUseCase) Delete(ctx context.Context, code string) error {
	if err := uc.repo.Delete(ctx, code); err != nil {
		return fmt.Errorf("empresa %q: %w", code, err)
	}
	return nil
}

func companyToResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
	}
}

func companyDetailToResponse(d *entity.CompanyDetail) *dto.CompanyDetailResponse {
	invoices := d.InvoiceIDs
	if invoices == nil {
		invoices = []int64{}
	}
	industries := d.Industries
	if industries == nil {
		industries = []string{}
	}
	return &dto.CompanyDetailResponse{
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
		Invoices:    invoices,
		Industries:  industries,
	}
}
