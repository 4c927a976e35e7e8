// Package memstore implementa los puertos de repositorio en memoria para tests.
// Reproduce las restricciones del esquema PostgreSQL: PK/UNIQUE, claves foráneas
// y borrado en cascada de facturas y vínculos al eliminar una empresa.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/biztime-api/internal/domain"
	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/jhoicas/biztime-api/internal/domain/payment"
	"github.com/jhoicas/biztime-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Store estado compartido por los tres repositorios.
type Store struct {
	mu         sync.Mutex
	companies  map[string]entity.Company
	invoices   map[int64]entity.Invoice
	industries map[string]entity.Industry
	links      map[entity.CompanyIndustry]struct{}
	nextID     int64

	// Fail, si no es nil, se devuelve envuelto en domain.ErrUnavailable en cada operación.
	Fail error
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		companies:  map[string]entity.Company{},
		invoices:   map[int64]entity.Invoice{},
		industries: map[string]entity.Industry{},
		links:      map[entity.CompanyIndustry]struct{}{},
	}
}

// Companies devuelve el repositorio de empresas.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s: s} }

// Invoices devuelve el repositorio de facturas.
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{s: s} }

// Industries devuelve el repositorio de industrias.
func (s *Store) Industries() *IndustryRepo { return &IndustryRepo{s: s} }

// TxRunner devuelve un runner que ejecuta el callback sobre el mismo store.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// InvoiceCount número de facturas almacenadas.
func (s *Store) InvoiceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.invoices)
}

// LinkCount número de vínculos empresa-industria.
func (s *Store) LinkCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.links)
}

// PutInvoice inserta una factura tal cual (fixtures con fechas arbitrarias).
func (s *Store) PutInvoice(inv entity.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv.ID == 0 {
		s.nextID++
		inv.ID = s.nextID
	} else if inv.ID > s.nextID {
		s.nextID = inv.ID
	}
	s.invoices[inv.ID] = inv
}

func (s *Store) lock(op string) (func(), error) {
	s.mu.Lock()
	if s.Fail != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrUnavailable, s.Fail)
	}
	return s.mu.Unlock, nil
}

func notFound(op string) error { return fmt.Errorf("%s: %w", op, domain.ErrNotFound) }

// ── Companies ────────────────────────────────────────────────────────────────

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo repositorio de empresas en memoria.
type CompanyRepo struct{ s *Store }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	unlock, err := r.s.lock("insert company")
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := r.s.companies[c.Code]; ok {
		return fmt.Errorf("insert company: %w (companies_pkey)", domain.ErrDuplicate)
	}
	for _, other := range r.s.companies {
		if other.Name == c.Name {
			return fmt.Errorf("insert company: %w (companies_name_key)", domain.ErrDuplicate)
		}
	}
	r.s.companies[c.Code] = cloneCompany(*c)
	return nil
}

func (r *CompanyRepo) GetByCode(_ context.Context, code string) (*entity.Company, error) {
	unlock, err := r.s.lock("get company")
	if err != nil {
		return nil, err
	}
	defer unlock()
	c, ok := r.s.companies[code]
	if !ok {
		return nil, notFound("get company")
	}
	return &c, nil
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	unlock, err := r.s.lock("update company")
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := r.s.companies[c.Code]; !ok {
		return notFound("update company")
	}
	for code, other := range r.s.companies {
		if code != c.Code && other.Name == c.Name {
			return fmt.Errorf("update company: %w (companies_name_key)", domain.ErrDuplicate)
		}
	}
	r.s.companies[c.Code] = cloneCompany(*c)
	return nil
}

func (r *CompanyRepo) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	unlock, err := r.s.lock("list companies")
	if err != nil {
		return nil, err
	}
	defer unlock()
	codes := make([]string, 0, len(r.s.companies))
	for code := range r.s.companies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	out := make([]*entity.Company, 0)
	for _, code := range page(codes, limit, offset) {
		c := r.s.companies[code]
		out = append(out, &c)
	}
	return out, nil
}

func (r *CompanyRepo) Delete(_ context.Context, code string) error {
	unlock, err := r.s.lock("delete company")
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := r.s.companies[code]; !ok {
		return notFound("delete company")
	}
	delete(r.s.companies, code)
	for id, inv := range r.s.invoices {
		if inv.CompCode == code {
			delete(r.s.invoices, id)
		}
	}
	for link := range r.s.links {
		if link.CompanyCode == code {
			delete(r.s.links, link)
		}
	}
	return nil
}

func (r *CompanyRepo) InvoiceIDs(_ context.Context, code string) ([]int64, error) {
	unlock, err := r.s.lock("list company invoices")
	if err != nil {
		return nil, err
	}
	defer unlock()
	ids := []int64{}
	for id, inv := range r.s.invoices {
		if inv.CompCode == code {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *CompanyRepo) IndustryNames(_ context.Context, code string) ([]string, error) {
	unlock, err := r.s.lock("list company industries")
	if err != nil {
		return nil, err
	}
	defer unlock()
	names := []string{}
	for link := range r.s.links {
		if link.CompanyCode == code {
			names = append(names, r.s.industries[link.IndustryCode].Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// cloneCompany copia los strings: quien llama puede reutilizar su memoria
// (fiber sin Immutable) y el store los conserva como claves.
func cloneCompany(c entity.Company) entity.Company {
	return entity.Company{
		Code:        strings.Clone(c.Code),
		Name:        strings.Clone(c.Name),
		Description: strings.Clone(c.Description),
	}
}

// ── Invoices ─────────────────────────────────────────────────────────────────

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo repositorio de facturas en memoria.
type InvoiceRepo struct{ s *Store }

func (r *InvoiceRepo) Create(_ context.Context, compCode string, amt decimal.Decimal, addDate time.Time) (*entity.Invoice, error) {
	unlock, err := r.s.lock("insert invoice")
	if err != nil {
		return nil, err
	}
	defer unlock()
	if _, ok := r.s.companies[compCode]; !ok {
		return nil, fmt.Errorf("insert invoice: %w (invoices_comp_code_fkey)", domain.ErrForeignKey)
	}
	r.s.nextID++
	inv := entity.Invoice{
		ID:       r.s.nextID,
		CompCode: strings.Clone(compCode),
		Amt:      amt,
		AddDate:  payment.DateOf(addDate),
	}
	r.s.invoices[inv.ID] = inv
	return &inv, nil
}

func (r *InvoiceRepo) GetWithCompany(_ context.Context, id int64) (*entity.InvoiceWithCompany, error) {
	unlock, err := r.s.lock("get invoice with company")
	if err != nil {
		return nil, err
	}
	defer unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, notFound("get invoice with company")
	}
	return &entity.InvoiceWithCompany{Invoice: inv, Company: r.s.companies[inv.CompCode]}, nil
}

func (r *InvoiceRepo) GetPaidDateForUpdate(_ context.Context, id int64) (*time.Time, error) {
	unlock, err := r.s.lock("lock invoice")
	if err != nil {
		return nil, err
	}
	defer unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, notFound("lock invoice")
	}
	return inv.PaidDate, nil
}

func (r *InvoiceRepo) UpdatePayment(_ context.Context, id int64, amt decimal.Decimal, paid bool, paidDate *time.Time) (*entity.Invoice, error) {
	unlock, err := r.s.lock("update invoice")
	if err != nil {
		return nil, err
	}
	defer unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, notFound("update invoice")
	}
	inv.Amt = amt
	inv.Paid = paid
	inv.PaidDate = paidDate
	r.s.invoices[id] = inv
	return &inv, nil
}

func (r *InvoiceRepo) List(_ context.Context, f entity.InvoiceFilter) ([]*entity.Invoice, error) {
	unlock, err := r.s.lock("list invoices")
	if err != nil {
		return nil, err
	}
	defer unlock()
	ids := make([]int64, 0, len(r.s.invoices))
	for id, inv := range r.s.invoices {
		if f.CompCode != "" && inv.CompCode != f.CompCode {
			continue
		}
		if f.Paid != nil && inv.Paid != *f.Paid {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*entity.Invoice, 0)
	for _, id := range page(ids, f.Limit, f.Offset) {
		inv := r.s.invoices[id]
		out = append(out, &inv)
	}
	return out, nil
}

func (r *InvoiceRepo) Delete(_ context.Context, id int64) error {
	unlock, err := r.s.lock("delete invoice")
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := r.s.invoices[id]; !ok {
		return notFound("delete invoice")
	}
	delete(r.s.invoices, id)
	return nil
}

// ── Industries ───────────────────────────────────────────────────────────────

var _ repository.IndustryRepository = (*IndustryRepo)(nil)

// IndustryRepo repositorio de industrias en memoria.
type IndustryRepo struct{ s *Store }

func (r *IndustryRepo) Create(_ context.Context, ind *entity.Industry) error {
	unlock, err := r.s.lock("insert industry")
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := r.s.industries[ind.Code]; ok {
		return fmt.Errorf("insert industry: %w (industries_pkey)", domain.ErrDuplicate)
	}
	for _, other := range r.s.industries {
		if other.Name == ind.Name {
			return fmt.Errorf("insert industry: %w (industries_name_key)", domain.ErrDuplicate)
		}
	}
	r.s.industries[ind.Code] = entity.Industry{Code: strings.Clone(ind.Code), Name: strings.Clone(ind.Name)}
	return nil
}

func (r *IndustryRepo) GetByCode(_ context.Context, code string) (*entity.Industry, error) {
	unlock, err := r.s.lock("get industry")
	if err != nil {
		return nil, err
	}
	defer unlock()
	ind, ok := r.s.industries[code]
	if !ok {
		return nil, notFound("get industry")
	}
	return &ind, nil
}

func (r *IndustryRepo) ListWithCompanies(_ context.Context) ([]entity.IndustryCompany, error) {
	unlock, err := r.s.lock("list industries")
	if err != nil {
		return nil, err
	}
	defer unlock()
	out := []entity.IndustryCompany{}
	for _, ind := range r.s.industries {
		var codes []string
		for link := range r.s.links {
			if link.IndustryCode == ind.Code {
				codes = append(codes, link.CompanyCode)
			}
		}
		if len(codes) == 0 {
			out = append(out, entity.IndustryCompany{Industry: ind.Name})
			continue
		}
		sort.Strings(codes)
		for _, code := range codes {
			code := code
			out = append(out, entity.IndustryCompany{Industry: ind.Name, CompanyCode: &code})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Industry < out[j].Industry })
	return out, nil
}

func (r *IndustryRepo) CompanyCodes(_ context.Context, industryCode string) ([]string, error) {
	unlock, err := r.s.lock("list industry companies")
	if err != nil {
		return nil, err
	}
	defer unlock()
	codes := []string{}
	for link := range r.s.links {
		if link.IndustryCode == industryCode {
			codes = append(codes, link.CompanyCode)
		}
	}
	sort.Strings(codes)
	return codes, nil
}

func (r *IndustryRepo) AddCompany(_ context.Context, link entity.CompanyIndustry) error {
	unlock, err := r.s.lock("link company to industry")
	if err != nil {
		return err
	}
	defer unlock()
	_, okCompany := r.s.companies[link.CompanyCode]
	_, okIndustry := r.s.industries[link.IndustryCode]
	if !okCompany || !okIndustry {
		return fmt.Errorf("link company to industry: %w", domain.ErrForeignKey)
	}
	if _, ok := r.s.links[link]; ok {
		return fmt.Errorf("link company to industry: %w", domain.ErrConflict)
	}
	link = entity.CompanyIndustry{CompanyCode: strings.Clone(link.CompanyCode), IndustryCode: strings.Clone(link.IndustryCode)}
	r.s.links[link] = struct{}{}
	return nil
}

func (r *IndustryRepo) RemoveCompany(_ context.Context, link entity.CompanyIndustry) error {
	unlock, err := r.s.lock("unlink company from industry")
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := r.s.links[link]; !ok {
		return notFound("unlink company from industry")
	}
	delete(r.s.links, link)
	return nil
}

// ── Transacciones ────────────────────────────────────────────────────────────

// TxRunner ejecuta los callbacks directamente sobre el store (sin aislamiento).
type TxRunner struct{ s *Store }

func (t *TxRunner) RunCompanyRead(_ context.Context, fn func(repository.CompanyRepository) error) error {
	return fn(t.s.Companies())
}

func (t *TxRunner) RunInvoices(_ context.Context, fn func(repository.InvoiceRepository) error) error {
	return fn(t.s.Invoices())
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
