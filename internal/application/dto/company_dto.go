package dto

// CreateCompanyRequest entrada para crear una empresa. Si Code está vacío se deriva de Name.
type CreateCompanyRequest struct {
	Code        string `json:"code" validate:"omitempty,max=64"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateCompanyRequest entrada de PUT/PATCH /companies/:code.
type UpdateCompanyRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// CompanySummary elemento del listado de empresas.
type CompanySummary struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CompanyEnvelope {"company": {...}}.
type CompanyEnvelope struct {
	Company CompanyResponse `json:"company"`
}

// CompanyDetailResponse vista agregada con facturas e industrias.
type CompanyDetailResponse struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Invoices    []int64  `json:"invoices"`
	Industries  []string `json:"industries"`
}

// CompanyDetailEnvelope {"company": {..., invoices, industries}}.
type CompanyDetailEnvelope struct {
	Company CompanyDetailResponse `json:"company"`
}
