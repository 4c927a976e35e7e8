package dto

// CreateIndustryRequest entrada de POST /industries. Si Code está vacío se deriva de Name.
type CreateIndustryRequest struct {
	Code string `json:"code" validate:"omitempty,max=64"`
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// AddCompanyToIndustryRequest entrada de POST /industries/:code.
type AddCompanyToIndustryRequest struct {
	Company string `json:"company" validate:"required"`
}

// IndustryResponse salida de una industria.
type IndustryResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// IndustryEnvelope {"industry": {...}}.
type IndustryEnvelope struct {
	Industry IndustryResponse `json:"industry"`
}

// IndustryCompanyResponse par (industria, empresa) del listado; Company es null
// si la industria no tiene empresas.
type IndustryCompanyResponse struct {
	Industry string  `json:"industry"`
	Company  *string `json:"company"`
}

// IndustryDetailResponse industria con los códigos de sus empresas.
type IndustryDetailResponse struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Companies []string `json:"companies"`
}

// IndustryDetailEnvelope {"industry": {..., companies}}.
type IndustryDetailEnvelope struct {
	Industry IndustryDetailResponse `json:"industry"`
}

// CompanyIndustryResponse vínculo creado.
type CompanyIndustryResponse struct {
	Industry string `json:"industry"`
	Company  string `json:"company"`
}

// CompanyIndustryEnvelope {"company_industry": {...}}.
type CompanyIndustryEnvelope struct {
	CompanyIndustry CompanyIndustryResponse `json:"company_industry"`
}
