package entity

// Company representa una empresa identificada por su código (slug).
type Company struct {
	Code        string
	Name        string
	Description string // opcional; vacío se persiste como NULL
}

// CompanyDetail es la vista agregada de una empresa: sus facturas e industrias asociadas.
type CompanyDetail struct {
	Company
	InvoiceIDs []int64
	Industries []string // nombres de industria vía companies_industries
}
