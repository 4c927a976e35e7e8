package entity

// Industry representa un sector económico al que pueden pertenecer varias empresas.
type Industry struct {
	Code string
	Name string
}

// CompanyIndustry es la fila de la tabla puente companies_industries.
type CompanyIndustry struct {
	CompanyCode  string
	IndustryCode string
}

// IndustryCompany es una fila del listado de industrias. CompanyCode es nil
// cuando la industria aún no tiene empresas (LEFT JOIN).
type IndustryCompany struct {
	Industry    string
	CompanyCode *string
}

// IndustryDetail agrega una industria con los códigos de sus empresas.
type IndustryDetail struct {
	Industry
	CompanyCodes []string
}
