package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/biztime-api/internal/application/billing"
	"github.com/jhoicas/biztime-api/internal/application/usecase"
	"github.com/jhoicas/biztime-api/pkg/jwt"
	"github.com/jhoicas/biztime-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC  *usecase.CompanyUseCase
	IndustryUC *usecase.IndustryUseCase
	InvoiceUC  *billing.InvoiceUseCase
	DocumentUC *billing.DocumentUseCase // opcional: sin él no se registran /pdf ni /xml
	DB         Pinger                   // opcional: /health sin verificación de base
	Logger     *logger.Logger           // opcional
	Metrics    *Metrics                 // opcional: sin él no hay /metrics
	JWTSecret  string                   // vacío: rutas de escritura abiertas
	Service    string
}

// AppConfig configuración base de fiber para la API. Immutable copia params y cuerpo:
// los repositorios pueden retener los strings después de la petición.
func AppConfig(appName string) fiber.Config {
	return fiber.Config{
		AppName:      appName,
		ErrorHandler: ErrorHandler,
		Immutable:    true,
	}
}

// Router registra middlewares y rutas de la API sobre app.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestID())
	if deps.Logger != nil {
		app.Use(RequestLogger(deps.Logger))
	}
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}
	app.Use(recover.New())

	app.Get("/health", HealthHandler(deps.Service, deps.DB))

	// Escrituras: Bearer token con scope "write" cuando hay secret configurado.
	var write []fiber.Handler
	if deps.JWTSecret != "" {
		write = []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireScope(jwt.ScopeWrite)}
	}
	guard := func(h fiber.Handler) []fiber.Handler {
		out := make([]fiber.Handler, 0, len(write)+1)
		out = append(out, write...)
		return append(out, h)
	}

	companies := app.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", guard(companyHandler.Create)...)
	companies.Get("/:code", companyHandler.Get)
	companies.Put("/:code", guard(companyHandler.Update)...)
	companies.Patch("/:code", guard(companyHandler.Update)...)
	companies.Delete("/:code", guard(companyHandler.Delete)...)

	invoices := app.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.DocumentUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", guard(invoiceHandler.Create)...)
	invoices.Get("/:id", invoiceHandler.Get)
	invoices.Put("/:id", guard(invoiceHandler.Update)...)
	invoices.Delete("/:id", guard(invoiceHandler.Delete)...)
	if deps.DocumentUC != nil {
		invoices.Get("/:id/pdf", invoiceHandler.PDF)
		invoices.Get("/:id/xml", invoiceHandler.XML)
	}

	industries := app.Group("/industries")
	industryHandler := NewIndustryHandler(deps.IndustryUC)
	industries.Get("/", industryHandler.List)
	industries.Post("/", guard(industryHandler.Create)...)
	industries.Get("/:code", industryHandler.Get)
	industries.Post("/:code", guard(industryHandler.AddCompany)...)
	industries.Delete("/:code/companies/:company", guard(industryHandler.RemoveCompany)...)
}
