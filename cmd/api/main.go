package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/swaggo/swag"

	"github.com/jhoicas/biztime-api/docs"
	"github.com/jhoicas/biztime-api/internal/application/billing"
	"github.com/jhoicas/biztime-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/biztime-api/internal/infrastructure/pdf"
	"github.com/jhoicas/biztime-api/internal/infrastructure/postgres"
	"github.com/jhoicas/biztime-api/internal/infrastructure/xmldoc"
	httpRouter "github.com/jhoicas/biztime-api/internal/interfaces/http"
	"github.com/jhoicas/biztime-api/pkg/config"
	"github.com/jhoicas/biztime-api/pkg/logger"
)

// @title                       biztime API
// @version                     1.0
// @description                 API de empresas, facturas e industrias.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer <token> emitido con cmd/token (scope write).
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("auth", cfg.JWT.Enabled()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	industryRepo := postgres.NewIndustryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	companyUC := usecase.NewCompanyUseCase(companyRepo, txRunner)
	industryUC := usecase.NewIndustryUseCase(industryRepo, companyRepo)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, txRunner).WithLogger(log)

	// Documentos: PDF (maroto) y XML con digest C14N
	documentUC := billing.NewDocumentUseCase(
		invoiceRepo,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		xmldoc.NewBuilder(),
	)

	appCfg := httpRouter.AppConfig(cfg.App.Name)
	appCfg.ReadTimeout = time.Second * 10
	appCfg.WriteTimeout = time.Second * 10
	appCfg.IdleTimeout = time.Second * 60
	app := fiber.New(appCfg)

	if cfg.HTTP.SwaggerEnabled {
		// Swagger UI en local: http://localhost:<port>/docs
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "biztime API",
		}))
		app.Get("/swagger.json", func(c *fiber.Ctx) error {
			doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
			if err != nil {
				return err
			}
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
			return c.SendString(doc)
		})
	}

	var metrics *httpRouter.Metrics
	if cfg.Metrics.Enabled {
		metrics = httpRouter.NewMetrics("biztime")
		metrics.Registry().MustRegister(
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Name: "biztime_db_pool_total_conns",
				Help: "Conexiones abiertas en el pool de PostgreSQL",
			}, func() float64 { return float64(pool.Stat().TotalConns()) }),
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Name: "biztime_db_pool_acquired_conns",
				Help: "Conexiones del pool en uso",
			}, func() float64 { return float64(pool.Stat().AcquiredConns()) }),
		)
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:  companyUC,
		IndustryUC: industryUC,
		InvoiceUC:  invoiceUC,
		DocumentUC: documentUC,
		DB:         postgres.NewHealthChecker(pool),
		Logger:     log,
		Metrics:    metrics,
		JWTSecret:  cfg.JWT.Secret,
		Service:    cfg.App.Name,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	if err := serve(app, cfg.HTTP.Addr(), quit); err != nil {
		pool.Close()
		log.Fatal().Err(err).Str("addr", cfg.HTTP.Addr()).Msg("no se pudo iniciar el servidor HTTP")
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// serve escucha en addr hasta recibir una señal en quit (nil) o hasta que Listen falle (su error).
func serve(app *fiber.App, addr string, quit <-chan os.Signal) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(addr)
	}()
	select {
	case err := <-listenErr:
		return err
	case <-quit:
		return nil
	}
}
