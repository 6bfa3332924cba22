package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Fletes-api/internal/application/extraction"
	"github.com/jhoicas/Fletes-api/internal/application/payment"
	"github.com/jhoicas/Fletes-api/internal/application/usecase"
	domextraction "github.com/jhoicas/Fletes-api/internal/domain/extraction"
	"github.com/jhoicas/Fletes-api/internal/infrastructure/csvexport"
	infraexcel "github.com/jhoicas/Fletes-api/internal/infrastructure/excel"
	"github.com/jhoicas/Fletes-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Fletes-api/internal/infrastructure/patterns"
	infrapdf "github.com/jhoicas/Fletes-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Fletes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Fletes-api/internal/infrastructure/textextract"
	httpRouter "github.com/jhoicas/Fletes-api/internal/interfaces/http"
	"github.com/jhoicas/Fletes-api/pkg/config"
	"github.com/jhoicas/Fletes-api/pkg/logger"
	"github.com/jhoicas/Fletes-api/pkg/money"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, postgres.MigrateUp); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	// Motor de extracción: niveles incluidos + niveles del archivo de patrones
	extraTiers, err := patterns.LoadFile(cfg.Extraction.PatternsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("archivo de patrones")
	}
	pipelines, err := extraction.NewPipelines(extraction.PipelineConfig{
		ExtraTiers: extraTiers,
		Validator: domextraction.ValidatorConfig{
			ExpectedDocType: cfg.Extraction.ExpectedDocType,
			KnownPrefixes:   cfg.Extraction.KnownPrefixes,
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("pipelines de extracción")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	voucherRepo := postgres.NewVoucherRepository(pool)
	tripRepo := postgres.NewTripRepository(pool)
	reportRepo := postgres.NewPaymentReportRepository(pool)
	errorRepo := postgres.NewValidationErrorRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	recorder := metrics.NewRecorder()

	importUC := extraction.NewUseCase(
		pipelines, textextract.New(), companyRepo, voucherRepo, txRunner, recorder, log.Zerolog(),
	)
	reconciler := payment.NewReconciler(txRunner, recorder, log.Zerolog())

	// Representaciones de la liquidación: PDF paginado y hoja de cálculo
	formatter := money.NewFormatter(cfg.Report.Currency)
	reportUC := payment.NewReportUseCase(
		reportRepo, companyRepo, tripRepo,
		infrapdf.NewMarotoPDFGenerator(cfg.Report.RowsPerPage, formatter),
		infraexcel.NewExcelizeGenerator(formatter),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.MaxUploadSize,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.DocsFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsFile,
			Path:     "docs",
			Title:    "Fletes API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:      usecase.NewCompanyUseCase(companyRepo),
		VoucherUC:      usecase.NewVoucherUseCase(importUC, voucherRepo, tripRepo, errorRepo, csvexport.ValidationErrorsCSV),
		PaymentUC:      usecase.NewPaymentUseCase(reconciler, reportUC),
		MetricsHandler: recorder.Handler(),
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
