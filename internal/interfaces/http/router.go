package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Fletes-api/internal/application/usecase"
	"github.com/jhoicas/Fletes-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC      *usecase.CompanyUseCase
	VoucherUC      *usecase.VoucherUseCase
	PaymentUC      *usecase.PaymentUseCase
	MetricsHandler http.Handler // nil = sin /metrics
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Todas las rutas de la API requieren Bearer Token; los tokens se emiten fuera del servicio.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(jwt.RoleAdmin)
	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleOperator)

	// Companies
	companies := protected.Group("/companies", anyRole)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", adminOnly, companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Vouchers
	vouchers := protected.Group("/vouchers", anyRole)
	voucherHandler := NewVoucherHandler(deps.VoucherUC, deps.PaymentUC)
	vouchers.Post("/preview", voucherHandler.Preview)
	vouchers.Post("/", voucherHandler.Import)
	vouchers.Get("/", voucherHandler.List)
	vouchers.Get("/:id", voucherHandler.GetByID)
	vouchers.Get("/:id/errors", voucherHandler.Errors)
	vouchers.Get("/:id/errors.csv", voucherHandler.ErrorsCSV)
	vouchers.Get("/:id/summary", voucherHandler.Summary)
	vouchers.Get("/:id/payment-reports", voucherHandler.PaymentReports)
	vouchers.Post("/:id/reconcile", adminOnly, voucherHandler.Reconcile)

	// Payment reports
	reports := protected.Group("/payment-reports", anyRole)
	reportHandler := NewPaymentReportHandler(deps.PaymentUC)
	reports.Get("/:id", reportHandler.GetByID)
	reports.Get("/:id/pdf", reportHandler.PDF)
	reports.Get("/:id/xlsx", reportHandler.XLSX)
}
