package payment

import (
	"context"

	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	"github.com/jhoicas/Fletes-api/internal/domain/repository"
)

// TxRunner ejecuta la conciliación en una transacción con repos atados a ella.
type TxRunner interface {
	RunPayment(ctx context.Context, fn func(
		voucherRepo repository.VoucherRepository,
		companyRepo repository.CompanyRepository,
		tripRepo repository.TripRepository,
		reportRepo repository.PaymentReportRepository,
	) error) error
}

// MetricsRecorder puerto de métricas de conciliación.
type MetricsRecorder interface {
	PaymentReconciled(sequenceReset bool)
}

type nopMetrics struct{}

func (nopMetrics) PaymentReconciled(bool) {}

// ReportDocument datos completos para representar una liquidación.
type ReportDocument struct {
	Report  *entity.PaymentReport
	Company *entity.Company
	Trips   []*entity.Trip // en orden de fecha y línea
}

// ReportPDFGenerator genera el PDF paginado de la liquidación.
type ReportPDFGenerator interface {
	GeneratePaymentReportPDF(ctx context.Context, doc *ReportDocument) ([]byte, error)
}

// ReportSpreadsheetGenerator genera la liquidación en formato xlsx.
type ReportSpreadsheetGenerator interface {
	GeneratePaymentReportXLSX(ctx context.Context, doc *ReportDocument) ([]byte, error)
}
