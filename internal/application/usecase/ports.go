package usecase

import (
	"context"

	"github.com/jhoicas/Fletes-api/internal/application/extraction"
	"github.com/jhoicas/Fletes-api/internal/application/payment"
	"github.com/jhoicas/Fletes-api/internal/domain/entity"
)

// VoucherImporter pipeline de importación (implementado por extraction.UseCase).
type VoucherImporter interface {
	ImportVoucher(ctx context.Context, in extraction.ImportInput) (*extraction.ImportResult, error)
	Preview(ctx context.Context, fileName string, data []byte) (*extraction.ExtractionResult, error)
}

// ErrorsCSVFunc serializa el registro de errores de un voucher.
type ErrorsCSVFunc func(errs []entity.ValidationError) ([]byte, error)

// PaymentReconciler emite liquidaciones (implementado por payment.Reconciler).
type PaymentReconciler interface {
	Reconcile(ctx context.Context, in payment.ReconcileInput) (*entity.PaymentReport, error)
}

// PaymentReports consulta y descarga de liquidaciones (implementado por payment.ReportUseCase).
type PaymentReports interface {
	Get(ctx context.Context, id string) (*entity.PaymentReport, error)
	ListByVoucher(ctx context.Context, voucherID string) ([]*entity.PaymentReport, error)
	DownloadPDF(ctx context.Context, id string) ([]byte, string, error)
	DownloadXLSX(ctx context.Context, id string) ([]byte, string, error)
}
